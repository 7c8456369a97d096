// internal/storage/ledger/localfs.go
package ledger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/newthinker/pricelog/internal/core"
)

// AppendFS implements Ledger with one append-only text file per source
type AppendFS struct {
	basePath string
	files    map[string]string
}

// NewAppendFS creates a ledger rooted at basePath. files optionally pins a
// source name to a file name; other sources use FileName.
func NewAppendFS(basePath string, files map[string]string) (*AppendFS, error) {
	if basePath == "" {
		basePath = "."
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, core.WrapError(core.ErrPersist, fmt.Errorf("creating base path: %w", err))
	}
	pinned := make(map[string]string, len(files))
	for k, v := range files {
		pinned[k] = v
	}
	return &AppendFS{basePath: basePath, files: pinned}, nil
}

// Path returns the file a source's entries are appended to
func (l *AppendFS) Path(source string) string {
	if name, ok := l.files[source]; ok && name != "" {
		return filepath.Join(l.basePath, name)
	}
	return filepath.Join(l.basePath, FileName(source))
}

func (l *AppendFS) Save(ctx context.Context, reading core.PriceReading) error {
	if err := ctx.Err(); err != nil {
		return core.WrapError(core.ErrPersist, err)
	}

	path := l.Path(reading.Source)
	if err := appendLine(path, FormatEntry(reading)); err != nil {
		return core.WrapError(core.ErrPersist, fmt.Errorf("%s: %w", path, err))
	}
	return nil
}

func appendLine(path, line string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing: %w", cerr)
		}
	}()

	n, err := io.WriteString(f, line)
	if err != nil {
		return fmt.Errorf("writing: %w", err)
	}
	if n != len(line) {
		return fmt.Errorf("writing: %w", io.ErrShortWrite)
	}
	return nil
}
