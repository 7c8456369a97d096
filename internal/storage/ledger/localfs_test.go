// internal/storage/ledger/localfs_test.go
package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/newthinker/pricelog/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendFS_ImplementsLedger(t *testing.T) {
	var _ Ledger = (*AppendFS)(nil)
}

func TestAppendFS_Path(t *testing.T) {
	dir := t.TempDir()
	l, err := NewAppendFS(dir, map[string]string{"S&P 500": "sp500_prices.txt"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "sp500_prices.txt"), l.Path("S&P 500"))
	assert.Equal(t, filepath.Join(dir, "bitcoin_prices.txt"), l.Path("Bitcoin"))
}

func TestAppendFS_CreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewAppendFS(dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestAppendFS_AppendsInOrder(t *testing.T) {
	dir := t.TempDir()
	l, err := NewAppendFS(dir, nil)
	require.NoError(t, err)

	ctx := context.Background()
	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, l.Save(ctx, core.NewPriceReading("Bitcoin", 100, t0)))
	require.NoError(t, l.Save(ctx, core.NewPriceReading("Bitcoin", 101, t0.Add(30*time.Second))))

	data, err := os.ReadFile(l.Path("Bitcoin"))
	require.NoError(t, err)

	assert.Equal(t,
		"2024-01-02 03:04:05 UTC: $100.00\n2024-01-02 03:04:35 UTC: $101.00\n",
		string(data))
}

func TestAppendFS_PreservesExistingContent(t *testing.T) {
	dir := t.TempDir()
	existing := "2023-12-31 23:59:59 UTC: $42000.00\n"
	path := filepath.Join(dir, "bitcoin_prices.txt")
	require.NoError(t, os.WriteFile(path, []byte(existing), 0644))

	l, err := NewAppendFS(dir, nil)
	require.NoError(t, err)
	require.NoError(t, l.Save(context.Background(),
		core.NewPriceReading("Bitcoin", 100, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), existing))
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestAppendFS_SeparateFilesPerSource(t *testing.T) {
	dir := t.TempDir()
	l, err := NewAppendFS(dir, nil)
	require.NoError(t, err)

	ctx := context.Background()
	now := time.Now()
	require.NoError(t, l.Save(ctx, core.NewPriceReading("Bitcoin", 1, now)))
	require.NoError(t, l.Save(ctx, core.NewPriceReading("Ethereum", 2, now)))

	btc, _ := os.ReadFile(l.Path("Bitcoin"))
	eth, _ := os.ReadFile(l.Path("Ethereum"))
	assert.Contains(t, string(btc), "$1.00")
	assert.NotContains(t, string(btc), "$2.00")
	assert.Contains(t, string(eth), "$2.00")
}

func TestAppendFS_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory where the log file should be makes the open fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "bitcoin_prices.txt"), 0755))

	l, err := NewAppendFS(dir, nil)
	require.NoError(t, err)

	err = l.Save(context.Background(), core.NewPriceReading("Bitcoin", 1, time.Now()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrPersist))
	assert.Equal(t, core.OutcomePersistError, core.Classify(err))
}

func TestAppendFS_CancelledContext(t *testing.T) {
	l, err := NewAppendFS(t.TempDir(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = l.Save(ctx, core.NewPriceReading("Bitcoin", 1, time.Now()))
	assert.True(t, errors.Is(err, core.ErrPersist))

	_, statErr := os.Stat(l.Path("Bitcoin"))
	assert.True(t, os.IsNotExist(statErr))
}
