package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Development(t *testing.T) {
	log, err := New(true)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected non-nil logger")
	}

	// Should not panic
	log.Info("test message")

	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("development logger should log at debug")
	}
}

func TestNew_Production(t *testing.T) {
	log, err := New(false)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("production logger should not log at debug by default")
	}
}

func TestBuild_Level(t *testing.T) {
	log, err := Build(Options{Level: "warn"})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestBuild_JSONEncoding(t *testing.T) {
	if _, err := Build(Options{Encoding: "json"}); err != nil {
		t.Fatalf("failed to create json logger: %v", err)
	}
}

func TestBuild_InvalidLevel(t *testing.T) {
	if _, err := Build(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestMust(t *testing.T) {
	// Should not panic
	log := Must(true)
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
}
