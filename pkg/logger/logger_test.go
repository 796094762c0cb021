package logger

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetLevel("debug")
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", zerolog.GlobalLevel())
	}

	SetLevel("warn")
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn", zerolog.GlobalLevel())
	}

	SetLevel("verbose")
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("unknown name should fall back to info, got %v", zerolog.GlobalLevel())
	}
}

func TestWithContextWithoutSpan(t *testing.T) {
	Init("test", false)

	if got := WithContext(context.Background()); got != &Logger {
		t.Error("a context without a span should yield the global logger")
	}
}
