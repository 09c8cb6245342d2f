package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := Setup(tt.level, "json")
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("Setup(%q) level: got %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSetupFormats(t *testing.T) {
	// Both formats must produce a usable logger.
	for _, format := range []string{"text", "json", ""} {
		logger := Setup("info", format)
		logger.Debug().Msg("suppressed at info level")
	}
}
