package internal

import (
	"testing"
)

// TestNewDefaultLoggerLevel tests that LOG_LEVEL selects the verbosity and
// unknown values fall back to INFO
func TestNewDefaultLoggerLevel(t *testing.T) {
	tests := []struct {
		env      string
		expected LogLevel
	}{
		{"ERROR", LogLevelError},
		{"WARN", LogLevelWarn},
		{"INFO", LogLevelInfo},
		{"", LogLevelInfo},
		{"VERBOSE", LogLevelInfo},
	}

	for _, test := range tests {
		t.Setenv("LOG_LEVEL", test.env)
		if l := NewDefaultLogger(); l.level != test.expected {
			t.Errorf("LOG_LEVEL=%q: expected level %d, got %d", test.env, test.expected, l.level)
		}
	}
}
