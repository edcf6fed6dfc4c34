package main

import (
	"os"
	"strings"
	"testing"
)

// TestMain keeps ambient RESUME_* settings from leaking into command tests.
func TestMain(m *testing.M) {
	for _, kv := range os.Environ() {
		if key, _, _ := strings.Cut(kv, "="); strings.HasPrefix(key, "RESUME_") {
			_ = os.Unsetenv(key)
		}
	}
	os.Exit(m.Run())
}
