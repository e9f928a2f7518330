// ABOUTME: Tests for configuration defaults
// ABOUTME: Verifies constants are properly defined

package config

import (
	"testing"
	"time"
)

func TestDefaultHTTPTimeout(t *testing.T) {
	if DefaultHTTPTimeout != 30*time.Second {
		t.Errorf("expected 30s, got %v", DefaultHTTPTimeout)
	}
}

func TestDisplayConstants(t *testing.T) {
	if DisplayIDLength < MinPrefixLength {
		t.Errorf("DisplayIDLength %d should be at least MinPrefixLength %d", DisplayIDLength, MinPrefixLength)
	}
	if SeparatorWidth <= 0 {
		t.Error("SeparatorWidth should be positive")
	}
}
