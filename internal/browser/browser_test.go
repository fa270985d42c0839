package browser

import (
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if !opts.Headless {
		t.Error("Expected headless to be true by default")
	}

	if opts.Timeout != 30*time.Second {
		t.Errorf("Expected timeout to be 30s, got %v", opts.Timeout)
	}

	if opts.ViewportWidth != 1920 || opts.ViewportHeight != 1080 {
		t.Errorf("Expected viewport to be 1920x1080, got %dx%d", opts.ViewportWidth, opts.ViewportHeight)
	}

	if opts.ExtraHeaders["DNT"] != "1" {
		t.Errorf("Expected DNT header, got %q", opts.ExtraHeaders["DNT"])
	}
}

func TestIsBotCheckTitle(t *testing.T) {
	tests := []struct {
		title    string
		expected bool
	}{
		{"Amazon.in: Robot Check", true},
		{"Enter the characters you see below - CAPTCHA", true},
		{"Widget X (Red, 128GB) : Amazon.in: Electronics", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := IsBotCheckTitle(tt.title); got != tt.expected {
				t.Errorf("IsBotCheckTitle(%q) = %v, want %v", tt.title, got, tt.expected)
			}
		})
	}
}
