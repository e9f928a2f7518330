// ABOUTME: Tests for MCP helper functions
// ABOUTME: Covers date parsing, media type parsing, URL validation, and folder formatting

package mcp

import (
	"testing"
	"time"

	"github.com/harper/feedboard/internal/models"
)

func TestParseDateString(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "today", input: "today", want: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)},
		{name: "yesterday", input: "yesterday", want: time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)},
		{name: "month", input: "month", want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{name: "ISO date format", input: "2024-12-15", want: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)},
		{name: "RFC3339 format", input: "2024-12-15T10:30:00Z", want: time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC)},
		{name: "invalid format", input: "not-a-date", wantErr: true},
		{name: "partial date", input: "2024-12", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseDateString(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDateString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("parseDateString(%q) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		input   string
		want    models.MediaType
		wantErr bool
	}{
		{"article", models.MediaArticle, false},
		{" Video ", models.MediaVideo, false},
		{"PODCAST", models.MediaPodcast, false},
		{"audio", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseMediaType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMediaType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseMediaType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFeedURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/feed.xml", false},
		{"http://example.com/rss", false},
		{"ftp://example.com/feed", true},
		{"https://", true},
		{"not a url", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := validateFeedURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFeedURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestFormatFolder(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "root level"},
		{"Tech", "'Tech'"},
		{"Tech Blogs", "'Tech Blogs'"},
		{"news", "'news'"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := formatFolder(tt.input)
			if got != tt.want {
				t.Errorf("formatFolder(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
