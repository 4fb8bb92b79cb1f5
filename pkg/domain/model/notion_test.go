package model_test

import (
	"errors"
	"testing"

	"github.com/notework-lab/notework/pkg/domain/model"
)

func TestParseNotionID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "raw ID without dashes",
			input: "1234567890abcdef1234567890abcdef",
			want:  "12345678-90ab-cdef-1234-567890abcdef",
		},
		{
			name:  "UUID format passes through",
			input: "12345678-90ab-cdef-1234-567890abcdef",
			want:  "12345678-90ab-cdef-1234-567890abcdef",
		},
		{
			name:  "uppercase raw ID is normalized",
			input: "1234567890ABCDEF1234567890ABCDEF",
			want:  "12345678-90ab-cdef-1234-567890abcdef",
		},
		{
			name:  "Notion URL with workspace and title",
			input: "https://www.notion.so/myspace/My-Page-1234567890abcdef1234567890abcdef",
			want:  "12345678-90ab-cdef-1234-567890abcdef",
		},
		{
			name:  "bare Notion URL",
			input: "https://notion.so/1234567890abcdef1234567890abcdef",
			want:  "12345678-90ab-cdef-1234-567890abcdef",
		},
		{
			name:  "notion.site URL",
			input: "https://myspace.notion.site/My-Page-1234567890abcdef1234567890abcdef",
			want:  "12345678-90ab-cdef-1234-567890abcdef",
		},
		{
			name:  "URL with query params",
			input: "https://www.notion.so/myspace/1234567890abcdef1234567890abcdef?v=deadbeef",
			want:  "12345678-90ab-cdef-1234-567890abcdef",
		},
		{
			name:  "input with surrounding spaces",
			input: "  1234567890abcdef1234567890abcdef  ",
			want:  "12345678-90ab-cdef-1234-567890abcdef",
		},
		// Error cases
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "1234abcd",
			wantErr: true,
		},
		{
			name:    "non-hex characters",
			input:   "zzzz567890abcdef1234567890abcdef",
			wantErr: true,
		},
		{
			name:    "wrong host",
			input:   "https://example.com/1234567890abcdef1234567890abcdef",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseNotionID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseNotionID(%q) expected error, got %q", tt.input, got)
				}
				if err != nil && !errors.Is(err, model.ErrInvalidNotionID) {
					t.Errorf("ParseNotionID(%q) error = %v, want ErrInvalidNotionID", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNotionID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseNotionID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsNotionURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"https://www.notion.so/myspace/page", true},
		{"https://myspace.notion.site/page", true},
		{"https://example.com/notion-tips", false},
		{"https://example.com/page", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := model.IsNotionURL(tt.input); got != tt.want {
			t.Errorf("IsNotionURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
