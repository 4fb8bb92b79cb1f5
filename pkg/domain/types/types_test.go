package types_test

import (
	"testing"
	"time"

	"github.com/notework-lab/notework/pkg/domain/types"
)

func TestParseNoteKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"text", "text", false},
		{"question", "question", false},
		{"summary", "summary", false},
		{"translation", "translation", false},
		{"highlight", "highlight", false},
		{"template", "template", false},
		{"empty", "", true},
		{"unknown", "memo", true},
		{"uppercase", "Text", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.ParseNoteKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseNoteKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseModelID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"claude", "claude", false},
		{"openai", "openai", false},
		{"gemini", "gemini", false},
		{"empty", "", true},
		{"unknown", "mistral", true},
		{"uppercase", "Claude", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.ParseModelID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseModelID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestModelIDLabel(t *testing.T) {
	tests := []struct {
		model    types.ModelID
		expected string
	}{
		{types.ModelClaude, "Claude"},
		{types.ModelOpenAI, "OpenAI"},
		{types.ModelGemini, "Gemini"},
		{types.ModelID("other"), "other"},
	}

	for _, tt := range tests {
		t.Run(string(tt.model), func(t *testing.T) {
			if got := tt.model.Label(); got != tt.expected {
				t.Errorf("Label() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDateRangeCutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	t.Run("all does not filter", func(t *testing.T) {
		_, ok := types.DateRangeAll.Cutoff(now)
		if ok {
			t.Error("DateRangeAll should not produce a cutoff")
		}
	})

	t.Run("today starts at midnight", func(t *testing.T) {
		cutoff, ok := types.DateRangeToday.Cutoff(now)
		if !ok {
			t.Fatal("expected a cutoff")
		}
		want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		if !cutoff.Equal(want) {
			t.Errorf("cutoff = %v, want %v", cutoff, want)
		}
	})

	t.Run("week goes back seven days", func(t *testing.T) {
		cutoff, ok := types.DateRangeWeek.Cutoff(now)
		if !ok {
			t.Fatal("expected a cutoff")
		}
		if !cutoff.Equal(now.AddDate(0, 0, -7)) {
			t.Errorf("cutoff = %v", cutoff)
		}
	})

	t.Run("month goes back one month", func(t *testing.T) {
		cutoff, ok := types.DateRangeMonth.Cutoff(now)
		if !ok {
			t.Fatal("expected a cutoff")
		}
		if !cutoff.Equal(now.AddDate(0, -1, 0)) {
			t.Errorf("cutoff = %v", cutoff)
		}
	})
}

func TestDateRangeNormalize(t *testing.T) {
	if got := types.DateRange("").Normalize(); got != types.DateRangeAll {
		t.Errorf("Normalize() = %v, want all", got)
	}
	if got := types.DateRangeWeek.Normalize(); got != types.DateRangeWeek {
		t.Errorf("Normalize() = %v, want week", got)
	}
}
