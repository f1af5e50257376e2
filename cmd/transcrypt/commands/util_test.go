package commands

import (
	"testing"

	"github.com/burnoutdv/transcrypt/internal/db"
)

func TestParseUID(t *testing.T) {
	if uid, err := parseUID("42"); err != nil || uid != 42 {
		t.Errorf("parseUID(42) = %d, %v", uid, err)
	}
	if _, err := parseUID("forty-two"); err == nil {
		t.Error("expected error for non-numeric uid")
	}
}

func TestDominantLanguage(t *testing.T) {
	lines := []db.Line{
		{Language: "en"},
		{Language: "de"},
		{Language: "de"},
		{Language: ""},
	}
	if got := dominantLanguage(lines); got != "de" {
		t.Errorf("dominantLanguage = %q, want de", got)
	}
	if got := dominantLanguage(nil); got != "" {
		t.Errorf("dominantLanguage(nil) = %q, want empty", got)
	}
}
