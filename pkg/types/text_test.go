package types

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRunesShortStringUnchanged(t *testing.T) {
	if got := TruncateRunes("hello", 500); got != "hello" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
}

func TestTruncateRunesCapsLength(t *testing.T) {
	long := strings.Repeat("a", 600)
	got := TruncateRunes(long, MaxDescriptionRunes)
	if len(got) != MaxDescriptionRunes {
		t.Fatalf("expected %d runes, got %d", MaxDescriptionRunes, len(got))
	}
}

func TestTruncateRunesPreservesMultibyte(t *testing.T) {
	long := strings.Repeat("é", 600)
	got := TruncateRunes(long, MaxDescriptionRunes)
	if utf8.RuneCountInString(got) != MaxDescriptionRunes {
		t.Fatalf("expected %d runes, got %d", MaxDescriptionRunes, utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid utf8 output")
	}
}

func TestTruncateRunesZeroLimit(t *testing.T) {
	if got := TruncateRunes("anything", 0); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
