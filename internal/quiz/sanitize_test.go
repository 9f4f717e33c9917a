package quiz

import (
	"strings"
	"testing"
)

func TestSanitizeText_FallbackForNonString(t *testing.T) {
	got := SanitizeText(42, 2)
	if got != "Question 3" {
		t.Fatalf("expected fallback %q, got %q", "Question 3", got)
	}
}

func TestSanitizeText_FallbackForShortText(t *testing.T) {
	got := SanitizeText("   Too four   ", 0)
	if got != "Question 1" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestSanitizeText_TrimsAndTruncates(t *testing.T) {
	long := "  What is " + strings.Repeat("x", 300) + "?  "
	got := SanitizeText(long, 0)
	if len([]rune(got)) != 200 {
		t.Fatalf("expected 200 chars, got %d", len([]rune(got)))
	}
	if strings.HasPrefix(got, " ") || strings.HasSuffix(got, " ") {
		t.Fatal("expected trimmed output")
	}
}

func TestSanitizeText_Idempotent(t *testing.T) {
	once := SanitizeText("Which region hosts the primary replica?", 0)
	twice := SanitizeText(once, 0)
	if once != twice {
		t.Fatalf("sanitize not idempotent: %q vs %q", once, twice)
	}
}

func TestSanitizeExplanation_EmptyFallback(t *testing.T) {
	if got := SanitizeExplanation(nil); got != "" {
		t.Fatalf("expected empty fallback, got %q", got)
	}
	if got := SanitizeExplanation("short"); got != "" {
		t.Fatalf("expected empty fallback for short text, got %q", got)
	}
}

func TestSanitizeExplanation_Truncates(t *testing.T) {
	got := SanitizeExplanation(strings.Repeat("e", 250))
	if len([]rune(got)) != 200 {
		t.Fatalf("expected 200 chars, got %d", len([]rune(got)))
	}
}

func TestSanitizeOptions_TruncatesTo150(t *testing.T) {
	opts := SanitizeOptions([]any{strings.Repeat("a", 180), "Option beta", "Option gamma", "Option delta"})
	if len(opts) != 4 {
		t.Fatalf("expected 4 options, got %d", len(opts))
	}
	if len([]rune(opts[0])) != 150 {
		t.Fatalf("expected first option truncated to 150, got %d", len([]rune(opts[0])))
	}
}

func TestSanitizeOptions_DropsShortEntries(t *testing.T) {
	opts := SanitizeOptions([]any{"abc", "Option beta", "ok ", "Option delta"})
	if len(opts) != 2 {
		t.Fatalf("expected 2 surviving options, got %d: %v", len(opts), opts)
	}
}

func TestSanitizeOptions_CoercesNonStrings(t *testing.T) {
	opts := SanitizeOptions([]any{7, "Option beta", "Option gamma", "Option delta"})
	if opts[0] != "Invalid option" {
		t.Fatalf("expected coerced literal, got %q", opts[0])
	}
}

func TestSanitizeOptions_OnlyFirstFourConsidered(t *testing.T) {
	opts := SanitizeOptions([]any{"abc", "Option beta", "Option gamma", "Option delta", "Option epsilon"})
	// the short first entry is dropped and the fifth is never considered
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d: %v", len(opts), opts)
	}
}

func TestSanitizeOptions_NonArray(t *testing.T) {
	if opts := SanitizeOptions("not an array"); opts != nil {
		t.Fatalf("expected nil, got %v", opts)
	}
}

func TestSanitizeCorrect(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"A", "A"},
		{"b) answer", "B"},
		{" c ", "C"},
		{"delta", "D"},
		{"zebra", "A"},
		{"", "A"},
		{42, "A"},
		{nil, "A"},
	}
	for _, tc := range cases {
		if got := SanitizeCorrect(tc.in); got != tc.want {
			t.Errorf("SanitizeCorrect(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
