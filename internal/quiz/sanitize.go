package quiz

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxTextLen       = 200
	maxOptionLen     = 150
	maxOptions       = 4
	minMeaningfulLen = 10 // shorter trimmed text falls back to a default
	minOptionLen     = 4  // options shorter than this are dropped
)

// SanitizeText returns a trimmed question text capped at 200 characters.
// Non-string values and texts under 10 characters fall back to a numbered
// default, which carries no question mark and therefore never survives
// validation.
func SanitizeText(v any, idx int) string {
	s, ok := v.(string)
	s = strings.TrimSpace(s)
	if !ok || utf8.RuneCountInString(s) < minMeaningfulLen {
		return fmt.Sprintf("Question %d", idx+1)
	}
	return truncate(s, maxTextLen)
}

// SanitizeExplanation mirrors SanitizeText with an empty-string fallback;
// an absent explanation is acceptable output.
func SanitizeExplanation(v any) string {
	s, ok := v.(string)
	s = strings.TrimSpace(s)
	if !ok || utf8.RuneCountInString(s) < minMeaningfulLen {
		return ""
	}
	return truncate(s, maxTextLen)
}

// SanitizeOptions keeps at most the first 4 entries, coerces non-strings
// to a fixed literal, caps each at 150 characters and drops entries of
// 3 characters or fewer.
func SanitizeOptions(v any) []string {
	var raw []any
	switch x := v.(type) {
	case []any:
		raw = x
	case []string:
		raw = make([]any, len(x))
		for i, s := range x {
			raw[i] = s
		}
	default:
		return nil
	}

	out := make([]string, 0, maxOptions)
	for i, item := range raw {
		if i >= maxOptions {
			break
		}
		s, ok := item.(string)
		if !ok {
			s = "Invalid option"
		}
		s = truncate(strings.TrimSpace(s), maxOptionLen)
		if utf8.RuneCountInString(s) < minOptionLen {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SanitizeCorrect maps anything whose uppercased first character is not
// one of A-D to "A"; "b) answer" becomes "B".
func SanitizeCorrect(v any) string {
	s, _ := v.(string)
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "A"
	}
	switch c := s[0]; c {
	case 'A', 'B', 'C', 'D':
		return string(c)
	}
	return "A"
}

// buildQuestion sanitizes one raw model question and validates it against
// the certification policy. The bool result reports whether the question
// survives.
func buildQuestion(raw map[string]any, idx int, pol Policy) (Question, bool) {
	q := Question{
		Text:        SanitizeText(raw["text"], idx),
		Options:     SanitizeOptions(raw["options"]),
		Correct:     SanitizeCorrect(raw["correct"]),
		Explanation: SanitizeExplanation(raw["explanation"]),
	}
	if len(q.Options) < pol.MinOptions {
		return Question{}, false
	}
	if !strings.Contains(q.Text, "?") {
		return Question{}, false
	}
	if pol.Placeholder != "" && len(q.Options) == pol.MinOptions {
		q.Options = append(q.Options, pol.Placeholder)
	}
	return q, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
