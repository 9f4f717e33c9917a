package jsonrepair

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var ErrNoJSON = errors.New("jsonrepair: no JSON value found")
var ErrUnrecoverable = errors.New("jsonrepair: input not recoverable to valid JSON")

var rxFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Repair coerces near-JSON model output into a strictly parseable JSON
// document. It strips markdown fences and surrounding prose, normalizes
// smart and single quotes, escapes raw control characters inside strings,
// drops trailing commas and closes brackets left open by truncated output.
// Unrecoverable input yields an error, never a silently empty document.
func Repair(s string) (string, error) {
	s = strings.TrimSpace(s)
	if m := rxFence.FindStringSubmatch(s); len(m) > 1 && strings.ContainsAny(m[1], "{[") {
		s = strings.TrimSpace(m[1])
	}
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", ErrNoJSON
	}
	out := rewrite(s[start:])
	if !json.Valid([]byte(out)) {
		return "", ErrUnrecoverable
	}
	return out, nil
}

// rewrite scans a single JSON value, fixing what it can along the way.
// Scanning stops when the top-level value closes; trailing prose is ignored.
func rewrite(s string) string {
	var out strings.Builder
	var stack []byte
	inStr := false
	esc := false
	quote := byte(0) // delimiter that opened the current string
	pendingComma := false

	for _, r := range s {
		if inStr {
			if esc {
				esc = false
				if r == '\'' {
					// \' is not a legal JSON escape
					out.WriteByte('\'')
				} else {
					out.WriteByte('\\')
					out.WriteRune(r)
				}
				continue
			}
			switch {
			case r == '\\':
				esc = true
			case quote == '\'' && r == '\'':
				out.WriteByte('"')
				inStr = false
			case quote == '"' && (r == '"' || r == '”'):
				out.WriteByte('"')
				inStr = false
			case quote == '\'' && r == '"':
				out.WriteString(`\"`)
			case r == '\n':
				out.WriteString(`\n`)
			case r == '\t':
				out.WriteString(`\t`)
			case r == '\r':
				out.WriteString(`\r`)
			default:
				out.WriteRune(r)
			}
			continue
		}

		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		case ',':
			pendingComma = true
			continue
		}
		if pendingComma {
			// a comma directly before a closer is dropped
			if r != '}' && r != ']' {
				out.WriteByte(',')
			}
			pendingComma = false
		}

		switch r {
		case '"', '“':
			inStr, quote = true, '"'
			out.WriteByte('"')
		case '\'':
			inStr, quote = true, '\''
			out.WriteByte('"')
		case '{':
			stack = append(stack, '}')
			out.WriteByte('{')
		case '[':
			stack = append(stack, ']')
			out.WriteByte('[')
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			out.WriteRune(r)
		default:
			out.WriteRune(r)
		}

		if len(stack) == 0 {
			return out.String()
		}
	}

	// truncated output: close the open string and every open bracket
	if inStr {
		out.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out.WriteByte(stack[i])
	}
	return out.String()
}
