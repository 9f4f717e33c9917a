package jsonrepair

import (
	"encoding/json"
	"errors"
	"testing"
)

func mustRepair(t *testing.T, in string) string {
	t.Helper()
	out, err := Repair(in)
	if err != nil {
		t.Fatalf("Repair(%q): %v", in, err)
	}
	if !json.Valid([]byte(out)) {
		t.Fatalf("Repair(%q) produced invalid JSON %q", in, out)
	}
	return out
}

func TestRepair_ValidPassesThrough(t *testing.T) {
	out := mustRepair(t, `{"a": 1, "b": ["x", "y"]}`)
	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatal(err)
	}
	if m["a"] != float64(1) {
		t.Fatalf("unexpected value: %v", m)
	}
}

func TestRepair_StripsCodeFence(t *testing.T) {
	out := mustRepair(t, "Here you go:\n```json\n{\"a\": 1}\n```\nHope this helps!")
	if out != `{"a":1}` {
		t.Fatalf("got %q", out)
	}
}

func TestRepair_ExtractsFromProse(t *testing.T) {
	out := mustRepair(t, `Sure! The requested object is {"questions": []} as you asked.`)
	if out != `{"questions":[]}` {
		t.Fatalf("got %q", out)
	}
}

func TestRepair_DropsTrailingCommas(t *testing.T) {
	out := mustRepair(t, `{"a": [1, 2,], }`)
	if out != `{"a":[1,2]}` {
		t.Fatalf("got %q", out)
	}
}

func TestRepair_ClosesTruncatedOutput(t *testing.T) {
	out := mustRepair(t, `{"questions": [{"text": "What is X?`)
	var parsed struct {
		Questions []struct {
			Text string `json:"text"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatal(err)
	}
	if len(parsed.Questions) != 1 || parsed.Questions[0].Text != "What is X?" {
		t.Fatalf("got %q", out)
	}
}

func TestRepair_SmartQuotes(t *testing.T) {
	out := mustRepair(t, "{“a”: “b”}")
	if out != `{"a":"b"}` {
		t.Fatalf("got %q", out)
	}
}

func TestRepair_SingleQuotes(t *testing.T) {
	out := mustRepair(t, `{'a': 'it\'s fine'}`)
	var m map[string]string
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatal(err)
	}
	if m["a"] != "it's fine" {
		t.Fatalf("got %q", m["a"])
	}
}

func TestRepair_EscapesRawNewlines(t *testing.T) {
	out := mustRepair(t, "{\"a\": \"line one\nline two\"}")
	var m map[string]string
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatal(err)
	}
	if m["a"] != "line one\nline two" {
		t.Fatalf("got %q", m["a"])
	}
}

func TestRepair_IgnoresTrailingProse(t *testing.T) {
	out := mustRepair(t, `{"a": 1} and that concludes the response`)
	if out != `{"a":1}` {
		t.Fatalf("got %q", out)
	}
}

func TestRepair_NoJSON(t *testing.T) {
	if _, err := Repair("sorry, I cannot answer that"); !errors.Is(err, ErrNoJSON) {
		t.Fatalf("expected ErrNoJSON, got %v", err)
	}
}

func TestRepair_Unrecoverable(t *testing.T) {
	if _, err := Repair(`see {unclosed and broken`); !errors.Is(err, ErrUnrecoverable) {
		t.Fatalf("expected ErrUnrecoverable, got %v", err)
	}
}
