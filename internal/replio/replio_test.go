package replio

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompt_MatchesSpec(t *testing.T) {
	if Prompt != ":> " {
		t.Fatalf("expected prompt %q, got %q", ":> ", Prompt)
	}
}

func TestColoredWriter_PreservesText(t *testing.T) {
	var buf bytes.Buffer
	w := &coloredWriter{w: &buf}
	if _, err := w.Write([]byte("boom")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected colored output to still contain the original text, got %q", buf.String())
	}
}
