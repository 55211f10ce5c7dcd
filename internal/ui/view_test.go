package ui

import (
	"testing"
	"time"
)

func TestResponseDelay(t *testing.T) {
	if got := responseDelay("full", 250); got != 250*time.Millisecond {
		t.Fatalf("full motion must pace responses, got %v", got)
	}
	for _, motion := range []string{"reduced", "off", ""} {
		if got := responseDelay(motion, 250); got != 0 {
			t.Fatalf("motion %q must show responses immediately, got %v", motion, got)
		}
	}
	if got := responseDelay("full", 0); got != 0 {
		t.Fatalf("no scripted delay means no pacing, got %v", got)
	}
}

func TestKeystrokeName(t *testing.T) {
	cases := map[string]string{
		"tab":       "Tab",
		"enter":     "Enter",
		"space":     "Space",
		"backspace": "Backspace",
		"up":        "Up",
		"a":         "a",
		"?":         "?",
	}
	for in, want := range cases {
		if got := keystrokeName(in); got != want {
			t.Errorf("keystrokeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPrereqBanner(t *testing.T) {
	if got := prereqBanner(nil); got != "" {
		t.Fatalf("no prereqs: expected empty banner, got %q", got)
	}
	done := []PrereqRow{{Title: "Getting Started", Completed: true}}
	if got := prereqBanner(done); got != "" {
		t.Fatalf("all done: expected empty banner, got %q", got)
	}
	mixed := []PrereqRow{
		{Title: "Getting Started", Completed: true},
		{Title: "Working With the Agent", Completed: false},
	}
	want := "Suggested first: Working With the Agent"
	if got := prereqBanner(mixed); got != want {
		t.Fatalf("banner = %q, want %q", got, want)
	}
}
