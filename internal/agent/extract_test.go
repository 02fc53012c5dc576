package agent

import "testing"

func TestParseCandidates_PlainArray(t *testing.T) {
	response := `[
		{"line": 42, "body": "**CRITICAL** nil deref", "severity": "critical"},
		{"line": 7, "body": "naming", "severity": "minor", "side": "RIGHT"}
	]`

	got := ParseCandidates(response, "main.go")

	if len(got) != 2 {
		t.Fatalf("got %d comments, want 2", len(got))
	}
	if got[0].Path != "main.go" || got[1].Path != "main.go" {
		t.Error("path should be stamped onto every comment")
	}
	if got[0].Side != "RIGHT" {
		t.Errorf("missing side should default to RIGHT, got %q", got[0].Side)
	}
	if got[0].Line != 42 || got[0].Severity != "critical" {
		t.Errorf("got[0] = %+v", got[0])
	}
}

func TestParseCandidates_ProseWrapped(t *testing.T) {
	response := "Here is my review:\n```json\n[{\"line\": 1, \"body\": \"x\"}]\n```\nHope that helps!"

	got := ParseCandidates(response, "a.go")
	if len(got) != 1 || got[0].Line != 1 {
		t.Errorf("got = %+v, want one comment at line 1", got)
	}
}

func TestParseCandidates_Garbage(t *testing.T) {
	for _, response := range []string{
		"",
		"no json here",
		"[ broken json",
		"[{not valid}]",
	} {
		if got := ParseCandidates(response, "a.go"); got != nil {
			t.Errorf("ParseCandidates(%q) = %+v, want nil", response, got)
		}
	}
}

func TestParseCandidates_EmptyArray(t *testing.T) {
	if got := ParseCandidates("[]", "a.go"); len(got) != 0 {
		t.Errorf("got = %+v, want empty", got)
	}
}

func TestParseAnalysis_Valid(t *testing.T) {
	response := `Sure. {"action": "modify", "reasoning": "rename var", "changes": ["rename x to count"]}`

	got := ParseAnalysis(response)
	if got.Action != "modify" {
		t.Errorf("action = %q", got.Action)
	}
	if len(got.Changes) != 1 {
		t.Errorf("changes = %v", got.Changes)
	}
}

func TestParseAnalysis_FallsBackToNoAction(t *testing.T) {
	for _, response := range []string{"", "nope", "{broken"} {
		got := ParseAnalysis(response)
		if got.Action != "no_action" {
			t.Errorf("ParseAnalysis(%q).Action = %q, want no_action", response, got.Action)
		}
	}
}

func TestParseAnalysis_EmptyActionNormalized(t *testing.T) {
	got := ParseAnalysis(`{"reasoning": "nothing to do"}`)
	if got.Action != "no_action" {
		t.Errorf("action = %q, want no_action", got.Action)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```go\npackage main\n```", "package main"},
		{"```\nplain\n```", "plain"},
		{"no fences", "no fences"},
		{"```python\nprint(1)\nprint(2)\n```", "print(1)\nprint(2)"},
	}

	for _, tt := range tests {
		if got := StripFences(tt.in); got != tt.want {
			t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
