package review

import "testing"

func TestBuildPayload_CommentsWithSummary(t *testing.T) {
	accepted := []Candidate{{Path: "a.go", Line: 1, Body: "fix this"}}

	p, ok := BuildPayload(accepted, "looks mostly fine", EventComment)

	if !ok {
		t.Fatal("expected a payload")
	}
	if p.Body != "looks mostly fine" {
		t.Errorf("body = %q", p.Body)
	}
	if p.Event != EventComment {
		t.Errorf("event = %q, want %q", p.Event, EventComment)
	}
	if len(p.Comments) != 1 {
		t.Errorf("comments = %+v, want one", p.Comments)
	}
}

func TestBuildPayload_DefaultBody(t *testing.T) {
	accepted := []Candidate{{Path: "a.go", Line: 1}}

	p, ok := BuildPayload(accepted, "", EventComment)

	if !ok {
		t.Fatal("expected a payload")
	}
	if p.Body != DefaultBody {
		t.Errorf("body = %q, want default placeholder", p.Body)
	}
}

func TestBuildPayload_SummaryOnly(t *testing.T) {
	p, ok := BuildPayload(nil, "no inline issues", EventComment)

	if !ok {
		t.Fatal("expected a payload")
	}
	if len(p.Comments) != 0 {
		t.Errorf("comments = %+v, want empty", p.Comments)
	}
	if p.Body != "no inline issues" {
		t.Errorf("body = %q", p.Body)
	}
}

func TestBuildPayload_NothingToSubmit(t *testing.T) {
	if _, ok := BuildPayload(nil, "", EventComment); ok {
		t.Error("empty comments and empty summary should yield no payload")
	}
}
