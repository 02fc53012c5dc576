package diffpos

import (
	"sort"
	"testing"
)

func sorted(s LineSet) []int {
	var out []int
	for n := range s {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

func TestCommentable_EmptyPatch(t *testing.T) {
	if got := Commentable(""); got.Len() != 0 {
		t.Errorf("Commentable(\"\") = %v, want empty set", sorted(got))
	}
}

func TestCommentable_MixedHunk(t *testing.T) {
	// One context, one added, one removed, one context. The removed
	// line consumes no new-file slot: ctx->10, add->11, del skipped,
	// ctx->12.
	patch := "@@ -1,3 +10,3 @@\n unchanged\n+added\n-removed\n trailing\n"

	got := Commentable(patch)
	want := []int{10, 11, 12}
	if g := sorted(got); len(g) != len(want) {
		t.Fatalf("lines = %v, want %v", g, want)
	}
	for _, n := range want {
		if !got.Contains(n) {
			t.Errorf("missing line %d in %v", n, sorted(got))
		}
	}
}

func TestCommentable_NewFile(t *testing.T) {
	patch := "@@ -0,0 +1,2 @@\n+hello\n+world\n"

	got := Commentable(patch)
	if !got.Contains(1) || !got.Contains(2) {
		t.Errorf("lines = %v, want {1, 2}", sorted(got))
	}
	if got.Contains(3) {
		t.Error("line 3 should not be commentable")
	}
}

func TestCommentable_MultipleHunks(t *testing.T) {
	patch := "@@ -1,2 +1,2 @@\n ctx\n+new\n" +
		"@@ -10,2 +20,2 @@\n ctx\n+new\n"

	got := Commentable(patch)
	want := []int{1, 2, 20, 21}
	g := sorted(got)
	if len(g) != len(want) {
		t.Fatalf("lines = %v, want %v", g, want)
	}
	for i, n := range want {
		if g[i] != n {
			t.Errorf("lines = %v, want %v", g, want)
			break
		}
	}
}

func TestCommentable_FileMarkersIgnored(t *testing.T) {
	patch := "--- a/foo.go\n+++ b/foo.go\n@@ -1,1 +1,1 @@\n+only\n"

	got := Commentable(patch)
	if got.Len() != 1 || !got.Contains(1) {
		t.Errorf("lines = %v, want {1}", sorted(got))
	}
}

func TestCommentable_RemovedOnlyHunk(t *testing.T) {
	patch := "@@ -5,2 +5,0 @@\n-gone\n-also gone\n"

	if got := Commentable(patch); got.Len() != 0 {
		t.Errorf("lines = %v, want empty set", sorted(got))
	}
}

func TestCommentable_MalformedHeaderPreservesCounter(t *testing.T) {
	// The second header is malformed; the counter keeps running from
	// where the first hunk left off rather than resetting.
	patch := "@@ -1,1 +1,1 @@\n+first\n" +
		"@@ garbage @@\n+second\n"

	got := Commentable(patch)
	if !got.Contains(1) {
		t.Error("line 1 from the valid hunk should be commentable")
	}
	if !got.Contains(2) {
		t.Errorf("counter should continue past malformed header, got %v", sorted(got))
	}
}

func TestCommentable_NoNewlineMarker(t *testing.T) {
	patch := "@@ -1,1 +1,1 @@\n+last line\n\\ No newline at end of file\n"

	got := Commentable(patch)
	if got.Len() != 1 || !got.Contains(1) {
		t.Errorf("lines = %v, want {1}", sorted(got))
	}
}

func TestCommentable_NonNegative(t *testing.T) {
	// No hunk header at all: lines attach to the zero counter but
	// never go negative.
	patch := " floating context\n+floating add\n"

	for n := range Commentable(patch) {
		if n < 0 {
			t.Errorf("negative line number %d", n)
		}
	}
}
