package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prvet-dev/prvet/internal/review"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClientWithHTTPClient(srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("NewClientWithHTTPClient: %v", err)
	}
	return c
}

func TestParsePRURL(t *testing.T) {
	tests := []struct {
		url     string
		want    PRRef
		wantErr bool
	}{
		{
			url:  "https://github.com/octo/hello/pull/42",
			want: PRRef{Owner: "octo", Repo: "hello", Number: 42},
		},
		{
			url:  "http://github.com/a/b/pull/1",
			want: PRRef{Owner: "a", Repo: "b", Number: 1},
		},
		{url: "https://github.com/octo/hello/issues/42", wantErr: true},
		{url: "not a url", wantErr: true},
		{url: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePRURL(tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePRURL(%q): expected error", tt.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePRURL(%q): %v", tt.url, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePRURL(%q) = %+v, want %+v", tt.url, got, tt.want)
		}
	}
}

func TestGetPullRequest(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octo/hello/pulls/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"number": 42,
			"title": "Add feature",
			"body": "Adds the feature",
			"state": "open",
			"user": {"login": "dev"},
			"base": {"ref": "main"},
			"head": {"ref": "feature", "sha": "abc123"}
		}`)
	}))

	pr, err := c.GetPullRequest(context.Background(), PRRef{Owner: "octo", Repo: "hello", Number: 42})
	if err != nil {
		t.Fatalf("GetPullRequest: %v", err)
	}
	if pr.Number != 42 || pr.Title != "Add feature" {
		t.Errorf("pr = %+v", pr)
	}
	if pr.BaseBranch != "main" || pr.HeadBranch != "feature" || pr.HeadSHA != "abc123" {
		t.Errorf("branches = %+v", pr)
	}
	if pr.Author != "dev" {
		t.Errorf("author = %q", pr.Author)
	}
}

func TestListFiles_Pagination(t *testing.T) {
	var mux http.ServeMux
	mux.HandleFunc("/repos/octo/hello/pulls/1/files", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" || page == "1" {
			w.Header().Set("Link",
				fmt.Sprintf(`<http://%s/repos/octo/hello/pulls/1/files?page=2>; rel="next"`, r.Host))
			fmt.Fprint(w, `[{"filename": "a.go", "patch": "@@ -1,1 +1,1 @@\n+a"}]`)
			return
		}
		fmt.Fprint(w, `[{"filename": "image.png"}]`)
	})

	c := newTestClient(t, &mux)

	files, err := c.ListFiles(context.Background(), PRRef{Owner: "octo", Repo: "hello", Number: 1})
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %+v, want 2", files)
	}
	if files[0].Path != "a.go" || files[0].Patch == "" {
		t.Errorf("files[0] = %+v", files[0])
	}
	if files[1].Path != "image.png" || files[1].Patch != "" {
		t.Errorf("binary file should have empty patch, got %+v", files[1])
	}
}

func TestGetFileContent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ref"); got != "abc123" {
			t.Errorf("ref = %q", got)
		}
		// "package main\n" base64-encoded.
		fmt.Fprint(w, `{
			"type": "file",
			"encoding": "base64",
			"content": "cGFja2FnZSBtYWluCg=="
		}`)
	}))

	content, err := c.GetFileContent(context.Background(),
		PRRef{Owner: "octo", Repo: "hello", Number: 1}, "main.go", "abc123")
	if err != nil {
		t.Fatalf("GetFileContent: %v", err)
	}
	if content != "package main\n" {
		t.Errorf("content = %q", content)
	}
}

func TestListReviewComments(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id": 1, "body": "fix this", "path": "a.go", "line": 3, "user": {"login": "alice"}},
			{"id": 2, "body": "done", "path": "a.go", "line": 3, "in_reply_to_id": 1, "user": {"login": "bob"}},
			{"id": 3, "body": "and this", "path": "b.go", "line": 9, "user": {"login": "alice"}}
		]`)
	}))

	comments, err := c.ListReviewComments(context.Background(), PRRef{Owner: "o", Repo: "r", Number: 1})
	if err != nil {
		t.Fatalf("ListReviewComments: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("comments = %+v", comments)
	}

	unresolved := UnresolvedComments(comments)
	if len(unresolved) != 1 || unresolved[0].ID != 3 {
		t.Errorf("unresolved = %+v, want only comment 3", unresolved)
	}
}

func TestSubmitReview_InlineComments(t *testing.T) {
	var gotReview struct {
		Body     string `json:"body"`
		Event    string `json:"event"`
		Comments []struct {
			Path string `json:"path"`
			Line int    `json:"line"`
			Body string `json:"body"`
			Side string `json:"side"`
		} `json:"comments"`
	}
	reviewPosted := false

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/o/r/pulls/5/reviews" {
			t.Errorf("path = %q", r.URL.Path)
		}
		reviewPosted = true
		if err := json.NewDecoder(r.Body).Decode(&gotReview); err != nil {
			t.Fatalf("decode: %v", err)
		}
		fmt.Fprint(w, `{"id": 99}`)
	}))

	payload := review.Payload{
		Body:  "summary",
		Event: review.EventComment,
		Comments: []review.Candidate{
			{Path: "a.go", Line: 3, Body: "fix", Side: "RIGHT"},
			{Path: "b.go", Line: 7, Body: "also fix"},
		},
	}

	if err := c.SubmitReview(context.Background(), PRRef{Owner: "o", Repo: "r", Number: 5}, payload); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if !reviewPosted {
		t.Fatal("review endpoint never called")
	}
	if gotReview.Body != "summary" || gotReview.Event != "COMMENT" {
		t.Errorf("review = %+v", gotReview)
	}
	if len(gotReview.Comments) != 2 {
		t.Fatalf("comments = %+v", gotReview.Comments)
	}
	if gotReview.Comments[1].Side != "RIGHT" {
		t.Error("empty side should default to RIGHT on the wire")
	}
}

func TestSubmitReview_BodyOnlyPostsIssueComment(t *testing.T) {
	issueCommentPosted := false

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/o/r/issues/5/comments":
			issueCommentPosted = true
			fmt.Fprint(w, `{"id": 1}`)
		default:
			t.Errorf("unexpected call to %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	payload := review.Payload{Body: "summary only", Event: review.EventComment}
	if err := c.SubmitReview(context.Background(), PRRef{Owner: "o", Repo: "r", Number: 5}, payload); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if !issueCommentPosted {
		t.Error("body-only payload should post an issue comment")
	}
}

func TestSubmitReview_EmptyPayloadIsNoop(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL.Path)
	}))

	if err := c.SubmitReview(context.Background(), PRRef{Owner: "o", Repo: "r", Number: 5}, review.Payload{}); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
}

func TestReplyToComment(t *testing.T) {
	replied := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/o/r/pulls/5/comments/77/replies" {
			t.Errorf("path = %q", r.URL.Path)
		}
		replied = true
		fmt.Fprint(w, `{"id": 100}`)
	}))

	if err := c.ReplyToComment(context.Background(), PRRef{Owner: "o", Repo: "r", Number: 5}, 77, "fixed, thanks"); err != nil {
		t.Fatalf("ReplyToComment: %v", err)
	}
	if !replied {
		t.Error("reply endpoint never called")
	}
}
