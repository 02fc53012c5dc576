// Package github implements the hosting-platform client for pull
// requests using the go-github library.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/prvet-dev/prvet/internal/prompt"
	"github.com/prvet-dev/prvet/internal/review"
)

var prURLRE = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)`)

// PRRef identifies one pull request.
type PRRef struct {
	Owner  string
	Repo   string
	Number int
}

func (r PRRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// ParsePRURL extracts owner, repo, and PR number from a GitHub pull
// request URL like https://github.com/owner/repo/pull/123.
func ParsePRURL(prURL string) (PRRef, error) {
	m := prURLRE.FindStringSubmatch(prURL)
	if m == nil {
		return PRRef{}, fmt.Errorf("invalid PR URL: %s", prURL)
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return PRRef{}, fmt.Errorf("invalid PR number in URL %s: %w", prURL, err)
	}
	return PRRef{Owner: m[1], Repo: m[2], Number: number}, nil
}

// ReviewComment is an existing inline comment on a pull request.
type ReviewComment struct {
	ID        int64
	Body      string
	Path      string
	Line      int
	User      string
	InReplyTo int64
	CreatedAt time.Time
}

// Client talks to the GitHub REST API.
type Client struct {
	gh *gh.Client
}

// NewClient builds a client with the standard transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (sleeps on secondary rate limits)
//  3. go-github with PAT auth
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	return &Client{
		gh: gh.NewClient(rateLimitClient).WithAuthToken(token),
	}
}

// NewClientWithHTTPClient builds a client against a custom base URL,
// for tests that point at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// GetPullRequest fetches the PR's metadata as prompt context.
func (c *Client) GetPullRequest(ctx context.Context, ref PRRef) (prompt.PRContext, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return prompt.PRContext{}, fmt.Errorf("fetching %s: %w", ref, err)
	}

	return prompt.PRContext{
		Number:      pr.GetNumber(),
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
		BaseBranch:  pr.GetBase().GetRef(),
		HeadBranch:  pr.GetHead().GetRef(),
		HeadSHA:     pr.GetHead().GetSHA(),
		State:       pr.GetState(),
		Author:      pr.GetUser().GetLogin(),
	}, nil
}

// ListFiles returns the PR's changed files with their patches.
// Binary and diff-less files come back with an empty Patch; callers
// exclude those before analysis. Pagination is handled here.
func (c *Client) ListFiles(ctx context.Context, ref PRRef) ([]review.FileTask, error) {
	opts := &gh.ListOptions{PerPage: 100}

	var tasks []review.FileTask
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing files for %s (page %d): %w", ref, opts.Page, err)
		}

		for _, f := range files {
			tasks = append(tasks, review.FileTask{
				Path:  f.GetFilename(),
				Patch: f.GetPatch(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return tasks, nil
}

// GetFileContent fetches a file's content at the given ref (normally
// the PR's head SHA).
func (c *Client) GetFileContent(ctx context.Context, ref PRRef, path, gitRef string) (string, error) {
	fc, _, _, err := c.gh.Repositories.GetContents(ctx, ref.Owner, ref.Repo, path,
		&gh.RepositoryContentGetOptions{Ref: gitRef})
	if err != nil {
		return "", fmt.Errorf("fetching %s@%s: %w", path, gitRef, err)
	}
	if fc == nil {
		return "", fmt.Errorf("fetching %s@%s: not a file", path, gitRef)
	}

	content, err := fc.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s@%s: %w", path, gitRef, err)
	}
	return content, nil
}

// ListReviewComments returns all inline review comments on the PR,
// with pagination handled.
func (c *Client) ListReviewComments(ctx context.Context, ref PRRef) ([]ReviewComment, error) {
	opts := &gh.PullRequestListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var comments []ReviewComment
	for {
		page, resp, err := c.gh.PullRequests.ListComments(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing comments for %s (page %d): %w", ref, opts.Page, err)
		}

		for _, cm := range page {
			comments = append(comments, ReviewComment{
				ID:        cm.GetID(),
				Body:      cm.GetBody(),
				Path:      cm.GetPath(),
				Line:      cm.GetLine(),
				User:      cm.GetUser().GetLogin(),
				InReplyTo: cm.GetInReplyTo(),
				CreatedAt: cm.GetCreatedAt().Time,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// UnresolvedComments filters review comments down to those with no
// reply. A comment nobody replied to is treated as unaddressed; this
// is a heuristic, not resolution state from the API.
func UnresolvedComments(comments []ReviewComment) []ReviewComment {
	var unresolved []ReviewComment
	replied := make(map[int64]bool)
	for _, c := range comments {
		if c.InReplyTo != 0 {
			replied[c.InReplyTo] = true
		}
	}
	for _, c := range comments {
		if c.InReplyTo == 0 && !replied[c.ID] {
			unresolved = append(unresolved, c)
		}
	}
	return unresolved
}
