// internal/github/client.go
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "repo-history-harvester/internal/errors"
	"repo-history-harvester/internal/model"
)

const defaultPerPage = 100

// Client is a wrapper around the go-github client.
type Client struct {
	gh      *github.Client
	logger  *slog.Logger
	perPage int
}

// Option customizes a Client.
type Option func(*Client) error

// WithBaseURL points the client at another API root, e.g. a GitHub Enterprise
// instance ("https://ghe.example.com/api/v3/"). An empty string keeps the default.
func WithBaseURL(rawURL string) Option {
	return func(c *Client) error {
		if rawURL == "" {
			return nil
		}
		if !strings.HasSuffix(rawURL, "/") {
			rawURL += "/"
		}
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid GitHub API url %q: %w", rawURL, err)
		}
		c.gh.BaseURL = u
		return nil
	}
}

// WithPerPage sets the page size used for every listing call.
func WithPerPage(n int) Option {
	return func(c *Client) error {
		if n < 1 || n > 100 {
			return fmt.Errorf("page size must be between 1 and 100, got %d", n)
		}
		c.perPage = n
		return nil
	}
}

// NewClient creates and configures a new Client instance.
// The provided token is used to create an authenticated http.Client.
func NewClient(token string, logger *slog.Logger, opts ...Option) (*Client, error) {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	c := &Client{
		gh:      github.NewClient(tc),
		logger:  logger,
		perPage: defaultPerPage,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// HarvestCommits fetches the complete commit history of repoName ("owner/name")
// in the order the API returns it.
func (c *Client) HarvestCommits(ctx context.Context, repoName string) ([]model.Commit, error) {
	owner, name, err := c.resolveRepository(ctx, repoName)
	if err != nil {
		return nil, err
	}

	pages := Pages(ctx, c.perPage, func(ctx context.Context, lo github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
		c.logger.Debug("Fetching commits page", "repo", repoName, "page", lo.Page)
		return c.gh.Repositories.ListCommits(ctx, owner, name, &github.CommitsListOptions{ListOptions: lo})
	})

	var commits []model.Commit
	for rc, err := range pages {
		if err != nil {
			return nil, fmt.Errorf("list commits of %s: %w", repoName, err)
		}
		commit, err := toInternalCommit(repoName, rc)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// HarvestPullRequests fetches every pull request of repoName in all states,
// newest first, along with the SHAs of each pull request's commits.
// Any failure discards the whole result.
func (c *Client) HarvestPullRequests(ctx context.Context, repoName string) ([]model.PullRequest, error) {
	owner, name, err := c.resolveRepository(ctx, repoName)
	if err != nil {
		return nil, err
	}

	pages := Pages(ctx, c.perPage, func(ctx context.Context, lo github.ListOptions) ([]*github.PullRequest, *github.Response, error) {
		c.logger.Debug("Fetching pull requests page", "repo", repoName, "page", lo.Page)
		return c.gh.PullRequests.List(ctx, owner, name, &github.PullRequestListOptions{
			State:       "all",
			Sort:        "created",
			Direction:   "desc",
			ListOptions: lo,
		})
	})

	emails := make(map[string]*string)
	var pulls []model.PullRequest
	for pr, err := range pages {
		if err != nil {
			return nil, fmt.Errorf("list pull requests of %s: %w", repoName, err)
		}

		// List items omit the discussion counters.
		if pr.Comments == nil || pr.ReviewComments == nil {
			full, _, err := c.gh.PullRequests.Get(ctx, owner, name, pr.GetNumber())
			if err != nil {
				return nil, fmt.Errorf("get pull request %s#%d: %w", repoName, pr.GetNumber(), err)
			}
			pr = full
		}

		shas, err := c.pullRequestCommitSHAs(ctx, owner, name, pr.GetNumber())
		if err != nil {
			return nil, fmt.Errorf("list commits of pull request %s#%d: %w", repoName, pr.GetNumber(), err)
		}

		email, err := c.userEmail(ctx, pr.GetUser(), emails)
		if err != nil {
			return nil, err
		}

		pulls = append(pulls, toInternalPullRequest(repoName, pr, email, shas))
	}
	return pulls, nil
}

// resolveRepository splits repoName and checks the repository is reachable with our credential.
func (c *Client) resolveRepository(ctx context.Context, repoName string) (string, string, error) {
	owner, name, err := splitRepoName(repoName)
	if err != nil {
		return "", "", err
	}
	if _, _, err := c.gh.Repositories.Get(ctx, owner, name); err != nil {
		return "", "", fmt.Errorf("resolve repository %s: %w", repoName, err)
	}
	return owner, name, nil
}

func (c *Client) pullRequestCommitSHAs(ctx context.Context, owner, name string, number int) ([]string, error) {
	commits, err := Collect(Pages(ctx, c.perPage, func(ctx context.Context, lo github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
		c.logger.Debug("Fetching pull request commits page", "owner", owner, "repo", name, "number", number, "page", lo.Page)
		return c.gh.PullRequests.ListCommits(ctx, owner, name, number, &lo)
	}))
	if err != nil {
		return nil, err
	}

	shas := make([]string, 0, len(commits))
	for _, rc := range commits {
		shas = append(shas, rc.GetSHA())
	}
	return shas, nil
}

// userEmail returns the public email of u, looking the profile up once per
// login when the embedded user object does not carry it.
func (c *Client) userEmail(ctx context.Context, u *github.User, seen map[string]*string) (*string, error) {
	if u == nil {
		return nil, nil
	}
	if u.Email != nil {
		return toNullableString(u.Email), nil
	}
	login := u.GetLogin()
	if login == "" {
		return nil, nil
	}
	if email, ok := seen[login]; ok {
		return email, nil
	}

	profile, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", login, err)
	}
	email := toNullableString(profile.Email)
	seen[login] = email
	return email, nil
}

func splitRepoName(repoName string) (string, string, error) {
	owner, name, ok := strings.Cut(repoName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", &custom_errors.ErrInvalidRepoFormat{Repo: repoName}
	}
	return owner, name, nil
}

// toInternalCommit translates a github.RepositoryCommit object to our internal model.Commit.
func toInternalCommit(repoName string, c *github.RepositoryCommit) (model.Commit, error) {
	author := c.GetCommit().GetAuthor()
	if author == nil {
		return model.Commit{}, &custom_errors.ErrMissingCommitAuthor{Repo: repoName, SHA: c.GetSHA()}
	}
	return model.Commit{
		SHA:      c.GetSHA(),
		Message:  c.GetCommit().GetMessage(),
		Author:   author.GetName(),
		Email:    toNullableString(author.Email),
		Date:     author.GetDate().Time.UTC(),
		URL:      c.GetHTMLURL(),
		RepoName: repoName,
	}, nil
}

// toInternalPullRequest translates a github.PullRequest object to our internal model.PullRequest.
func toInternalPullRequest(repoName string, pr *github.PullRequest, email *string, shas []string) model.PullRequest {
	return model.PullRequest{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		Author:         pr.GetUser().GetLogin(),
		Email:          email,
		CreatedAt:      pr.GetCreatedAt().Time.UTC(),
		State:          pr.GetState(),
		Comments:       pr.GetComments(),
		ReviewComments: pr.GetReviewComments(),
		Commits:        shas,
		URL:            pr.GetHTMLURL(),
		RepoName:       repoName,
	}
}

// toNullableString treats an empty string the same as an absent one.
func toNullableString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
