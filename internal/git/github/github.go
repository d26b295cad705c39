// Package github implements the Git provider interface for GitHub.
package github

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/prsentry/prsentry/internal/git/provider"
	"github.com/prsentry/prsentry/pkg/logger"
)

// GitHub provider constants
const (
	// Default GitHub URL for public GitHub
	defaultGitHubURL = "https://github.com"

	// reviewEventComment submits a review without approving or requesting
	// changes
	reviewEventComment = "COMMENT"

	// URL prefixes and suffixes
	gitSuffix   = ".git"
	httpsPrefix = "https://"
	httpPrefix  = "http://"
	gitAtPrefix = "git@"
)

func init() {
	// Register GitHub provider factory
	provider.Register("github", NewProvider)
}

// GitHubProvider implements the Provider interface for GitHub
type GitHubProvider struct {
	client  *github.Client
	token   string
	baseURL string
}

// NewProvider creates a new GitHub provider instance
func NewProvider(opts *provider.ProviderOptions) (provider.Provider, error) {
	ctx := context.Background()

	var httpClient *http.Client

	if opts.Token != "" {
		// Authenticated mode: use OAuth2 token
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)

		httpClient = oauth2.NewClient(ctx, ts)
		if opts.InsecureSkipVerify {
			transport := httpClient.Transport.(*oauth2.Transport)
			if transport.Base == nil {
				transport.Base = &http.Transport{}
			}
			if t, ok := transport.Base.(*http.Transport); ok {
				if t.TLSClientConfig == nil {
					t.TLSClientConfig = &tls.Config{}
				}
				t.TLSClientConfig.InsecureSkipVerify = true
			}
		}
	} else {
		// Anonymous mode: plain HTTP client for public repositories
		transport := &http.Transport{}
		if opts.InsecureSkipVerify {
			transport.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: true,
			}
		}
		httpClient = &http.Client{
			Transport: transport,
		}
	}

	var client *github.Client
	var err error

	if opts.BaseURL != "" && opts.BaseURL != defaultGitHubURL {
		// GitHub Enterprise
		client, err = github.NewClient(httpClient).WithEnterpriseURLs(opts.BaseURL, opts.BaseURL)
		if err != nil {
			return nil, &provider.ProviderError{
				Provider: "github",
				Message:  "failed to create enterprise client",
				Err:      err,
			}
		}
	} else {
		client = github.NewClient(httpClient)
	}

	return &GitHubProvider{
		client:  client,
		token:   opts.Token,
		baseURL: opts.BaseURL,
	}, nil
}

// Name returns the provider name
func (p *GitHubProvider) Name() string {
	return "github"
}

// GetPullRequest retrieves pull request details
func (p *GitHubProvider) GetPullRequest(ctx context.Context, owner, repo string, number int) (*provider.PullRequest, error) {
	pr, _, err := p.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		logger.Error("Failed to get pull request",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("repo", repo),
			zap.Int("number", number),
		)
		return nil, &provider.ProviderError{
			Provider: "github",
			Message:  "failed to get pull request",
			Err:      err,
		}
	}

	return &provider.PullRequest{
		Number:      pr.GetNumber(),
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
		State:       pr.GetState(),
		HeadBranch:  pr.GetHead().GetRef(),
		HeadSHA:     pr.GetHead().GetSHA(),
		BaseBranch:  pr.GetBase().GetRef(),
		BaseSHA:     pr.GetBase().GetSHA(),
		Author:      pr.GetUser().GetLogin(),
		URL:         pr.GetHTMLURL(),
	}, nil
}

// PostComment posts a conversation-level comment on a PR
func (p *GitHubProvider) PostComment(ctx context.Context, owner, repo string, prNumber int, body string) error {
	comment := &github.IssueComment{Body: &body}
	_, _, err := p.client.Issues.CreateComment(ctx, owner, repo, prNumber, comment)
	if err != nil {
		logger.Error("Failed to post PR comment",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("repo", repo),
			zap.Int("pr", prNumber),
		)
		return &provider.ProviderError{
			Provider: "github",
			Message:  "failed to post PR comment",
			Err:      err,
		}
	}
	return nil
}

// CreateReview submits a review with inline comments. GitHub addresses
// inline comments by diff position, so each comment's Position field is
// used and Line is ignored.
func (p *GitHubProvider) CreateReview(ctx context.Context, owner, repo string, prNumber int, commitSHA, body string, comments []provider.ReviewComment) error {
	draft := make([]*github.DraftReviewComment, 0, len(comments))
	for i := range comments {
		c := comments[i]
		draft = append(draft, &github.DraftReviewComment{
			Path:     github.String(c.Path),
			Position: github.Int(c.Position),
			Body:     github.String(c.Body),
		})
	}

	req := &github.PullRequestReviewRequest{
		CommitID: github.String(commitSHA),
		Body:     github.String(body),
		Event:    github.String(reviewEventComment),
		Comments: draft,
	}

	_, _, err := p.client.PullRequests.CreateReview(ctx, owner, repo, prNumber, req)
	if err != nil {
		logger.Error("Failed to create review",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("repo", repo),
			zap.Int("pr", prNumber),
			zap.Int("comments", len(comments)),
		)
		return &provider.ProviderError{
			Provider: "github",
			Message:  "failed to create review",
			Err:      err,
		}
	}
	return nil
}

// ValidateToken validates the provider token
func (p *GitHubProvider) ValidateToken(ctx context.Context) error {
	_, _, err := p.client.Users.Get(ctx, "")
	if err != nil {
		return &provider.ProviderError{
			Provider: "github",
			Message:  "invalid token",
			Err:      err,
		}
	}
	return nil
}

// normalizeURL removes protocol prefixes, .git suffix, and trailing slashes
// from a URL. It also converts git@ format (git@github.com:owner/repo) to
// standard path format.
func normalizeURL(url string) string {
	url = strings.TrimSuffix(url, gitSuffix)
	url = strings.TrimPrefix(url, httpsPrefix)
	url = strings.TrimPrefix(url, httpPrefix)
	url = strings.TrimPrefix(url, gitAtPrefix)
	url = strings.TrimSuffix(url, "/")

	// git@github.com:owner/repo -> github.com/owner/repo
	if idx := strings.Index(url, ":"); idx != -1 {
		url = url[:idx] + "/" + url[idx+1:]
	}

	return url
}

// ParseRepoPath parses owner and repo from a repository URL or path.
// GitHub uses two-level owner/repo paths; a leading domain is skipped.
func (p *GitHubProvider) ParseRepoPath(repoURL string) (owner, repo string, err error) {
	if repoURL == "" {
		return "", "", &provider.ProviderError{
			Provider: "github",
			Message:  "empty repository URL",
		}
	}

	url := normalizeURL(repoURL)

	var parts []string
	for _, part := range strings.Split(url, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}

	switch {
	case len(parts) == 2:
		// owner/repo format
		return parts[0], parts[1], nil
	case len(parts) >= 3:
		// domain/owner/repo format
		return parts[1], parts[2], nil
	default:
		return "", "", &provider.ProviderError{
			Provider: "github",
			Message:  fmt.Sprintf("invalid repository URL format: %s", repoURL),
		}
	}
}
