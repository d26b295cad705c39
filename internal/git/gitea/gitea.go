// Package gitea implements the Git provider interface for Gitea.
package gitea

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"

	"code.gitea.io/sdk/gitea"
	"go.uber.org/zap"

	"github.com/prsentry/prsentry/internal/git/provider"
	"github.com/prsentry/prsentry/pkg/logger"
)

// defaultGiteaURL is the public Gitea instance
const defaultGiteaURL = "https://gitea.com"

func init() {
	// Register Gitea provider factory
	provider.Register("gitea", NewProvider)
}

// GiteaProvider implements the Provider interface for Gitea
type GiteaProvider struct {
	client  *gitea.Client
	token   string
	baseURL string
}

// NewProvider creates a new Gitea provider instance
func NewProvider(opts *provider.ProviderOptions) (provider.Provider, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultGiteaURL
	}

	clientOpts := []gitea.ClientOption{
		gitea.SetToken(opts.Token),
	}

	if opts.InsecureSkipVerify {
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, //nolint:gosec // User explicitly enabled insecure mode
				},
			},
		}
		clientOpts = append(clientOpts, gitea.SetHTTPClient(httpClient))
		logger.Warn("Gitea client configured with InsecureSkipVerify=true, SSL certificate verification is disabled")
	}

	client, err := gitea.NewClient(baseURL, clientOpts...)
	if err != nil {
		return nil, &provider.ProviderError{
			Provider: "gitea",
			Message:  "failed to create gitea client",
			Err:      err,
		}
	}

	return &GiteaProvider{
		client:  client,
		token:   opts.Token,
		baseURL: baseURL,
	}, nil
}

// Name returns the provider name
func (p *GiteaProvider) Name() string {
	return "gitea"
}

// GetPullRequest retrieves pull request details
func (p *GiteaProvider) GetPullRequest(ctx context.Context, owner, repo string, number int) (*provider.PullRequest, error) {
	pr, _, err := p.client.GetPullRequest(owner, repo, int64(number))
	if err != nil {
		logger.Error("Failed to get pull request",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("repo", repo),
			zap.Int("number", number),
		)
		return nil, &provider.ProviderError{
			Provider: "gitea",
			Message:  "failed to get pull request",
			Err:      err,
		}
	}

	author := ""
	if pr.Poster != nil {
		author = pr.Poster.UserName
	}

	return &provider.PullRequest{
		Number:      int(pr.Index),
		Title:       pr.Title,
		Description: pr.Body,
		State:       string(pr.State),
		HeadBranch:  pr.Head.Ref,
		HeadSHA:     pr.Head.Sha,
		BaseBranch:  pr.Base.Ref,
		BaseSHA:     pr.MergeBase,
		Author:      author,
		URL:         pr.HTMLURL,
	}, nil
}

// PostComment posts a conversation-level comment on a PR
func (p *GiteaProvider) PostComment(ctx context.Context, owner, repo string, prNumber int, body string) error {
	_, _, err := p.client.CreateIssueComment(owner, repo, int64(prNumber), gitea.CreateIssueCommentOption{
		Body: body,
	})
	if err != nil {
		logger.Error("Failed to post PR comment",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("repo", repo),
			zap.Int("pr", prNumber),
		)
		return &provider.ProviderError{
			Provider: "gitea",
			Message:  "failed to post PR comment",
			Err:      err,
		}
	}
	return nil
}

// CreateReview submits a review with inline comments. Gitea addresses
// inline comments by new-file line number, so each comment's Line field is
// used and Position is ignored.
func (p *GiteaProvider) CreateReview(ctx context.Context, owner, repo string, prNumber int, commitSHA, body string, comments []provider.ReviewComment) error {
	reviewComments := make([]gitea.CreatePullReviewComment, 0, len(comments))
	for _, c := range comments {
		reviewComments = append(reviewComments, gitea.CreatePullReviewComment{
			Path:       c.Path,
			Body:       c.Body,
			NewLineNum: int64(c.Line),
		})
	}

	_, _, err := p.client.CreatePullReview(owner, repo, int64(prNumber), gitea.CreatePullReviewOptions{
		State:    gitea.ReviewStateComment,
		Body:     body,
		CommitID: commitSHA,
		Comments: reviewComments,
	})
	if err != nil {
		logger.Error("Failed to create review",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("repo", repo),
			zap.Int("pr", prNumber),
			zap.Int("comments", len(comments)),
		)
		return &provider.ProviderError{
			Provider: "gitea",
			Message:  "failed to create review",
			Err:      err,
		}
	}
	return nil
}

// ValidateToken validates the provider token
func (p *GiteaProvider) ValidateToken(ctx context.Context) error {
	user, _, err := p.client.GetMyUserInfo()
	if err != nil {
		return &provider.ProviderError{
			Provider: "gitea",
			Message:  "invalid token",
			Err:      err,
		}
	}

	logger.Debug("Gitea token validated",
		zap.String("username", user.UserName),
	)
	return nil
}

// ParseRepoPath parses owner and repo from a repository URL or path.
// Gitea uses two-level owner/repo paths; a leading domain is skipped.
func (p *GiteaProvider) ParseRepoPath(repoURL string) (owner, repo string, err error) {
	if repoURL == "" {
		return "", "", &provider.ProviderError{
			Provider: "gitea",
			Message:  "empty repository URL",
		}
	}

	url := strings.TrimSuffix(repoURL, ".git")
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "git@")
	url = strings.TrimSuffix(url, "/")

	// git@gitea.com:owner/repo -> gitea.com/owner/repo
	if idx := strings.Index(url, ":"); idx != -1 {
		url = url[:idx] + "/" + url[idx+1:]
	}

	var parts []string
	for _, part := range strings.Split(url, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}

	switch {
	case len(parts) == 2:
		return parts[0], parts[1], nil
	case len(parts) >= 3:
		return parts[1], parts[2], nil
	default:
		return "", "", &provider.ProviderError{
			Provider: "gitea",
			Message:  fmt.Sprintf("invalid repository URL format: %s", repoURL),
		}
	}
}
