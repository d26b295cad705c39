// Package gitlab implements the Git provider interface for GitLab.
package gitlab

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/prsentry/prsentry/internal/git/provider"
	"github.com/prsentry/prsentry/pkg/logger"
)

// defaultGitLabURL is the public GitLab instance
const defaultGitLabURL = "https://gitlab.com"

func init() {
	// Register GitLab provider factory
	provider.Register("gitlab", NewProvider)
}

// GitLabProvider implements the Provider interface for GitLab
type GitLabProvider struct {
	client  *gitlab.Client
	token   string
	baseURL string
}

// NewProvider creates a new GitLab provider instance
func NewProvider(opts *provider.ProviderOptions) (provider.Provider, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultGitLabURL
	}

	clientOpts := []gitlab.ClientOptionFunc{}

	if baseURL != defaultGitLabURL {
		clientOpts = append(clientOpts, gitlab.WithBaseURL(baseURL))
	}

	if opts.InsecureSkipVerify {
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, //nolint:gosec // User explicitly enabled insecure mode
				},
			},
		}
		clientOpts = append(clientOpts, gitlab.WithHTTPClient(httpClient))
		logger.Warn("GitLab client configured with InsecureSkipVerify=true, SSL certificate verification is disabled")
	}

	client, err := gitlab.NewClient(opts.Token, clientOpts...)
	if err != nil {
		return nil, &provider.ProviderError{
			Provider: "gitlab",
			Message:  "failed to create gitlab client",
			Err:      err,
		}
	}

	return &GitLabProvider{
		client:  client,
		token:   opts.Token,
		baseURL: baseURL,
	}, nil
}

// Name returns the provider name
func (p *GitLabProvider) Name() string {
	return "gitlab"
}

// projectPath builds the GitLab project path from owner and repo
func projectPath(owner, repo string) string {
	return owner + "/" + repo
}

// GetPullRequest retrieves merge request details
func (p *GitLabProvider) GetPullRequest(ctx context.Context, owner, repo string, number int) (*provider.PullRequest, error) {
	mr, _, err := p.client.MergeRequests.GetMergeRequest(projectPath(owner, repo), int64(number), nil)
	if err != nil {
		logger.Error("Failed to get merge request",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("repo", repo),
			zap.Int("number", number),
		)
		return nil, &provider.ProviderError{
			Provider: "gitlab",
			Message:  "failed to get merge request",
			Err:      err,
		}
	}

	return &provider.PullRequest{
		Number:      int(mr.IID),
		Title:       mr.Title,
		Description: mr.Description,
		State:       mr.State,
		HeadBranch:  mr.SourceBranch,
		HeadSHA:     mr.SHA,
		BaseBranch:  mr.TargetBranch,
		BaseSHA:     mr.DiffRefs.BaseSha,
		Author:      mr.Author.Username,
		URL:         mr.WebURL,
	}, nil
}

// PostComment posts a note on an MR
func (p *GitLabProvider) PostComment(ctx context.Context, owner, repo string, prNumber int, body string) error {
	pid := projectPath(owner, repo)

	_, _, err := p.client.Notes.CreateMergeRequestNote(pid, int64(prNumber), &gitlab.CreateMergeRequestNoteOptions{
		Body: &body,
	})
	if err != nil {
		logger.Error("Failed to post MR comment",
			zap.Error(err),
			zap.String("owner", owner),
			zap.String("repo", repo),
			zap.Int("mr", prNumber),
		)
		return &provider.ProviderError{
			Provider: "gitlab",
			Message:  "failed to post MR comment",
			Err:      err,
		}
	}
	return nil
}

// CreateReview posts the review body as an MR note, then creates one diff
// discussion per inline comment. GitLab addresses inline comments by
// new-file line rather than diff position, so each comment's Line field is
// used. A comment whose line cannot be anchored falls back to a plain note
// naming the file and line.
func (p *GitLabProvider) CreateReview(ctx context.Context, owner, repo string, prNumber int, commitSHA, body string, comments []provider.ReviewComment) error {
	pid := projectPath(owner, repo)

	mr, _, err := p.client.MergeRequests.GetMergeRequest(pid, int64(prNumber), nil)
	if err != nil {
		return &provider.ProviderError{
			Provider: "gitlab",
			Message:  "failed to get merge request for review",
			Err:      err,
		}
	}

	if body != "" {
		if err := p.PostComment(ctx, owner, repo, prNumber, body); err != nil {
			return err
		}
	}

	for _, c := range comments {
		pos := &gitlab.PositionOptions{
			BaseSHA:      gitlab.Ptr(mr.DiffRefs.BaseSha),
			StartSHA:     gitlab.Ptr(mr.DiffRefs.StartSha),
			HeadSHA:      gitlab.Ptr(mr.DiffRefs.HeadSha),
			NewPath:      gitlab.Ptr(c.Path),
			NewLine:      gitlab.Ptr(int64(c.Line)),
			PositionType: gitlab.Ptr("text"),
		}

		_, _, err := p.client.Discussions.CreateMergeRequestDiscussion(pid, int64(prNumber), &gitlab.CreateMergeRequestDiscussionOptions{
			Body:     gitlab.Ptr(c.Body),
			Position: pos,
		})
		if err != nil {
			logger.Warn("Failed to anchor inline comment, posting plain note",
				zap.Error(err),
				zap.String("file", c.Path),
				zap.Int("line", c.Line),
			)
			note := fmt.Sprintf("`%s:%d`\n\n%s", c.Path, c.Line, c.Body)
			if noteErr := p.PostComment(ctx, owner, repo, prNumber, note); noteErr != nil {
				return noteErr
			}
		}
	}

	return nil
}

// ValidateToken validates the provider token
func (p *GitLabProvider) ValidateToken(ctx context.Context) error {
	user, _, err := p.client.Users.CurrentUser()
	if err != nil {
		return &provider.ProviderError{
			Provider: "gitlab",
			Message:  "invalid token",
			Err:      err,
		}
	}

	logger.Debug("GitLab token validated",
		zap.String("username", user.Username),
	)
	return nil
}

// ParseRepoPath parses owner and repo from a repository URL or path.
// GitLab supports multi-level namespaces: for group/subgroup/project the
// owner is group/subgroup and the repo is the project name.
func (p *GitLabProvider) ParseRepoPath(repoURL string) (owner, repo string, err error) {
	if repoURL == "" {
		return "", "", &provider.ProviderError{
			Provider: "gitlab",
			Message:  "empty repository URL",
		}
	}

	url := strings.TrimSuffix(repoURL, ".git")
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "git@")
	url = strings.TrimSuffix(url, "/")

	// git@gitlab.com:group/subgroup/project -> group/subgroup/project
	if strings.Contains(url, ":") {
		parts := strings.SplitN(url, ":", 2)
		url = parts[1]
	}

	var cleanParts []string
	for _, part := range strings.Split(url, "/") {
		if part != "" {
			cleanParts = append(cleanParts, part)
		}
	}

	// a leading segment with a dot is a domain, skip it
	if len(cleanParts) > 0 && strings.Contains(cleanParts[0], ".") {
		cleanParts = cleanParts[1:]
	}

	if len(cleanParts) < 2 {
		return "", "", &provider.ProviderError{
			Provider: "gitlab",
			Message:  fmt.Sprintf("invalid repository URL format: %s", repoURL),
		}
	}

	repo = cleanParts[len(cleanParts)-1]
	owner = strings.Join(cleanParts[:len(cleanParts)-1], "/")
	return owner, repo, nil
}
