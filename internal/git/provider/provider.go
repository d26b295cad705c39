// Package provider defines the interface for Git hosting providers.
// Different services (GitHub, GitLab, Gitea) implement this interface.
package provider

import (
	"context"
	"strings"
)

// PullRequest represents a pull/merge request
type PullRequest struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	State       string `json:"state"` // open, closed, merged
	HeadBranch  string `json:"head_branch"`
	HeadSHA     string `json:"head_sha"`
	BaseBranch  string `json:"base_branch"`
	BaseSHA     string `json:"base_sha"`
	Author      string `json:"author"`
	URL         string `json:"url"`
}

// ReviewComment is one inline comment in a review submission.
// Position addresses the line for providers that use diff positions
// (GitHub); Line carries the new-file line number for providers that
// address by line (GitLab, Gitea).
type ReviewComment struct {
	Path     string `json:"path"`
	Position int    `json:"position"`
	Line     int    `json:"line"`
	Body     string `json:"body"`
}

// Provider defines the interface for Git hosting providers
type Provider interface {
	// Name returns the provider name (github, gitlab, gitea)
	Name() string

	// GetPullRequest retrieves pull request details
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error)

	// PostComment posts a conversation-level comment on a PR
	PostComment(ctx context.Context, owner, repo string, prNumber int, body string) error

	// CreateReview submits a review with inline comments against the given
	// head commit. The review carries a neutral event so it neither
	// approves nor blocks the PR.
	CreateReview(ctx context.Context, owner, repo string, prNumber int, commitSHA, body string, comments []ReviewComment) error

	// ValidateToken validates the provider token
	ValidateToken(ctx context.Context) error

	// ParseRepoPath parses owner and repo from a repository URL or path.
	// Each provider implements its own parsing logic based on URL format:
	// - GitHub/Gitea: "owner/repo" (two-level)
	// - GitLab: "group/subgroup/project" (multi-level namespaces supported)
	ParseRepoPath(repoURL string) (owner, repo string, err error)
}

// ProviderOptions holds options for creating a provider
type ProviderOptions struct {
	Token              string // access token
	BaseURL            string // base URL for self-hosted instances
	InsecureSkipVerify bool   // skip SSL certificate verification
}

// ProviderFactory creates a provider instance
type ProviderFactory func(opts *ProviderOptions) (Provider, error)

// Registry holds registered provider factories
var Registry = make(map[string]ProviderFactory)

// Register registers a provider factory
func Register(name string, factory ProviderFactory) {
	Registry[name] = factory
}

// Create creates a provider by name
func Create(name string, opts *ProviderOptions) (Provider, error) {
	factory, ok := Registry[name]
	if !ok {
		return nil, &ProviderError{
			Provider: name,
			Message:  "provider not registered",
		}
	}
	return factory(opts)
}

// List returns all registered provider names
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	return names
}

// ProviderError represents a provider-related error
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return "[" + e.Provider + "] " + e.Message + ": " + e.Err.Error()
	}
	return "[" + e.Provider + "] " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// SplitRepoPath splits an "owner/repo" path into its two components.
// Shared by providers with two-level namespaces.
func SplitRepoPath(path string) (owner, repo string, ok bool) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}
