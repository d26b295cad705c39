// Package base defines the Agent interface for AI-powered pull request
// review. Implementations wrap a specific model provider and register
// themselves in the Registry.
package base

import (
	"context"
	"time"

	"github.com/prsentry/prsentry/internal/review"
)

// ReviewRequest carries everything an agent needs to review one PR
type ReviewRequest struct {
	// Repo is the repository in owner/name form
	Repo string `json:"repo"`

	// PRNumber is the pull request number under review
	PRNumber int `json:"pr_number"`

	// PRTitle is the pull request title
	PRTitle string `json:"pr_title"`

	// PRBody is the pull request description
	PRBody string `json:"pr_body,omitempty"`

	// ChangedFiles is the newline-separated changed-files listing
	ChangedFiles string `json:"changed_files,omitempty"`

	// Diff is the unified diff text
	Diff string `json:"diff"`

	// RequestID is a unique identifier for tracing this request
	RequestID string `json:"request_id"`

	// Model is an optional model override for this request
	Model string `json:"model,omitempty"`
}

// ReviewResponse wraps the structured result with execution metadata
type ReviewResponse struct {
	// Result is the parsed structured review
	Result *review.Result `json:"result"`

	// RawText is the unparsed model output, kept for debugging
	RawText string `json:"raw_text,omitempty"`

	// AgentName identifies the agent that produced the response
	AgentName string `json:"agent_name"`

	// ModelName is the model used for this review
	ModelName string `json:"model_name,omitempty"`

	// Timing
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
	Duration    time.Duration `json:"duration"`
}

// Agent defines the interface for AI review agents
type Agent interface {
	// Name returns the agent identifier
	Name() string

	// Available checks if the agent is ready for use
	Available() bool

	// Review analyzes the pull request and returns a structured result
	Review(ctx context.Context, req *ReviewRequest) (*ReviewResponse, error)
}

// Options carries provider configuration passed to agent factories
type Options struct {
	// APIKey authenticates against the model provider
	APIKey string

	// Model is the model identifier
	Model string

	// MaxTokens bounds the response size
	MaxTokens int

	// Timeout bounds a single model call
	Timeout time.Duration
}

// AgentFactory creates an Agent instance
type AgentFactory func(opts *Options) (Agent, error)

// Registry holds registered agent factories
var Registry = make(map[string]AgentFactory)

// Register registers an agent factory
func Register(name string, factory AgentFactory) {
	Registry[name] = factory
}

// Create creates an agent by name
func Create(name string, opts *Options) (Agent, error) {
	factory, ok := Registry[name]
	if !ok {
		return nil, &AgentError{
			Agent:   name,
			Message: "agent not registered",
		}
	}
	return factory(opts)
}

// List returns all registered agent names
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	return names
}

// AgentError represents an agent-related error
type AgentError struct {
	Agent   string
	Message string
	Err     error
}

func (e *AgentError) Error() string {
	if e.Err != nil {
		return "[agent:" + e.Agent + "] " + e.Message + ": " + e.Err.Error()
	}
	return "[agent:" + e.Agent + "] " + e.Message
}

func (e *AgentError) Unwrap() error {
	return e.Err
}
