// Package anthropic implements the Agent interface on top of the Anthropic
// messages API. Responses are requested as JSON and parsed into the
// structured review result.
package anthropic

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"go.uber.org/zap"

	"github.com/prsentry/prsentry/internal/agent/base"
	"github.com/prsentry/prsentry/internal/prompt"
	"github.com/prsentry/prsentry/pkg/errors"
	"github.com/prsentry/prsentry/pkg/logger"
)

// AgentName is the identifier for the Anthropic agent
const AgentName = "anthropic"

// DefaultModel is used when no model is configured
const DefaultModel = "claude-sonnet-4-20250514"

// defaultMaxTokens bounds the response when none is configured
const defaultMaxTokens = 16000

func init() {
	base.Register(AgentName, NewAgent)
}

// Agent calls the Anthropic API through the langchaingo client
type Agent struct {
	llm       llms.Model
	model     string
	maxTokens int
	timeout   time.Duration
	apiKeySet bool
}

// NewAgent creates a new Anthropic agent instance
func NewAgent(opts *base.Options) (base.Agent, error) {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	client, err := anthropic.New(
		anthropic.WithToken(opts.APIKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, &base.AgentError{
			Agent:   AgentName,
			Message: "failed to create client",
			Err:     err,
		}
	}

	return &Agent{
		llm:       client,
		model:     model,
		maxTokens: maxTokens,
		timeout:   opts.Timeout,
		apiKeySet: opts.APIKey != "",
	}, nil
}

// Name returns the agent identifier
func (a *Agent) Name() string {
	return AgentName
}

// Available checks if the agent is ready for use
func (a *Agent) Available() bool {
	return a.apiKeySet
}

// Review sends the pull request to the model and parses the structured
// result. Temperature is pinned to zero so repeated runs over the same
// diff produce stable reviews.
func (a *Agent) Review(ctx context.Context, req *base.ReviewRequest) (*base.ReviewResponse, error) {
	model := a.model
	if req.Model != "" {
		model = req.Model
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	p := prompt.Build(&prompt.Request{
		Title:        req.PRTitle,
		Body:         req.PRBody,
		ChangedFiles: req.ChangedFiles,
		Diff:         req.Diff,
	})

	logger.Info("sending review request",
		zap.String("model", model),
		zap.String("request_id", req.RequestID),
		zap.Int("prompt_bytes", len(p)))

	started := time.Now()
	text, err := llms.GenerateFromSinglePrompt(ctx, a.llm, p,
		llms.WithModel(model),
		llms.WithTemperature(0),
		llms.WithMaxTokens(a.maxTokens),
	)
	completed := time.Now()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrap(errors.ErrCodeAgentTimeout, "model call timed out", err)
		}
		return nil, errors.Wrap(errors.ErrCodeAgentUnavailable, "model call failed", err)
	}

	logger.Debug("received model response",
		zap.Int("length", len(text)),
		zap.Duration("duration", completed.Sub(started)))

	result, err := base.ParseResult(text)
	if err != nil {
		return nil, err
	}

	return &base.ReviewResponse{
		Result:      result,
		RawText:     text,
		AgentName:   AgentName,
		ModelName:   model,
		StartedAt:   started,
		CompletedAt: completed,
		Duration:    completed.Sub(started),
	}, nil
}
