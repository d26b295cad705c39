// Package mock implements the Agent interface with canned responses.
// It is used for dry runs and tests, exercising the full pipeline without
// consuming tokens.
package mock

import (
	"context"
	"time"

	"github.com/prsentry/prsentry/internal/agent/base"
	"github.com/prsentry/prsentry/internal/diff"
	"github.com/prsentry/prsentry/internal/review"
)

// AgentName is the identifier for the mock agent
const AgentName = "mock"

func init() {
	base.Register(AgentName, NewAgent)
}

// Agent returns a deterministic review derived from the diff contents
type Agent struct{}

// NewAgent creates a new mock agent instance
func NewAgent(opts *base.Options) (base.Agent, error) {
	return &Agent{}, nil
}

// Name returns the agent identifier
func (a *Agent) Name() string {
	return AgentName
}

// Available always reports true
func (a *Agent) Available() bool {
	return true
}

// Review returns a fixed review shaped by the diff. The first added line
// of the first file becomes a line comment so inline posting paths are
// exercised end to end.
func (a *Agent) Review(ctx context.Context, req *base.ReviewRequest) (*base.ReviewResponse, error) {
	started := time.Now()

	doc := diff.Parse(req.Diff)
	stats := doc.Stats()

	result := &review.Result{
		Summary:          "Mock review: no model was consulted.",
		QualityRating:    "Good",
		QualityReasoning: "Generated by the mock agent for pipeline verification.",
		Highlights: []string{
			"Pipeline wiring verified end to end",
		},
		TestingRequirements: []string{"Run the real agent before relying on findings"},
		ManualTestingSteps:  []string{"Re-run with the anthropic agent"},
	}

	if lc, ok := firstAddedLine(doc); ok {
		result.LineComments = []review.LineComment{lc}
	}
	if stats.Files == 0 {
		result.Issues.Minor = append(result.Issues.Minor, "Diff contained no parseable file sections")
	}

	completed := time.Now()
	return &base.ReviewResponse{
		Result:      result,
		AgentName:   AgentName,
		ModelName:   "mock",
		StartedAt:   started,
		CompletedAt: completed,
		Duration:    completed.Sub(started),
	}, nil
}

// firstAddedLine finds the first addition in the document and builds a
// line comment pointing at it.
func firstAddedLine(doc *diff.Document) (review.LineComment, bool) {
	for _, f := range doc.Files {
		for _, h := range f.Hunks {
			line := h.NewStartLine - 1
			for _, l := range h.Lines {
				switch l.Kind {
				case diff.Addition, diff.Context:
					line++
					if l.Kind == diff.Addition {
						return review.LineComment{
							File:       f.NewPath,
							Line:       line,
							Concern:    "Mock finding on the first added line",
							Suggestion: "No action needed.",
						}, true
					}
				}
			}
		}
	}
	return review.LineComment{}, false
}
