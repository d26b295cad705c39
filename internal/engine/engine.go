// Package engine runs the review pipeline for a single pull request:
// read the diff artifacts, analyze them with an AI agent, publish the
// summary and inline comments, and update the issue tracker.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prsentry/prsentry/internal/agent/base"
	"github.com/prsentry/prsentry/internal/config"
	"github.com/prsentry/prsentry/internal/diff"
	"github.com/prsentry/prsentry/internal/git/provider"
	"github.com/prsentry/prsentry/internal/review"
	"github.com/prsentry/prsentry/internal/tracker"
	"github.com/prsentry/prsentry/pkg/errors"
	"github.com/prsentry/prsentry/pkg/idgen"
	"github.com/prsentry/prsentry/pkg/logger"
	"github.com/prsentry/prsentry/pkg/retry"
)

// Engine executes one review run
type Engine struct {
	cfg      *config.Config
	agent    base.Agent
	provider provider.Provider
	tracker  tracker.Tracker
	out      io.Writer
}

// New wires an engine from configuration. The provider is not created in
// dry-run mode since nothing will be published.
func New(cfg *config.Config) (*Engine, error) {
	e := &Engine{
		cfg: cfg,
		out: os.Stdout,
	}

	agent, err := base.Create(cfg.Agent.Name, &base.Options{
		APIKey:    cfg.Agent.APIKey,
		Model:     cfg.Agent.Model,
		MaxTokens: cfg.Agent.MaxTokens,
		Timeout:   agentTimeout(cfg),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAgentNotFound,
			fmt.Sprintf("failed to create agent %s", cfg.Agent.Name), err)
	}
	e.agent = agent

	if !cfg.Review.DryRun {
		prov, err := provider.Create(cfg.Provider.Type, &provider.ProviderOptions{
			Token:              cfg.Provider.Token,
			BaseURL:            cfg.Provider.URL,
			InsecureSkipVerify: cfg.Provider.InsecureSkipVerify,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeValidation,
				fmt.Sprintf("failed to create provider %s", cfg.Provider.Type), err)
		}
		e.provider = prov
	}

	if cfg.TrackerEnabled() {
		e.tracker = tracker.NewJiraTracker(cfg.Tracker.URL, cfg.Tracker.Email, cfg.Tracker.APIToken)
	}

	return e, nil
}

// Run executes the pipeline. The summary comment is the one step whose
// failure fails the run; inline comments and tracker updates degrade to
// warnings so a partial review still lands.
func (e *Engine) Run(ctx context.Context) error {
	runID := idgen.NewRunID()
	log := logger.Get().With(
		zap.String("run_id", runID),
		zap.String("repo", e.cfg.PR.Repo),
		zap.Int("pr", e.cfg.PR.Number),
	)

	log.Info("starting review run")

	diffText, changedFiles, err := e.loadArtifacts()
	if err != nil {
		return err
	}
	if diffText == "" {
		log.Warn("no diff available, nothing to review")
		return nil
	}

	doc := diff.Parse(diffText)
	stats := doc.Stats()
	log.Info("parsed diff",
		zap.Int("bytes", len(diffText)),
		zap.Int("files", stats.Files),
		zap.Int("hunks", stats.Hunks),
		zap.Int("additions", stats.Additions),
		zap.Int("deletions", stats.Deletions),
	)

	if changedFiles == "" {
		changedFiles = strings.Join(doc.ChangedPaths(), "\n")
	}

	resp, err := e.analyze(ctx, diffText, changedFiles, runID)
	if err != nil {
		return err
	}
	result := resp.Result

	summary := review.FormatSummaryComment(result)
	inline := review.BuildInlineComments(diffText, result.LineComments, e.cfg.Review.MaxComments)

	if e.cfg.Review.DryRun {
		return e.printDryRun(summary, inline)
	}

	owner, repo, err := e.splitRepo()
	if err != nil {
		return err
	}

	if err := e.postSummary(ctx, owner, repo, summary); err != nil {
		return err
	}

	// inline comments are best-effort
	if err := e.postInline(ctx, owner, repo, inline); err != nil {
		log.Warn("failed to post inline comments", zap.Error(err))
	}

	// tracker update is best-effort
	if e.tracker != nil {
		if err := e.updateTracker(ctx, result); err != nil {
			log.Warn("failed to update tracker", zap.Error(err))
		}
	}

	log.Info("review run complete",
		zap.Int("inline_comments", len(inline)),
		zap.Duration("agent_duration", resp.Duration),
	)
	return nil
}

// loadArtifacts reads the diff and changed-files artifacts and enforces
// the diff size cap.
func (e *Engine) loadArtifacts() (diffText, changedFiles string, err error) {
	maxBytes := e.cfg.Review.MaxDiffBytes

	// buffer above the cap so the exact size can be checked after the
	// null-byte strip
	diffText, err = ReadArtifact(e.cfg.Review.DiffFile, maxBytes*2)
	if err != nil {
		return "", "", err
	}
	if len(diffText) > maxBytes {
		return "", "", errors.New(errors.ErrCodeDiffTooLarge,
			fmt.Sprintf("diff size (%d bytes) exceeds maximum (%d bytes)", len(diffText), maxBytes))
	}

	changedFiles, err = ReadArtifact(e.cfg.Review.ChangedFilesFile, 10000)
	if err != nil {
		return "", "", err
	}

	return diffText, changedFiles, nil
}

// analyze runs the agent with retry
func (e *Engine) analyze(ctx context.Context, diffText, changedFiles, runID string) (*base.ReviewResponse, error) {
	req := &base.ReviewRequest{
		Repo:         e.cfg.PR.Repo,
		PRNumber:     e.cfg.PR.Number,
		PRTitle:      e.cfg.PR.Title,
		PRBody:       e.cfg.PR.Body,
		ChangedFiles: changedFiles,
		Diff:         diffText,
		RequestID:    runID,
		Model:        e.cfg.Agent.Model,
	}

	var resp *base.ReviewResponse
	err := retry.Do(ctx, "ai analysis", func(ctx context.Context) error {
		var callErr error
		resp, callErr = e.agent.Review(ctx, req)
		return callErr
	}, retry.DefaultConfig().WithMaxRetries(e.cfg.Review.MaxRetries))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReviewFailed, "ai analysis failed", err)
	}

	return resp, nil
}

// postSummary posts the summary comment with retry
func (e *Engine) postSummary(ctx context.Context, owner, repo, summary string) error {
	err := retry.Do(ctx, "post summary comment", func(ctx context.Context) error {
		return e.provider.PostComment(ctx, owner, repo, e.cfg.PR.Number, summary)
	}, retry.DefaultConfig().WithMaxRetries(e.cfg.Review.MaxRetries))
	if err != nil {
		return errors.Wrap(errors.ErrCodeReviewFailed, "failed to post summary comment", err)
	}

	logger.Info("posted summary comment",
		zap.String("repo", e.cfg.PR.Repo),
		zap.Int("pr", e.cfg.PR.Number))
	return nil
}

// postInline submits the inline comments as a review against the PR head
func (e *Engine) postInline(ctx context.Context, owner, repo string, inline []review.InlineComment) error {
	if len(inline) == 0 {
		logger.Debug("no inline comments to post")
		return nil
	}

	pr, err := e.provider.GetPullRequest(ctx, owner, repo, e.cfg.PR.Number)
	if err != nil {
		return err
	}

	comments := make([]provider.ReviewComment, 0, len(inline))
	for _, c := range inline {
		comments = append(comments, provider.ReviewComment{
			Path:     c.Path,
			Position: c.Position,
			Line:     c.Line,
			Body:     c.Body,
		})
	}

	err = e.provider.CreateReview(ctx, owner, repo, e.cfg.PR.Number, pr.HeadSHA,
		"🤖 AI-identified code review comments", comments)
	if err != nil {
		return err
	}

	logger.Info("posted inline comments", zap.Int("count", len(comments)))
	return nil
}

// updateTracker publishes the testing note to the issue tracker
func (e *Engine) updateTracker(ctx context.Context, result *review.Result) error {
	note := &tracker.TestingNote{
		Ticket:              e.cfg.Tracker.Ticket,
		PRNumber:            e.cfg.PR.Number,
		PRTitle:             review.SanitizeInput(e.cfg.PR.Title, 200),
		PRURL:               e.prURL(),
		TestingRequirements: result.TestingRequirements,
		ManualTestingSteps:  result.ManualTestingSteps,
	}
	return e.tracker.PublishTestingNote(ctx, note)
}

// printDryRun writes what would have been published to stdout
func (e *Engine) printDryRun(summary string, inline []review.InlineComment) error {
	fmt.Fprintln(e.out, "=== summary comment ===")
	fmt.Fprintln(e.out, summary)
	fmt.Fprintln(e.out)
	fmt.Fprintf(e.out, "=== inline comments (%d) ===\n", len(inline))
	for _, c := range inline {
		fmt.Fprintf(e.out, "%s (position %d, line %d):\n%s\n\n", c.Path, c.Position, c.Line, c.Body)
	}
	return nil
}

// splitRepo splits the configured repo path into owner and name
func (e *Engine) splitRepo() (owner, repo string, err error) {
	if e.provider != nil {
		return e.provider.ParseRepoPath(e.cfg.PR.Repo)
	}
	owner, repo, ok := provider.SplitRepoPath(e.cfg.PR.Repo)
	if !ok {
		return "", "", errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("invalid repository path: %s", e.cfg.PR.Repo))
	}
	return owner, repo, nil
}

// prURL builds a browse URL for the PR under review
func (e *Engine) prURL() string {
	base := e.cfg.Provider.URL
	if base == "" {
		switch e.cfg.Provider.Type {
		case "gitlab":
			base = "https://gitlab.com"
		case "gitea":
			base = "https://gitea.com"
		default:
			base = "https://github.com"
		}
	}
	base = strings.TrimSuffix(base, "/")

	if e.cfg.Provider.Type == "gitlab" {
		return fmt.Sprintf("%s/%s/-/merge_requests/%d", base, e.cfg.PR.Repo, e.cfg.PR.Number)
	}
	return fmt.Sprintf("%s/%s/pull/%d", base, e.cfg.PR.Repo, e.cfg.PR.Number)
}

// agentTimeout converts the configured timeout to a duration
func agentTimeout(cfg *config.Config) (d time.Duration) {
	if cfg.Agent.Timeout > 0 {
		d = time.Duration(cfg.Agent.Timeout) * time.Second
	}
	return d
}
