package engine

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/prsentry/prsentry/internal/agent/base"
	"github.com/prsentry/prsentry/internal/agent/mock"
	"github.com/prsentry/prsentry/internal/config"
	"github.com/prsentry/prsentry/internal/git/provider"
	"github.com/prsentry/prsentry/internal/tracker"
	"github.com/prsentry/prsentry/pkg/errors"
)

const engineDiff = `diff --git a/src/app.py b/src/app.py
@@ -10,3 +10,4 @@
 line10
+line11_new
 line12
 line13
`

// fakeProvider records calls for assertions
type fakeProvider struct {
	comments     []string
	reviewBodies []string
	reviewInline []provider.ReviewComment
	postErr      error
	reviewErr    error
	getPRErr     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GetPullRequest(ctx context.Context, owner, repo string, number int) (*provider.PullRequest, error) {
	if f.getPRErr != nil {
		return nil, f.getPRErr
	}
	return &provider.PullRequest{Number: number, HeadSHA: "abc123"}, nil
}

func (f *fakeProvider) PostComment(ctx context.Context, owner, repo string, prNumber int, body string) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.comments = append(f.comments, body)
	return nil
}

func (f *fakeProvider) CreateReview(ctx context.Context, owner, repo string, prNumber int, commitSHA, body string, comments []provider.ReviewComment) error {
	if f.reviewErr != nil {
		return f.reviewErr
	}
	f.reviewBodies = append(f.reviewBodies, body)
	f.reviewInline = append(f.reviewInline, comments...)
	return nil
}

func (f *fakeProvider) ValidateToken(ctx context.Context) error { return nil }

func (f *fakeProvider) ParseRepoPath(repoURL string) (string, string, error) {
	owner, repo, ok := provider.SplitRepoPath(repoURL)
	if !ok {
		return "", "", &provider.ProviderError{Provider: "fake", Message: "bad path"}
	}
	return owner, repo, nil
}

// fakeTracker records published notes
type fakeTracker struct {
	notes []*tracker.TestingNote
	err   error
}

func (f *fakeTracker) Name() string { return "fake" }

func (f *fakeTracker) PublishTestingNote(ctx context.Context, note *tracker.TestingNote) error {
	if f.err != nil {
		return f.err
	}
	f.notes = append(f.notes, note)
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Agent.Name = "mock"
	cfg.PR.Repo = "acme/widgets"
	cfg.PR.Number = 42
	cfg.PR.Title = "Fix the widget"
	return cfg
}

func testEngine(t *testing.T, cfg *config.Config) (*Engine, *fakeProvider, *fakeTracker) {
	t.Helper()

	agent, err := mock.NewAgent(&base.Options{})
	if err != nil {
		t.Fatalf("mock.NewAgent() error = %v", err)
	}

	prov := &fakeProvider{}
	trk := &fakeTracker{}
	return &Engine{
		cfg:      cfg,
		agent:    agent,
		provider: prov,
		tracker:  trk,
		out:      &bytes.Buffer{},
	}, prov, trk
}

func writeArtifacts(t *testing.T, diffText string) {
	t.Helper()
	t.Chdir(t.TempDir())
	if diffText != "" {
		if err := os.WriteFile("pr_diff.txt", []byte(diffText), 0644); err != nil {
			t.Fatalf("failed to write diff artifact: %v", err)
		}
	}
}

func TestRun(t *testing.T) {
	writeArtifacts(t, engineDiff)

	cfg := testConfig()
	cfg.Tracker.Ticket = "PROJ-123"
	e, prov, trk := testEngine(t, cfg)

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// summary comment posted
	if len(prov.comments) != 1 {
		t.Fatalf("comments = %d, want 1", len(prov.comments))
	}
	if !strings.Contains(prov.comments[0], "AI Code Review") {
		t.Errorf("summary comment missing header: %q", prov.comments[0][:60])
	}

	// inline review submitted with the mock agent's line comment
	if len(prov.reviewInline) != 1 {
		t.Fatalf("inline comments = %d, want 1", len(prov.reviewInline))
	}
	inline := prov.reviewInline[0]
	if inline.Path != "src/app.py" || inline.Position != 2 || inline.Line != 11 {
		t.Errorf("inline = %+v, want src/app.py position 2 line 11", inline)
	}

	// tracker note published
	if len(trk.notes) != 1 {
		t.Fatalf("tracker notes = %d, want 1", len(trk.notes))
	}
	if trk.notes[0].Ticket != "PROJ-123" || trk.notes[0].PRNumber != 42 {
		t.Errorf("note = %+v", trk.notes[0])
	}
}

func TestRun_NoDiff(t *testing.T) {
	writeArtifacts(t, "")

	e, prov, _ := testEngine(t, testConfig())
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(prov.comments) != 0 {
		t.Error("posted comments despite missing diff")
	}
}

func TestRun_DiffTooLarge(t *testing.T) {
	writeArtifacts(t, strings.Repeat("x", 200))

	cfg := testConfig()
	cfg.Review.MaxDiffBytes = 100
	e, _, _ := testEngine(t, cfg)

	err := e.Run(context.Background())
	if err == nil {
		t.Fatal("Run() expected error for oversized diff")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeDiffTooLarge {
		t.Errorf("error = %v, want diff too large", err)
	}
}

func TestRun_SummaryFailureIsFatal(t *testing.T) {
	writeArtifacts(t, engineDiff)

	cfg := testConfig()
	cfg.Review.MaxRetries = 1
	e, prov, _ := testEngine(t, cfg)
	prov.postErr = errors.New(errors.ErrCodeProviderAuth, "bad token")

	if err := e.Run(context.Background()); err == nil {
		t.Fatal("Run() expected error when summary comment fails")
	}
}

func TestRun_InlineFailureIsNotFatal(t *testing.T) {
	writeArtifacts(t, engineDiff)

	e, prov, _ := testEngine(t, testConfig())
	prov.reviewErr = errors.New(errors.ErrCodeProviderRequest, "boom")

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, inline failure should not be fatal", err)
	}
	if len(prov.comments) != 1 {
		t.Error("summary comment should still be posted")
	}
}

func TestRun_TrackerFailureIsNotFatal(t *testing.T) {
	writeArtifacts(t, engineDiff)

	cfg := testConfig()
	cfg.Tracker.Ticket = "PROJ-1"
	e, _, trk := testEngine(t, cfg)
	trk.err = errors.New(errors.ErrCodeTrackerAuth, "bad credentials")

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v, tracker failure should not be fatal", err)
	}
}

func TestRun_DryRun(t *testing.T) {
	writeArtifacts(t, engineDiff)

	cfg := testConfig()
	cfg.Review.DryRun = true

	agent, _ := mock.NewAgent(&base.Options{})
	var buf bytes.Buffer
	e := &Engine{cfg: cfg, agent: agent, out: &buf}

	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "=== summary comment ===") {
		t.Error("dry run output missing summary section")
	}
	if !strings.Contains(out, "src/app.py (position 2, line 11)") {
		t.Errorf("dry run output missing inline comment: %s", out)
	}
}

func TestNew_UnknownAgent(t *testing.T) {
	cfg := testConfig()
	cfg.Agent.Name = "no-such-agent"
	if _, err := New(cfg); err == nil {
		t.Fatal("New() expected error for unknown agent")
	}
}

func TestNew_DryRunSkipsProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Review.DryRun = true
	cfg.Provider.Type = "unregistered-provider"

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if e.provider != nil {
		t.Error("dry run should not create a provider")
	}
}

func TestPRURL(t *testing.T) {
	tests := []struct {
		name         string
		providerType string
		providerURL  string
		want         string
	}{
		{"github default", "github", "", "https://github.com/acme/widgets/pull/42"},
		{"gitlab default", "gitlab", "", "https://gitlab.com/acme/widgets/-/merge_requests/42"},
		{"gitea default", "gitea", "", "https://gitea.com/acme/widgets/pull/42"},
		{"self-hosted", "github", "https://git.example.com/", "https://git.example.com/acme/widgets/pull/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Provider.Type = tt.providerType
			cfg.Provider.URL = tt.providerURL
			e := &Engine{cfg: cfg}
			if got := e.prURL(); got != tt.want {
				t.Errorf("prURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
