package mock

import (
	"context"
	"testing"

	"github.com/prsentry/prsentry/internal/agent/base"
)

func TestAgent_Review(t *testing.T) {
	agent, err := NewAgent(&base.Options{})
	if err != nil {
		t.Fatalf("NewAgent() error = %v", err)
	}
	if agent.Name() != "mock" {
		t.Errorf("Name() = %q", agent.Name())
	}
	if !agent.Available() {
		t.Error("Available() = false")
	}

	req := &base.ReviewRequest{
		Repo:     "acme/widgets",
		PRNumber: 7,
		Diff: `diff --git a/a.go b/a.go
@@ -1,2 +1,3 @@
 keep
+added line
 keep
`,
	}

	resp, err := agent.Review(context.Background(), req)
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if resp.Result == nil {
		t.Fatal("Result is nil")
	}
	if resp.Result.Summary == "" {
		t.Error("Summary is empty")
	}
	if len(resp.Result.LineComments) != 1 {
		t.Fatalf("LineComments = %v, want one", resp.Result.LineComments)
	}
	lc := resp.Result.LineComments[0]
	if lc.File != "a.go" || lc.Line != 2 {
		t.Errorf("LineComment = %+v, want a.go line 2", lc)
	}
}

func TestAgent_Review_EmptyDiff(t *testing.T) {
	agent, _ := NewAgent(&base.Options{})
	resp, err := agent.Review(context.Background(), &base.ReviewRequest{})
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if len(resp.Result.LineComments) != 0 {
		t.Errorf("LineComments = %v, want none", resp.Result.LineComments)
	}
	if len(resp.Result.Issues.Minor) == 0 {
		t.Error("expected a minor note about the empty diff")
	}
}

func TestRegistered(t *testing.T) {
	if _, ok := base.Registry[AgentName]; !ok {
		t.Error("mock agent not registered")
	}
}
