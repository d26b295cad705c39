package base

import (
	"testing"

	"github.com/prsentry/prsentry/pkg/errors"
)

const validReview = `{
  "summary": "Adds input validation.",
  "quality_rating": "Good",
  "quality_reasoning": "Straightforward change.",
  "highlights": ["Clear naming"],
  "issues": {"critical": [], "medium": ["No test for empty input"], "minor": []},
  "line_comments": [{"file": "src/app.py", "line": 11, "concern": "Unchecked cast", "suggestion": "Validate first."}],
  "testing_requirements": ["Empty input"],
  "manual_testing_steps": ["Submit an empty form"]
}`

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "raw JSON untouched",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "json fence stripped",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "bare fence stripped",
			input: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "prose around fence",
			input: "Here is the review:\n```json\n{\"a\": 1}\n```\nHope this helps.",
			want:  `{"a": 1}`,
		},
		{
			name:  "nested fence kept in payload",
			input: "```json\n{\"suggestion\": \"use ```go\\nfmt.Println()\\n``` here\"}\n```",
			want:  "{\"suggestion\": \"use ```go\\nfmt.Println()\\n``` here\"}",
		},
		{
			name:  "whitespace trimmed",
			input: "  {\"a\": 1}  ",
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseResult(t *testing.T) {
	result, err := ParseResult(validReview)
	if err != nil {
		t.Fatalf("ParseResult() error = %v", err)
	}

	if result.Summary != "Adds input validation." {
		t.Errorf("Summary = %q", result.Summary)
	}
	if result.QualityRating != "Good" {
		t.Errorf("QualityRating = %q", result.QualityRating)
	}
	if len(result.Issues.Medium) != 1 {
		t.Errorf("Issues.Medium = %v", result.Issues.Medium)
	}
	if len(result.LineComments) != 1 {
		t.Fatalf("LineComments = %v", result.LineComments)
	}
	lc := result.LineComments[0]
	if lc.File != "src/app.py" || lc.Line != 11 {
		t.Errorf("LineComments[0] = %+v", lc)
	}
}

func TestParseResult_Fenced(t *testing.T) {
	result, err := ParseResult("```json\n" + validReview + "\n```")
	if err != nil {
		t.Fatalf("ParseResult() error = %v", err)
	}
	if result.Summary != "Adds input validation." {
		t.Errorf("Summary = %q", result.Summary)
	}
}

func TestParseResult_InvalidJSON(t *testing.T) {
	_, err := ParseResult("the model refused to answer in JSON")
	if err == nil {
		t.Fatal("ParseResult() expected error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeAgentResponse {
		t.Errorf("error = %v, want agent response error", err)
	}
}

func TestParseResult_MissingKeysTolerated(t *testing.T) {
	result, err := ParseResult(`{"summary": "minimal"}`)
	if err != nil {
		t.Fatalf("ParseResult() error = %v", err)
	}
	if result.Summary != "minimal" {
		t.Errorf("Summary = %q", result.Summary)
	}
}

func TestRegistry(t *testing.T) {
	Register("registry-test", func(opts *Options) (Agent, error) {
		return nil, nil
	})
	defer delete(Registry, "registry-test")

	if _, err := Create("registry-test", &Options{}); err != nil {
		t.Errorf("Create() error = %v", err)
	}
	if _, err := Create("never-registered", &Options{}); err == nil {
		t.Error("Create() expected error for unknown agent")
	}

	found := false
	for _, name := range List() {
		if name == "registry-test" {
			found = true
		}
	}
	if !found {
		t.Error("List() missing registered agent")
	}
}

func TestAgentError(t *testing.T) {
	err := &AgentError{Agent: "anthropic", Message: "request failed"}
	if err.Error() != "[agent:anthropic] request failed" {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := &AgentError{Agent: "anthropic", Message: "request failed", Err: errTest}
	if wrapped.Unwrap() != errTest {
		t.Error("Unwrap() did not return inner error")
	}
}

var errTest = errors.New(errors.ErrCodeInternal, "inner")
