package review

import (
	"strings"
	"testing"
)

func TestFormatSummaryComment(t *testing.T) {
	result := &Result{
		Summary:          "Adds retry handling to the upload path.",
		QualityRating:    "8/10",
		QualityReasoning: "Clean separation, good test coverage.",
		Highlights:       []string{"Well-structured error handling", "Clear naming"},
		Issues: Issues{
			Critical: []string{"Unbounded retry loop on 401 responses"},
			Medium:   []string{"Missing context propagation in worker"},
			Minor:    []string{"Typo in log message"},
		},
		TestingRequirements: []string{"Add a test for the 401 path"},
		ManualTestingSteps:  []string{"Upload a 1GB file", "Kill the network mid-upload"},
	}

	comment := FormatSummaryComment(result)

	wantSections := []string{
		"## 🤖 AI Code Review",
		"### Summary\nAdds retry handling to the upload path.",
		"### Code Quality: 8/10",
		"Clean separation, good test coverage.",
		"### ✨ Highlights (What's Done Well)",
		"- Well-structured error handling",
		"### 🔴 Critical Issues",
		"- Unbounded retry loop on 401 responses",
		"### 🟡 Medium Priority",
		"### 🔵 Minor Suggestions",
		"### 🧪 Testing Requirements",
		"- Add a test for the 401 path",
		"### 📋 Manual Testing Steps",
		"1. Upload a 1GB file",
		"2. Kill the network mid-upload",
	}
	for _, want := range wantSections {
		if !strings.Contains(comment, want) {
			t.Errorf("comment missing %q", want)
		}
	}
}

func TestFormatSummaryComment_EmptyResult(t *testing.T) {
	comment := FormatSummaryComment(&Result{})

	if !strings.Contains(comment, "No summary provided") {
		t.Error("empty summary should render placeholder")
	}
	if !strings.Contains(comment, "### Code Quality: N/A") {
		t.Error("empty rating should render N/A")
	}
	// severity sections are omitted when empty
	if strings.Contains(comment, "Critical Issues") {
		t.Error("empty critical section should be omitted")
	}
	if strings.Contains(comment, "Medium Priority") {
		t.Error("empty medium section should be omitted")
	}
}

func TestFormatCommentBody(t *testing.T) {
	tests := []struct {
		name       string
		concern    string
		suggestion string
		want       string
	}{
		{
			name:       "both parts",
			concern:    "SQL injection risk",
			suggestion: "Use a parameterized query.",
			want:       "**SQL injection risk**\n\nUse a parameterized query.",
		},
		{
			name:    "concern only",
			concern: "Race on counter",
			want:    "**Race on counter**",
		},
		{
			name:       "suggestion only",
			suggestion: "Consider a sync.Mutex.",
			want:       "Consider a sync.Mutex.",
		},
		{
			name: "both empty",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCommentBody(tt.concern, tt.suggestion); got != tt.want {
				t.Errorf("FormatCommentBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIssues_HasFindings(t *testing.T) {
	if (Issues{}).HasFindings() {
		t.Error("empty issues reported findings")
	}
	if !(Issues{Minor: []string{"nit"}}).HasFindings() {
		t.Error("minor finding not reported")
	}
}
