package review

import (
	"fmt"
	"strings"

	"github.com/prsentry/prsentry/consts"
)

// FormatSummaryComment renders the review result as a markdown comment for
// the pull request conversation.
func FormatSummaryComment(result *Result) string {
	var b strings.Builder

	b.WriteString("## 🤖 AI Code Review\n\n")

	b.WriteString("### Summary\n")
	summary := result.Summary
	if summary == "" {
		summary = "No summary provided"
	}
	b.WriteString(summary)
	b.WriteString("\n\n")

	rating := result.QualityRating
	if rating == "" {
		rating = "N/A"
	}
	fmt.Fprintf(&b, "### Code Quality: %s\n", rating)
	if result.QualityReasoning != "" {
		b.WriteString(result.QualityReasoning)
		b.WriteString("\n")
	}

	b.WriteString("\n---\n\n")

	b.WriteString("### ✨ Highlights (What's Done Well)\n")
	for _, highlight := range result.Highlights {
		fmt.Fprintf(&b, "- %s\n", highlight)
	}

	if len(result.Issues.Critical) > 0 {
		b.WriteString("\n### 🔴 Critical Issues\n")
		for _, issue := range result.Issues.Critical {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}
	if len(result.Issues.Medium) > 0 {
		b.WriteString("\n### 🟡 Medium Priority\n")
		for _, issue := range result.Issues.Medium {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}
	if len(result.Issues.Minor) > 0 {
		b.WriteString("\n### 🔵 Minor Suggestions\n")
		for _, issue := range result.Issues.Minor {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}

	b.WriteString("\n---\n\n### 🧪 Testing Requirements\n")
	for _, req := range result.TestingRequirements {
		fmt.Fprintf(&b, "- %s\n", req)
	}

	b.WriteString("\n### 📋 Manual Testing Steps\n")
	for i, step := range result.ManualTestingSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	fmt.Fprintf(&b, "\n---\n*Review generated by %s*", consts.ProjectName)

	return b.String()
}

// FormatCommentBody builds the body of one inline comment from a concern
// and a suggestion. The concern is emphasized; either part may be empty,
// and an empty result means the comment should be dropped.
func FormatCommentBody(concern, suggestion string) string {
	var body string
	if concern != "" {
		body = "**" + concern + "**"
	}
	if suggestion != "" {
		if body != "" {
			body += "\n\n" + suggestion
		} else {
			body = suggestion
		}
	}
	return body
}
