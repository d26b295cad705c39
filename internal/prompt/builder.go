// Package prompt builds the review prompt sent to the AI agent.
package prompt

import (
	"fmt"
	"strings"
)

// Request carries everything the prompt needs about the pull request
type Request struct {
	// Title is the PR/MR title
	Title string

	// Body is the PR/MR description
	Body string

	// ChangedFiles is the newline-separated list of changed file paths
	ChangedFiles string

	// Diff is the unified diff text
	Diff string
}

// instructions is the fixed part of the review prompt. The response format
// it demands matches the review.Result structure.
const instructions = `Please provide a detailed code review with the following structure:

1. **PR Summary**: A clear, concise description of what this PR does (2-3 sentences)

2. **Code Quality Assessment**: Rate the overall code quality (Excellent/Good/Needs Improvement/Poor) with reasoning

3. **Highlights** (Effective Code Areas): List 3-5 specific things done well in this PR:
   - Well-structured code
   - Good patterns or practices used
   - Performance improvements
   - Security enhancements
   - Good test coverage
   - Clear documentation

4. **Issues & Concerns**: Identify any problems (categorized by severity):
   - 🔴 Critical: Security issues, bugs, breaking changes
   - 🟡 Medium: Code smells, maintainability issues, missing tests
   - 🔵 Minor: Style issues, optimization opportunities, suggestions

5. **Line-Specific Comments**: For each significant issue, provide:
   - File path (relative to repo root, e.g., "src/utils.py")
   - Line number (exact line number in the NEW file version where the issue appears)
   - The concern (brief description of the issue)
   - Suggested fix (actionable suggestion)

   Important: Provide exact line numbers from the diff. These will be used to create inline review comments on specific code lines.

6. **Testing Requirements**: Based on the code changes, list what needs to be tested when this PR is merged:
   - Functional testing areas
   - Edge cases to verify
   - Integration points to test
   - Performance considerations
   - Regression risks

7. **Manual Testing Steps**: Provide 5-10 step-by-step manual testing instructions:
   - Setup requirements
   - Test data needed
   - Actions to perform
   - Expected results
   - Things to verify

Format your response as a JSON object with these keys:
- summary
- quality_rating
- quality_reasoning
- highlights (array of strings)
- issues (object with critical, medium, minor arrays)
- line_comments (array of objects with file, line, concern, suggestion)
- testing_requirements (array of strings)
- manual_testing_steps (array of strings)

Be specific, actionable, and focus on real issues. Don't be overly critical - recognize good work.`

// Build renders the full review prompt for a pull request
func Build(req *Request) string {
	var b strings.Builder

	b.WriteString("You are an expert code reviewer. Analyze this pull request and provide a comprehensive review.\n\n")
	fmt.Fprintf(&b, "PR Title: %s\n", req.Title)
	fmt.Fprintf(&b, "PR Description: %s\n\n", req.Body)
	fmt.Fprintf(&b, "Changed Files:\n%s\n\n", req.ChangedFiles)
	fmt.Fprintf(&b, "Code Diff:\n%s\n\n", req.Diff)
	b.WriteString(instructions)

	return b.String()
}
