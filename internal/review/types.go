// Package review defines the structured review result produced by AI
// agents and formats it into the comment payloads that Git hosting
// platforms accept.
package review

// Result is the structured review an agent extracts from the model response
type Result struct {
	Summary             string        `json:"summary"`
	QualityRating       string        `json:"quality_rating"`
	QualityReasoning    string        `json:"quality_reasoning"`
	Highlights          []string      `json:"highlights"`
	Issues              Issues        `json:"issues"`
	LineComments        []LineComment `json:"line_comments"`
	TestingRequirements []string      `json:"testing_requirements"`
	ManualTestingSteps  []string      `json:"manual_testing_steps"`
}

// Issues groups findings by severity
type Issues struct {
	Critical []string `json:"critical"`
	Medium   []string `json:"medium"`
	Minor    []string `json:"minor"`
}

// HasFindings reports whether any severity bucket is non-empty
func (i Issues) HasFindings() bool {
	return len(i.Critical) > 0 || len(i.Medium) > 0 || len(i.Minor) > 0
}

// LineComment is a single line-level finding proposed by the agent.
// Line refers to the new version of the file.
type LineComment struct {
	File       string `json:"file"`
	Line       int    `json:"line"`
	Concern    string `json:"concern"`
	Suggestion string `json:"suggestion"`
}

// InlineComment is one entry of a platform review payload. Position is the
// diff-relative coordinate used by platforms that address comments by
// position; Line carries the new-file line number for platforms that
// address by line instead.
type InlineComment struct {
	Path     string `json:"path"`
	Position int    `json:"position"`
	Line     int    `json:"line"`
	Body     string `json:"body"`
}
