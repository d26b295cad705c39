package tracker

import "fmt"

// Atlassian Document Format node types used by the testing-note comment.
// Jira Cloud's v3 comment API only accepts ADF bodies.

// Mark decorates a text node (emphasis, links)
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node is a single ADF content node
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Document is a top-level ADF document
type Document struct {
	Type    string `json:"type"`
	Version int    `json:"version"`
	Content []Node `json:"content"`
}

func text(s string) Node {
	return Node{Type: "text", Text: s}
}

func heading(level int, s string) Node {
	return Node{
		Type:    "heading",
		Attrs:   map[string]any{"level": level},
		Content: []Node{text(s)},
	}
}

func paragraph(nodes ...Node) Node {
	return Node{Type: "paragraph", Content: nodes}
}

func listItems(entries []string) []Node {
	items := make([]Node, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Node{
			Type:    "listItem",
			Content: []Node{paragraph(text(entry))},
		})
	}
	return items
}

// BuildTestingComment renders a testing note as an ADF document: a heading,
// the PR reference, the requirements as a bullet list, the manual steps as
// an ordered list, and a link back to the PR.
func BuildTestingComment(note *TestingNote) *Document {
	content := []Node{
		heading(3, "Testing Requirements for PR Merge"),
		paragraph(Node{
			Type:  "text",
			Text:  fmt.Sprintf("From PR #%d: %s", note.PRNumber, note.PRTitle),
			Marks: []Mark{{Type: "em"}},
		}),
		heading(4, "What Needs to Be Tested:"),
	}

	if len(note.TestingRequirements) > 0 {
		content = append(content, Node{
			Type:    "bulletList",
			Content: listItems(note.TestingRequirements),
		})
	}

	content = append(content, heading(4, "Manual Testing Steps:"))

	if len(note.ManualTestingSteps) > 0 {
		content = append(content, Node{
			Type:    "orderedList",
			Content: listItems(note.ManualTestingSteps),
		})
	}

	content = append(content, Node{Type: "rule"})
	content = append(content, paragraph(
		Node{
			Type:  "text",
			Text:  "Auto-generated from ",
			Marks: []Mark{{Type: "em"}},
		},
		Node{
			Type: "text",
			Text: fmt.Sprintf("PR #%d", note.PRNumber),
			Marks: []Mark{
				{Type: "em"},
				{Type: "link", Attrs: map[string]any{"href": note.PRURL}},
			},
		},
	))

	return &Document{
		Type:    "doc",
		Version: 1,
		Content: content,
	}
}
