// Package tracker publishes testing notes from a review to an issue
// tracker. Tracker failures are non-fatal to the review pipeline; callers
// log them and continue.
package tracker

import (
	"context"
	"regexp"
)

// TestingNote is the tracker-facing slice of a review result
type TestingNote struct {
	// Ticket is the issue key, e.g. PROJ-123
	Ticket string

	// PRNumber is the pull request the note originates from
	PRNumber int

	// PRTitle is the pull request title
	PRTitle string

	// PRURL links back to the pull request
	PRURL string

	// TestingRequirements lists what must be tested before merge
	TestingRequirements []string

	// ManualTestingSteps lists step-by-step manual verification
	ManualTestingSteps []string
}

// Tracker defines the interface for issue trackers
type Tracker interface {
	// Name returns the tracker identifier
	Name() string

	// PublishTestingNote posts the testing note as a comment on the ticket
	PublishTestingNote(ctx context.Context, note *TestingNote) error
}

// ticketKeyRe matches Jira-style issue keys
var ticketKeyRe = regexp.MustCompile(`^[A-Z]+-\d+$`)

// ValidTicketKey reports whether the ticket key has the PROJECT-123 shape
func ValidTicketKey(key string) bool {
	return ticketKeyRe.MatchString(key)
}
