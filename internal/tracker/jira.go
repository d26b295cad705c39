package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prsentry/prsentry/consts"
	"github.com/prsentry/prsentry/pkg/errors"
	"github.com/prsentry/prsentry/pkg/logger"
)

// requestTimeout bounds a single Jira API call
const requestTimeout = 30 * time.Second

// maxNoteEntryLength bounds a single requirement or step taken from agent
// output before it is embedded in the comment
const maxNoteEntryLength = 1000

// JiraTracker posts testing notes as ADF comments through the Jira Cloud
// REST v3 API with basic auth.
type JiraTracker struct {
	baseURL  string
	email    string
	apiToken string
	client   *http.Client
}

// commentRequest is the v3 comment creation payload
type commentRequest struct {
	Body *Document `json:"body"`
}

// NewJiraTracker creates a new Jira tracker
func NewJiraTracker(baseURL, email, apiToken string) *JiraTracker {
	return &JiraTracker{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		email:    email,
		apiToken: apiToken,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Name returns the tracker identifier
func (j *JiraTracker) Name() string {
	return "jira"
}

// PublishTestingNote posts the testing note as an ADF comment on the
// ticket. Entries from agent output are truncated before embedding.
func (j *JiraTracker) PublishTestingNote(ctx context.Context, note *TestingNote) error {
	if !ValidTicketKey(note.Ticket) {
		return errors.New(errors.ErrCodeTrackerTicket,
			fmt.Sprintf("invalid ticket key format: %s", note.Ticket))
	}

	trimmed := *note
	trimmed.TestingRequirements = truncateEntries(note.TestingRequirements)
	trimmed.ManualTestingSteps = truncateEntries(note.ManualTestingSteps)

	payload := commentRequest{Body: BuildTestingComment(&trimmed)}
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to marshal tracker comment", err)
	}

	url := fmt.Sprintf("%s/rest/api/3/issue/%s/comment", j.baseURL, note.Ticket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeTrackerRequest, "failed to create tracker request", err)
	}

	req.SetBasicAuth(j.email, j.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", consts.ServiceName+"/"+consts.Version)

	logger.Debug("Posting testing note to tracker",
		zap.String("ticket", note.Ticket),
		zap.Int("requirements", len(trimmed.TestingRequirements)),
		zap.Int("steps", len(trimmed.ManualTestingSteps)),
	)

	resp, err := j.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTrackerRequest, "tracker request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		logger.Info("Updated tracker ticket", zap.String("ticket", note.Ticket))
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.New(errors.ErrCodeTrackerAuth,
			fmt.Sprintf("tracker rejected credentials (status %d)", resp.StatusCode))
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.New(errors.ErrCodeTrackerRequest,
			fmt.Sprintf("tracker returned status %d: %s", resp.StatusCode, string(detail)))
	}
}

// truncateEntries bounds each entry taken from agent output
func truncateEntries(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if len(e) > maxNoteEntryLength {
			e = e[:maxNoteEntryLength]
		}
		out = append(out, e)
	}
	return out
}
