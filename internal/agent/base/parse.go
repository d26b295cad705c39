package base

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/prsentry/prsentry/internal/review"
	"github.com/prsentry/prsentry/pkg/errors"
	"github.com/prsentry/prsentry/pkg/logger"
)

// jsonBlockRegex matches a fenced code block, greedily from the first
// opening fence to the last closing fence. Greedy matching keeps nested
// fences inside suggestion text from truncating the JSON payload.
var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*([\\s\\S]*)```")

// requiredKeys are the review fields the prompt demands; missing keys are
// logged but tolerated since the rest of the result is still usable.
var requiredKeys = []string{"summary", "quality_rating", "highlights", "issues"}

// ExtractJSON extracts the JSON payload from a model response, stripping a
// markdown code fence when present. Without a fence the trimmed text is
// returned unchanged.
func ExtractJSON(text string) string {
	if m := jsonBlockRegex.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// ParseResult parses a model response into a structured review result.
// It tolerates markdown-fenced JSON and missing optional fields; anything
// that fails to parse as JSON is an agent response error.
func ParseResult(text string) (*review.Result, error) {
	payload := ExtractJSON(text)

	if !gjson.Valid(payload) {
		return nil, errors.New(errors.ErrCodeAgentResponse, "response is not valid JSON")
	}

	var missing []string
	for _, key := range requiredKeys {
		if !gjson.Get(payload, key).Exists() {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		logger.Warn("review result missing keys", zap.Strings("keys", missing))
	}

	var result review.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAgentResponse, "failed to decode review result", err)
	}

	return &result, nil
}
