package review

import (
	"strings"

	"go.uber.org/zap"

	"github.com/prsentry/prsentry/pkg/logger"
)

// maxPathLength bounds file paths taken from agent output
const maxPathLength = 500

// SanitizeInput strips null bytes from untrusted text and truncates it to
// maxLength. Agent output and diff artifacts both pass through here before
// being embedded in API payloads.
func SanitizeInput(text string, maxLength int) string {
	if text == "" {
		return ""
	}

	if maxLength > 0 && len(text) > maxLength {
		text = text[:maxLength]
		logger.Warn("input truncated", zap.Int("max_length", maxLength))
	}

	return strings.ReplaceAll(text, "\x00", "")
}

// sanitizePath sanitizes a file path from agent output. Paths that escape
// the repository root are rejected outright.
func sanitizePath(path string) string {
	path = SanitizeInput(path, maxPathLength)
	path = strings.TrimSpace(path)
	if strings.Contains(path, "..") {
		return ""
	}
	return strings.TrimPrefix(path, "./")
}
