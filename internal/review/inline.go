package review

import (
	"go.uber.org/zap"

	"github.com/prsentry/prsentry/internal/diff"
	"github.com/prsentry/prsentry/pkg/logger"
)

// BuildInlineComments converts agent line comments into the inline payload
// entries a platform review accepts. At most maxComments candidates are
// considered. A candidate is dropped silently when its path is empty after
// sanitization, its line cannot be located in the diff, or its body would
// be empty. Line numbers below 1 are clamped to 1 before resolution.
func BuildInlineComments(diffText string, comments []LineComment, maxComments int) []InlineComment {
	if maxComments > 0 && len(comments) > maxComments {
		logger.Debug("capping line comments",
			zap.Int("proposed", len(comments)),
			zap.Int("max", maxComments))
		comments = comments[:maxComments]
	}

	result := make([]InlineComment, 0, len(comments))
	for _, c := range comments {
		path := sanitizePath(c.File)
		if path == "" {
			logger.Debug("dropping comment with empty file path")
			continue
		}

		line := c.Line
		if line < 1 {
			line = 1
		}

		position, ok := diff.Resolve(diffText, path, line)
		if !ok {
			logger.Debug("could not locate line in diff, skipping",
				zap.String("file", path),
				zap.Int("line", line))
			continue
		}

		body := FormatCommentBody(c.Concern, c.Suggestion)
		if body == "" {
			logger.Debug("dropping comment with empty body",
				zap.String("file", path),
				zap.Int("line", line))
			continue
		}

		result = append(result, InlineComment{
			Path:     path,
			Position: position,
			Line:     line,
			Body:     body,
		})
	}

	return result
}
