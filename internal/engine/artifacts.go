package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/prsentry/prsentry/pkg/errors"
	"github.com/prsentry/prsentry/pkg/logger"
)

// ValidArtifactPath checks that an artifact path stays inside the working
// directory. Absolute paths and traversal segments are rejected since
// artifact names come from configuration that may be attacker-influenced
// in a CI context.
func ValidArtifactPath(path string) bool {
	if path == "" {
		return false
	}
	if filepath.IsAbs(path) {
		return false
	}
	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}

// ReadArtifact reads a pipeline artifact, strips null bytes, and truncates
// it to maxBytes when maxBytes is positive. A missing artifact is returned
// as an empty string rather than an error; callers decide whether the
// artifact was required.
func ReadArtifact(path string, maxBytes int) (string, error) {
	if !ValidArtifactPath(path) {
		return "", errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("invalid artifact path: %s", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("artifact not found", zap.String("path", path))
			return "", nil
		}
		return "", errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to read artifact %s", path), err)
	}

	content := strings.ReplaceAll(string(data), "\x00", "")
	if maxBytes > 0 && len(content) > maxBytes {
		logger.Warn("artifact truncated",
			zap.String("path", path),
			zap.Int("max_bytes", maxBytes))
		content = content[:maxBytes]
	}

	return content, nil
}
