// Package providers provides a centralized registry for all Git provider
// implementations. Importing this package triggers each provider's init()
// registration, so the main entry point needs no per-provider imports.
package providers

import (
	// Import all provider implementations to trigger their init() registration
	_ "github.com/prsentry/prsentry/internal/git/gitea"
	_ "github.com/prsentry/prsentry/internal/git/github"
	_ "github.com/prsentry/prsentry/internal/git/gitlab"
)
