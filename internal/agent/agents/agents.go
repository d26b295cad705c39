// Package agents provides a centralized registry for all Agent
// implementations. Importing this package triggers each agent's init()
// registration, so the main entry point needs no per-agent imports.
package agents

import (
	// Import all agent implementations to trigger their init() registration
	_ "github.com/prsentry/prsentry/internal/agent/anthropic"
	_ "github.com/prsentry/prsentry/internal/agent/mock"
)
