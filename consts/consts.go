// Package consts defines cross-module constants used throughout the application.
package consts

// ServiceName is the application service name
const ServiceName = "prsentry"

// Project information constants
const (
	// ProjectName is the display name of the project
	ProjectName = "PRSentry"

	// ProjectURL is the repository URL
	ProjectURL = "https://github.com/prsentry/prsentry"
)

// Review pipeline limits
const (
	// MaxInlineComments bounds the number of inline review comments posted
	// per run to keep the review payload small
	MaxInlineComments = 10

	// DefaultMaxDiffBytes is the maximum diff size accepted for analysis
	DefaultMaxDiffBytes = 100000

	// DefaultDiffArtifact is the diff artifact file written by the CI pipeline
	DefaultDiffArtifact = "pr_diff.txt"

	// DefaultChangedFilesArtifact lists the files touched by the PR
	DefaultChangedFilesArtifact = "changed_files.txt"
)

// Build information - set via ldflags during build or programmatically
var (
	// Version is the application version
	Version = "dev"

	// BuildTime is the build timestamp
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)
