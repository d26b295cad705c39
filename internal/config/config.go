// Package config provides configuration management for the application.
// It supports YAML configuration files with environment variable overrides.
// The environment contract matches what a CI pipeline exports for a single
// pull-request review run.
package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/prsentry/prsentry/consts"
	"github.com/prsentry/prsentry/pkg/errors"
	"github.com/prsentry/prsentry/pkg/logger"
)

// Default configuration values
const (
	defaultProviderType = "github"
	defaultAgentName    = "anthropic"
	defaultModel        = "claude-sonnet-4-20250514"
	defaultMaxTokens    = 16000
	defaultAgentTimeout = 300
	defaultMaxRetries   = 3
)

// Config represents the complete application configuration
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	PR       PRConfig       `yaml:"pr"`
	Agent    AgentConfig    `yaml:"agent"`
	Review   ReviewConfig   `yaml:"review"`
	Tracker  TrackerConfig  `yaml:"tracker"`
	Logging  logger.Config  `yaml:"logging"`
}

// ProviderConfig holds Git hosting provider settings
type ProviderConfig struct {
	Type               string `yaml:"type"`                 // github, gitlab, gitea
	URL                string `yaml:"url"`                  // for self-hosted instances
	Token              string `yaml:"token"`                // access token
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"` // skip SSL certificate verification
}

// PRConfig identifies the pull request under review
type PRConfig struct {
	Repo   string `yaml:"repo"`   // owner/name
	Number int    `yaml:"number"` // PR/MR number
	Title  string `yaml:"title"`
	Body   string `yaml:"body"`
}

// AgentConfig holds AI agent configuration
type AgentConfig struct {
	Name      string `yaml:"name"`       // agent implementation (anthropic, mock)
	APIKey    string `yaml:"api_key"`    // provider API key
	Model     string `yaml:"model"`      // model identifier
	MaxTokens int    `yaml:"max_tokens"` // response token budget
	Timeout   int    `yaml:"timeout"`    // seconds
}

// ReviewConfig holds review pipeline configuration
type ReviewConfig struct {
	DiffFile         string `yaml:"diff_file"`          // diff artifact path
	ChangedFilesFile string `yaml:"changed_files_file"` // changed-files artifact path
	MaxDiffBytes     int    `yaml:"max_diff_bytes"`     // reject diffs larger than this
	MaxComments      int    `yaml:"max_comments"`       // inline comment cap
	MaxRetries       int    `yaml:"max_retries"`        // retry attempts for network calls
	DryRun           bool   `yaml:"dry_run"`            // print instead of publish
}

// TrackerConfig holds issue tracker settings. All fields optional; the
// tracker step is skipped when credentials are incomplete.
type TrackerConfig struct {
	Type     string `yaml:"type"`      // jira (only supported tracker)
	URL      string `yaml:"url"`       // base URL, e.g. https://org.atlassian.net
	Email    string `yaml:"email"`     // account email for basic auth
	APIToken string `yaml:"api_token"` // API token for basic auth
	Ticket   string `yaml:"ticket"`    // ticket key, e.g. PROJ-123
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Type: defaultProviderType,
		},
		Agent: AgentConfig{
			Name:      defaultAgentName,
			Model:     defaultModel,
			MaxTokens: defaultMaxTokens,
			Timeout:   defaultAgentTimeout,
		},
		Review: ReviewConfig{
			DiffFile:         consts.DefaultDiffArtifact,
			ChangedFilesFile: consts.DefaultChangedFilesArtifact,
			MaxDiffBytes:     consts.DefaultMaxDiffBytes,
			MaxComments:      consts.MaxInlineComments,
			MaxRetries:       defaultMaxRetries,
		},
		Tracker: TrackerConfig{
			Type: "jira",
		},
		Logging: logger.Config{
			Level:      "info",
			Format:     "text",
			File:       "",
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 5,
			Compress:   false,
		},
	}
}

// Load loads configuration from a YAML file with environment variable
// expansion, then applies environment overrides. An empty path skips the
// file and builds the config from defaults and environment only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigNotFound, "failed to read config file", err)
		}

		// Expand environment variables in the configuration
		expanded := expandEnvVars(string(data))

		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigParse, "failed to parse config file", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
// Only matches ${VAR_NAME} format (not $VAR_NAME) to avoid conflicts with
// special characters. Supports default values: ${VAR_NAME:-default}.
func expandEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]

		if value := os.Getenv(varName); value != "" {
			return value
		}

		if len(parts) > 1 {
			return parts[1]
		}

		return ""
	})
}

// applyEnv overlays the CI environment contract on the loaded configuration.
// Environment variables win over file values so a single config file can be
// shared across repositories.
func (c *Config) applyEnv() {
	if v := os.Getenv("GIT_PROVIDER"); v != "" {
		c.Provider.Type = strings.ToLower(v)
	}
	if v := os.Getenv("GIT_PROVIDER_URL"); v != "" {
		c.Provider.URL = v
	}
	if v := providerToken(c.Provider.Type); v != "" {
		c.Provider.Token = v
	}

	if v := os.Getenv("REPO_FULL_NAME"); v != "" {
		c.PR.Repo = v
	}
	if v := os.Getenv("PR_NUMBER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PR.Number = n
		}
	}
	if v := os.Getenv("PR_TITLE"); v != "" {
		c.PR.Title = v
	}
	if v := os.Getenv("PR_BODY"); v != "" {
		c.PR.Body = v
	}

	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.Agent.APIKey = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		c.Agent.Model = v
	}

	if v := os.Getenv("MAX_DIFF_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Review.MaxDiffBytes = n
		}
	}
	if v := os.Getenv("MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Review.MaxRetries = n
		}
	}

	if v := os.Getenv("JIRA_URL"); v != "" {
		c.Tracker.URL = v
	}
	if v := os.Getenv("JIRA_EMAIL"); v != "" {
		c.Tracker.Email = v
	}
	if v := os.Getenv("JIRA_API_TOKEN"); v != "" {
		c.Tracker.APIToken = v
	}
	if v := os.Getenv("JIRA_TICKET"); v != "" {
		c.Tracker.Ticket = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// providerToken returns the access token for the configured provider type
func providerToken(providerType string) string {
	switch providerType {
	case "gitlab":
		return os.Getenv("GITLAB_TOKEN")
	case "gitea":
		return os.Getenv("GITEA_TOKEN")
	default:
		return os.Getenv("GITHUB_TOKEN")
	}
}

// Validate checks that every setting required for a review run is present.
// It reports all missing settings at once so a CI user can fix them in one
// pass instead of one failure at a time.
func (c *Config) Validate() *errors.AppError {
	var missing []string

	if c.Agent.Name != "mock" && c.Agent.APIKey == "" {
		missing = append(missing, "ANTHROPIC_API_KEY")
	}
	if !c.Review.DryRun && c.Provider.Token == "" {
		missing = append(missing, strings.ToUpper(c.Provider.Type)+"_TOKEN")
	}
	if c.PR.Repo == "" {
		missing = append(missing, "REPO_FULL_NAME")
	}
	if c.PR.Number <= 0 {
		missing = append(missing, "PR_NUMBER")
	}

	if len(missing) > 0 {
		return errors.New(errors.ErrCodeConfigMissing,
			"missing required settings: "+strings.Join(missing, ", ")).
			WithDetails(missing)
	}

	switch c.Provider.Type {
	case "github", "gitlab", "gitea":
	default:
		return errors.New(errors.ErrCodeConfigInvalid, "unsupported provider type: "+c.Provider.Type)
	}

	return nil
}

// TrackerEnabled reports whether the tracker step has enough configuration
// to run. Incomplete credentials disable the step rather than failing it.
func (c *Config) TrackerEnabled() bool {
	t := c.Tracker
	return t.URL != "" && t.Email != "" && t.APIToken != "" && t.Ticket != ""
}
