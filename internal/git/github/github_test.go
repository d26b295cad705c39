package github

import (
	"testing"

	"github.com/prsentry/prsentry/internal/git/provider"
)

// TestNormalizeURL tests URL normalization
func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "HTTPS URL with .git",
			input:    "https://github.com/owner/repo.git",
			expected: "github.com/owner/repo",
		},
		{
			name:     "HTTPS URL without .git",
			input:    "https://github.com/owner/repo",
			expected: "github.com/owner/repo",
		},
		{
			name:     "git@ format",
			input:    "git@github.com:owner/repo.git",
			expected: "github.com/owner/repo",
		},
		{
			name:     "URL with trailing slash",
			input:    "https://github.com/owner/repo/",
			expected: "github.com/owner/repo",
		},
		{
			name:     "plain path untouched",
			input:    "owner/repo",
			expected: "owner/repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizeURL(tt.input)
			if result != tt.expected {
				t.Errorf("normalizeURL(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestNewProvider tests creating a new GitHub provider
func TestNewProvider(t *testing.T) {
	prov, err := NewProvider(&provider.ProviderOptions{Token: "test-token"})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if prov.Name() != "github" {
		t.Errorf("Name() = %q, want github", prov.Name())
	}
}

// TestNewProvider_Anonymous tests creating a provider without a token
func TestNewProvider_Anonymous(t *testing.T) {
	prov, err := NewProvider(&provider.ProviderOptions{})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if prov == nil {
		t.Fatal("NewProvider() returned nil provider")
	}
}

// TestParseRepoPath tests repository path parsing
func TestParseRepoPath(t *testing.T) {
	prov, err := NewProvider(&provider.ProviderOptions{Token: "test-token"})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "owner/repo path",
			input:     "acme/widgets",
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		{
			name:      "full HTTPS URL",
			input:     "https://github.com/acme/widgets",
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		{
			name:      "URL with .git suffix",
			input:     "https://github.com/acme/widgets.git",
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		{
			name:      "git@ format",
			input:     "git@github.com:acme/widgets.git",
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		{
			name:    "empty URL",
			input:   "",
			wantErr: true,
		},
		{
			name:    "single segment",
			input:   "widgets",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := prov.ParseRepoPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepoPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRepoPath(%q) = (%q, %q), want (%q, %q)",
					tt.input, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}
