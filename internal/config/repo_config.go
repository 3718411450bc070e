package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"diamond.dev/diamond/internal/git"
)

const (
	// FileName is the name of the config file inside the git directory
	FileName = "dmd_config.yml"

	// DatabaseFileName is the default name of the branch graph database inside the git directory
	DatabaseFileName = "diamond.sqlite3"
)

// GitHubConfig controls the optional pull request integration used by submit
type GitHubConfig struct {
	OpenPullRequests *bool   `yaml:"openPullRequests,omitempty"`
	APIBaseURL       *string `yaml:"apiBaseURL,omitempty"`
	Draft            *bool   `yaml:"draft,omitempty"`
}

// RepoConfig represents the on-disk configuration for a repository.
// Remote and root branch are not stored here: they live in the branch graph.
type RepoConfig struct {
	DatabasePath   *string      `yaml:"databasePath,omitempty"`
	LogFile        *string      `yaml:"logFile,omitempty"`
	CommandTimeout *string      `yaml:"commandTimeout,omitempty"`
	ReviewHost     *string      `yaml:"reviewHost,omitempty"`
	GitHub         GitHubConfig `yaml:"github,omitempty"`
}

// Config wraps RepoConfig with the location it was loaded from
type Config struct {
	RepoConfig
	gitDir string
	path   string
}

// Load reads the configuration from gitDir. A missing file yields defaults.
func Load(gitDir string) (*Config, error) {
	cfg := &Config{
		gitDir: gitDir,
		path:   filepath.Join(gitDir, FileName),
	}

	data, err := os.ReadFile(cfg.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", cfg.path, err)
	}

	if err := yaml.Unmarshal(data, &cfg.RepoConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", cfg.path, err)
	}

	if cfg.CommandTimeout != nil {
		if _, err := time.ParseDuration(*cfg.CommandTimeout); err != nil {
			return nil, fmt.Errorf("invalid commandTimeout %q: %w", *cfg.CommandTimeout, err)
		}
	}

	return cfg, nil
}

// Save writes the configuration back to disk
func (c *Config) Save() error {
	data, err := yaml.Marshal(&c.RepoConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", c.path, err)
	}
	return nil
}

// Path returns the location of the config file
func (c *Config) Path() string {
	return c.path
}

// DatabaseFile returns the branch graph database location.
// DMD_DB_PATH takes precedence over the config file.
func (c *Config) DatabaseFile() string {
	if p := os.Getenv("DMD_DB_PATH"); p != "" {
		return p
	}
	if c.DatabasePath != nil && *c.DatabasePath != "" {
		if filepath.IsAbs(*c.DatabasePath) {
			return *c.DatabasePath
		}
		return filepath.Join(c.gitDir, *c.DatabasePath)
	}
	return filepath.Join(c.gitDir, DatabaseFileName)
}

// LogFilePath returns the path of the rotating log file.
// If DMD_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.diamond/logs/dmd.log
func (c *Config) LogFilePath() string {
	if customPath := os.Getenv("DMD_LOG_FILE"); customPath != "" {
		return customPath
	}
	if c.LogFile != nil && *c.LogFile != "" {
		return *c.LogFile
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(c.gitDir, "dmd.log")
	}
	return filepath.Join(homeDir, ".diamond", "logs", "dmd.log")
}

// Timeout returns the per-command timeout for git invocations
func (c *Config) Timeout() time.Duration {
	if s := os.Getenv("DMD_COMMAND_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	if c.CommandTimeout != nil {
		if d, err := time.ParseDuration(*c.CommandTimeout); err == nil && d > 0 {
			return d
		}
	}
	return git.DefaultCommandTimeout
}

// SetCommandTimeout updates the per-command timeout
func (c *Config) SetCommandTimeout(d time.Duration) {
	s := d.String()
	c.CommandTimeout = &s
}

// ReviewHostOverride returns the host used in review links, or "" to use the remote's host
func (c *Config) ReviewHostOverride() string {
	if c.ReviewHost != nil {
		return *c.ReviewHost
	}
	return ""
}

// OpenPullRequests returns whether submit opens pull requests by default
func (c *Config) OpenPullRequests() bool {
	return c.GitHub.OpenPullRequests != nil && *c.GitHub.OpenPullRequests
}

// GitHubAPIBaseURL returns the configured API base URL, or "" for github.com
func (c *Config) GitHubAPIBaseURL() string {
	if c.GitHub.APIBaseURL != nil {
		return *c.GitHub.APIBaseURL
	}
	return ""
}

// DraftPullRequests returns whether opened pull requests are drafts, true by default
func (c *Config) DraftPullRequests() bool {
	if c.GitHub.Draft != nil {
		return *c.GitHub.Draft
	}
	return true
}
