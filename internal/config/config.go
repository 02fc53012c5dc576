package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the settings shared by the review and fix commands.
type Config struct {
	GitHubToken     string `toml:"github_token" sensitive:"true"`
	AnthropicAPIKey string `toml:"anthropic_api_key" sensitive:"true"`
	DefaultAgent    string `toml:"default_agent"`
	MinSeverity     string `toml:"min_severity"`
	MaxConcurrency  int    `toml:"max_concurrency"`
	ReviewEvent     string `toml:"review_event"`

	// Agent commands
	ClaudeCodeCmd string `toml:"claude_code_cmd"`
	GeminiCmd     string `toml:"gemini_cmd"`
}

// RepoConfig holds per-repo overrides.
type RepoConfig struct {
	Agent          string `toml:"agent"`
	MinSeverity    string `toml:"min_severity"`
	MaxConcurrency int    `toml:"max_concurrency"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultAgent:   "claude-code",
		MinSeverity:    "minor",
		MaxConcurrency: 5,
		ReviewEvent:    "COMMENT",
		ClaudeCodeCmd:  "claude",
		GeminiCmd:      "gemini",
	}
}

// DataDir returns the prvet data directory.
// Uses PRVET_DATA_DIR env var if set, otherwise ~/.prvet
func DataDir() string {
	if dir := os.Getenv("PRVET_DATA_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".prvet")
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadGlobal loads the global configuration from the default path and
// applies environment overrides.
func LoadGlobal() (*Config, error) {
	return LoadGlobalFrom(GlobalConfigPath())
}

// LoadFile loads the configuration file at path without applying
// environment overrides. Missing files yield the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadGlobalFrom loads the global configuration from a specific path.
// Environment variables win over file values.
func LoadGlobalFrom(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHubToken = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := os.Getenv("PRVET_MODEL"); v != "" {
		cfg.DefaultAgent = v
	}

	return cfg, nil
}

// Validate checks the settings a run cannot proceed without. It is
// called before any client or backend is constructed so a bad
// environment fails immediately with a usable message.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("GitHub token not set (set GITHUB_TOKEN or github_token in %s)", GlobalConfigPath())
	}
	switch c.MinSeverity {
	case "critical", "major", "minor", "":
	default:
		return fmt.Errorf("invalid min_severity %q (want critical, major, or minor)", c.MinSeverity)
	}
	switch c.ReviewEvent {
	case "COMMENT", "APPROVE", "REQUEST_CHANGES", "":
	default:
		return fmt.Errorf("invalid review_event %q (want COMMENT, APPROVE, or REQUEST_CHANGES)", c.ReviewEvent)
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must not be negative, got %d", c.MaxConcurrency)
	}
	return nil
}

// LoadRepoConfig loads per-repo overrides from .prvet.toml
func LoadRepoConfig(repoPath string) (*RepoConfig, error) {
	path := filepath.Join(repoPath, ".prvet.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil // No repo config
	}

	var cfg RepoConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ResolveAgent determines which backend to use based on priority:
// 1. Explicit agent parameter (if non-empty)
// 2. Per-repo config
// 3. Global config
// 4. Default ("claude-code")
func ResolveAgent(explicit string, repoPath string, globalCfg *Config) string {
	if explicit != "" {
		return explicit
	}

	if repoCfg, err := LoadRepoConfig(repoPath); err == nil && repoCfg != nil && repoCfg.Agent != "" {
		return repoCfg.Agent
	}

	if globalCfg != nil && globalCfg.DefaultAgent != "" {
		return globalCfg.DefaultAgent
	}

	return "claude-code"
}

// ResolveMinSeverity determines the severity floor based on priority:
// 1. Explicit flag value (if non-empty)
// 2. Per-repo config
// 3. Global config
// 4. Default ("minor", i.e. keep everything)
func ResolveMinSeverity(explicit string, repoPath string, globalCfg *Config) string {
	if explicit != "" {
		return explicit
	}

	if repoCfg, err := LoadRepoConfig(repoPath); err == nil && repoCfg != nil && repoCfg.MinSeverity != "" {
		return repoCfg.MinSeverity
	}

	if globalCfg != nil && globalCfg.MinSeverity != "" {
		return globalCfg.MinSeverity
	}

	return "minor"
}

// SaveGlobal saves the global configuration
func SaveGlobal(cfg *Config) error {
	path := GlobalConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
