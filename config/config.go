package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type ModelConfig struct {
	Provider              string `toml:"provider"`
	Host                  string `toml:"host"`
	Name                  string `toml:"name"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

type ChatConfig struct {
	Title         string `toml:"title"`
	UserName      string `toml:"user_name"`
	AssistantName string `toml:"assistant_name"`
	SystemPrompt  string `toml:"system_prompt"`
}

type UserConfig struct {
	Model    ModelConfig `toml:"model"`
	Chat     ChatConfig  `toml:"chat"`
	UsageLog bool        `toml:"usage_log"`
}

// Config is the flattened runtime configuration handed to the rest of the app.
type Config struct {
	DataDirectory  string
	Provider       string
	Host           string
	ModelName      string
	RequestTimeout time.Duration
	Title          string
	UserName       string
	AssistantName  string
	SystemPrompt   string
	UsageLog       bool
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyUserConfig(userCfg *UserConfig) {
	defaults := DefaultUserConfig()

	c.Provider = firstNonEmpty(userCfg.Model.Provider, defaults.Model.Provider)
	c.Host = firstNonEmpty(userCfg.Model.Host, defaults.Model.Host)
	c.ModelName = firstNonEmpty(userCfg.Model.Name, defaults.Model.Name)
	c.Title = firstNonEmpty(userCfg.Chat.Title, defaults.Chat.Title)
	c.UserName = firstNonEmpty(userCfg.Chat.UserName, defaults.Chat.UserName)
	c.AssistantName = firstNonEmpty(userCfg.Chat.AssistantName, defaults.Chat.AssistantName)
	c.SystemPrompt = firstNonEmpty(userCfg.Chat.SystemPrompt, defaults.Chat.SystemPrompt)
	c.UsageLog = userCfg.UsageLog

	// Negative disables the timeout; zero keeps the default
	switch {
	case userCfg.Model.RequestTimeoutSeconds < 0:
		c.RequestTimeout = 0
	case userCfg.Model.RequestTimeoutSeconds > 0:
		c.RequestTimeout = time.Duration(userCfg.Model.RequestTimeoutSeconds) * time.Second
	default:
		c.RequestTimeout = time.Duration(defaults.Model.RequestTimeoutSeconds) * time.Second
	}
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("BROCHAT_HOST"); host != "" {
		c.Host = host
	}
	if model := os.Getenv("BROCHAT_MODEL"); model != "" {
		c.ModelName = model
	}
	if provider := os.Getenv("BROCHAT_PROVIDER"); provider != "" {
		c.Provider = provider
	}
}

func CheckDebug() bool {
	debug := os.Getenv("BROCHAT_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - prompts and file paths end up in here
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (BROCHAT_DEBUG=%s) ===", os.Getenv("BROCHAT_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// Load reads settings.toml and the user config.toml, creating either from
// its template when missing, then applies environment overrides.
func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory: DefaultSystemConfig().DataDirectory,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	if systemCfg.DataDirectory != "" {
		cfg.DataDirectory = systemCfg.DataDirectory
	}
	if dataDir := os.Getenv("BROCHAT_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
