package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FetcherConfig controls how topics are resolved and pages retrieved.
type FetcherConfig struct {
	BaseURL     string `yaml:"base_url"`
	UserAgent   string `yaml:"user_agent"`
	Extractor   string `yaml:"extractor"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries"`
}

// SplitterConfig selects the sentence-boundary tokenizer.
type SplitterConfig struct {
	Type string `yaml:"type"`
}

// NormalizerConfig selects how tokens are reduced to a base form.
type NormalizerConfig struct {
	Reducer string `yaml:"reducer"`
}

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type         string `yaml:"type"`
	MaxSentences int    `yaml:"max_sentences"`
}

// ServerConfig configures the HTTP surface started by `wikibot serve`.
type ServerConfig struct {
	Address        string `yaml:"address"`
	SessionTTLMins int    `yaml:"session_ttl_mins"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Fetcher    FetcherConfig    `yaml:"fetcher"`
	Splitter   SplitterConfig   `yaml:"splitter"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/wikibot/config.yaml.
// If neither exists, it writes defaults to ~/.config/wikibot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wikibot", "config.yaml"), nil
}

func defaultLogPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "wikibot", "wikibot.log")
	}
	return filepath.Join(os.TempDir(), "wikibot.log")
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Fetcher.BaseURL == "" {
		cfg.Fetcher.BaseURL = "https://en.wikipedia.org/wiki/"
	}
	if cfg.Fetcher.UserAgent == "" {
		cfg.Fetcher.UserAgent = "wikibot/1.0 (+https://github.com/wikibot/wikibot)"
	}
	if cfg.Fetcher.Extractor == "" {
		cfg.Fetcher.Extractor = "paragraphs"
	}
	if cfg.Fetcher.TimeoutSecs == 0 {
		cfg.Fetcher.TimeoutSecs = 15
	}
	if cfg.Fetcher.MaxRetries < 0 {
		cfg.Fetcher.MaxRetries = 0
	}
	if cfg.Splitter.Type == "" {
		cfg.Splitter.Type = "punkt"
	}
	if cfg.Normalizer.Reducer == "" {
		cfg.Normalizer.Reducer = "lemma"
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = "frequency"
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 3
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.SessionTTLMins == 0 {
		cfg.Server.SessionTTLMins = 30
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogPath()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
}

// applyEnvOverrides lets the environment (or a .env file) win over the file.
func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("WIKIBOT_BASE_URL")); v != "" {
		cfg.Fetcher.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("WIKIBOT_USER_AGENT")); v != "" {
		cfg.Fetcher.UserAgent = v
	}
	if v := strings.TrimSpace(os.Getenv("WIKIBOT_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
}
