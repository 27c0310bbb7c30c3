// Package config loads service configuration from the environment and an
// optional YAML file, and initializes the process logger.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
	defaultPort           = 8080
)

// Config holds the application configuration.
type Config struct {
	OpenAIAPIKey    string
	AnthropicAPIKey string

	OpenAIModel    string
	AnthropicModel string

	Server ServerConfig
	Log    LogConfig

	// Seed fixes the random source; zero derives one from the clock.
	Seed int64
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FileConfig represents the structure of pollgate.yaml.
type FileConfig struct {
	APIKeys APIKeysConfig `yaml:"api_keys"`
	Models  ModelsConfig  `yaml:"models"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Seed    int64         `yaml:"seed"`
}

// APIKeysConfig holds API key configuration from file.
type APIKeysConfig struct {
	OpenAI    string `yaml:"openai"`
	Anthropic string `yaml:"anthropic"`
}

// ModelsConfig selects the model per provider.
type ModelsConfig struct {
	OpenAI    string `yaml:"openai"`
	Anthropic string `yaml:"anthropic"`
}

// Load reads configuration from config files and environment variables.
// Environment variables take precedence over file configuration.
func Load() (*Config, error) {
	fileConfig := loadFileConfig(configPaths()...)

	cfg := &Config{
		OpenAIAPIKey:    getEnvOrDefault("OPENAI_API_KEY", fileConfig.APIKeys.OpenAI),
		AnthropicAPIKey: getEnvOrDefault("ANTHROPIC_API_KEY", fileConfig.APIKeys.Anthropic),
		OpenAIModel:     getEnvOrDefault("POLLGATE_OPENAI_MODEL", orDefault(fileConfig.Models.OpenAI, defaultOpenAIModel)),
		AnthropicModel:  getEnvOrDefault("POLLGATE_ANTHROPIC_MODEL", orDefault(fileConfig.Models.Anthropic, defaultAnthropicModel)),
		Server: ServerConfig{
			Host: getEnvOrDefault("POLLGATE_HOST", fileConfig.Server.Host),
			Port: fileConfig.Server.Port,
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("POLLGATE_LOG_LEVEL", orDefault(fileConfig.Log.Level, "info")),
			Format: getEnvOrDefault("POLLGATE_LOG_FORMAT", orDefault(fileConfig.Log.Format, "json")),
		},
		Seed: fileConfig.Seed,
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if port := os.Getenv("POLLGATE_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, eris.Wrapf(err, "config: invalid POLLGATE_PORT %q", port)
		}
		cfg.Server.Port = p
	}

	return cfg, nil
}

// HasProvider reports whether any provider credential is configured.
func (c *Config) HasProvider() bool {
	return c.OpenAIAPIKey != "" || c.AnthropicAPIKey != ""
}

// configPaths lists candidate config files, most specific first.
func configPaths() []string {
	paths := []string{"pollgate.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".pollgate", "config.yaml"))
	}
	return paths
}

// loadFileConfig reads the first config file that exists, returning an empty
// config when none do.
func loadFileConfig(paths ...string) *FileConfig {
	cfg := &FileConfig{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		_ = yaml.Unmarshal(data, cfg)
		return cfg
	}
	return cfg
}

// getEnvOrDefault returns the environment variable value if set,
// otherwise returns the default value.
func getEnvOrDefault(envVar, defaultValue string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultValue
}

func orDefault(val, fallback string) string {
	if val != "" {
		return val
	}
	return fallback
}
