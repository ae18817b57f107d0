package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = ".rtfimage"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"

	// EnvConfigPath overrides the configuration file location.
	EnvConfigPath = "RTFIMAGE_CONFIG"
	// EnvLogLevel overrides log_level.
	EnvLogLevel = "RTFIMAGE_LOG_LEVEL"
	// EnvDebug forces debug logging when set to "true", "1" or "yes".
	EnvDebug = "RTFIMAGE_DEBUG"
)

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Loader handles configuration loading and saving.
type Loader struct {
	configDir  string
	configPath string
}

// NewLoader creates a loader for $RTFIMAGE_CONFIG, or ~/.rtfimage/config.yaml
// when the variable is unset.
func NewLoader() (*Loader, error) {
	if p := GetEnvOrDefault(EnvConfigPath, ""); p != "" {
		return NewLoaderWithPath(p), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ConfigDirName)
	return &Loader{
		configDir:  configDir,
		configPath: filepath.Join(configDir, ConfigFileName),
	}, nil
}

// NewLoaderWithPath creates a loader with a custom config path.
func NewLoaderWithPath(configPath string) *Loader {
	return &Loader{
		configDir:  filepath.Dir(configPath),
		configPath: configPath,
	}
}

// ConfigPath returns the configuration file path.
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load reads and parses the configuration file. Keys missing from the file
// keep their default values, and a missing file yields DefaultConfig. The
// RTFIMAGE_LOG_LEVEL environment variable takes precedence over log_level,
// and a true RTFIMAGE_DEBUG takes precedence over both.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(l.configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.LogLevel = strings.ToLower(GetEnvOrDefault(EnvLogLevel, cfg.LogLevel))
	if GetEnvBool(EnvDebug) {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", l.configPath, err)
	}
	return cfg, nil
}

// Save writes the configuration to the file.
func (l *Loader) Save(cfg *Config) error {
	if err := os.MkdirAll(l.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if the configuration file exists.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.configPath)
	return err == nil
}

// Init creates a default configuration file.
func (l *Loader) Init() error {
	if l.Exists() {
		return fmt.Errorf("config file already exists: %s", l.configPath)
	}
	return l.Save(DefaultConfig())
}

func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool returns true if the environment variable is set to "true", "1" or "yes".
func GetEnvBool(key string) bool {
	value := strings.ToLower(os.Getenv(key))
	return value == "true" || value == "1" || value == "yes"
}
