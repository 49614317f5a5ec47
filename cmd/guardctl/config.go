package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Config holds the guardctl configuration
type Config struct {
	// PolicyPath is the role-hierarchy and role-permission table file
	PolicyPath string `json:"policy_path"`

	// Logging settings
	AppLogPath   string `json:"app_log_path,omitempty"`   // Optional: application log file
	AuditLogPath string `json:"audit_log_path,omitempty"` // Optional: decision audit log file
	LogLevel     string `json:"log_level,omitempty"`      // debug, info, warn, error
}

// LoadConfig loads configuration from a JSON file. Comments and trailing
// commas are tolerated.
func LoadConfig(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	// Convert relative paths to absolute paths based on config file location
	configDir := filepath.Dir(path)
	if config.PolicyPath != "" && !filepath.IsAbs(config.PolicyPath) {
		config.PolicyPath = filepath.Join(configDir, config.PolicyPath)
	}
	if config.AppLogPath != "" && !filepath.IsAbs(config.AppLogPath) {
		config.AppLogPath = filepath.Join(configDir, config.AppLogPath)
	}
	if config.AuditLogPath != "" && !filepath.IsAbs(config.AuditLogPath) {
		config.AuditLogPath = filepath.Join(configDir, config.AuditLogPath)
	}

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return nil
}
