package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envSections are the environment variable prefixes mapped into config
// keys. Anything else in the environment is ignored.
var envSections = []string{
	"SERVER_", "LOG_", "DB_", "AUTH_",
	"ANTHROPIC_", "OPENAI_", "EXTRACTION_",
}

// Load loads configuration with the following precedence (highest
// wins):
//
//  1. Environment variables (SERVER_PORT, ANTHROPIC_API_KEY, ...)
//  2. YAML config file, when configPath names an existing file
//  3. Defaults
//
// Environment variables map onto config keys by lowercasing and
// splitting at the first underscore:
//
//	SERVER_SHUTDOWN_TIMEOUT -> server.shutdown_timeout
//	ANTHROPIC_API_KEY       -> anthropic.api_key
//	EXTRACTION_FORCE_MOCK   -> extraction.force_mock
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", transformEnv), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// transformEnv maps a recognized environment variable to its config
// key. Returning "" drops the variable.
func transformEnv(s string) string {
	for _, section := range envSections {
		if strings.HasPrefix(s, section) {
			section = strings.TrimSuffix(section, "_")
			rest := strings.TrimPrefix(s, section+"_")
			return strings.ToLower(section) + "." + strings.ToLower(rest)
		}
	}
	return ""
}
