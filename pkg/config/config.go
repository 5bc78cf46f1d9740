// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the settings shared by the cabreaich containers.
//
// Settings come from, in increasing precedence: built-in defaults, an
// optional file (YAML, TOML or dotenv), and environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

// DefaultDotenvPath is read when no config path is given and the file exists.
const DefaultDotenvPath = "/app/.env"

// Settings holds the shared configuration.
type Settings struct {
	// Service URLs.
	QLogicRouteURL    string `yaml:"qlogic_route_url" toml:"qlogic_route_url" json:"qlogic_route_url"`
	GameLaunchURL     string `yaml:"game_launch_url" toml:"game_launch_url" json:"game_launch_url"`
	IntegrationAPIURL string `yaml:"integration_api_url" toml:"integration_api_url" json:"integration_api_url"`
	SpeechAPIURL      string `yaml:"speech_api_url" toml:"speech_api_url" json:"speech_api_url"`

	// RequestTimeout is the default per-request timeout of service clients.
	RequestTimeout Duration `yaml:"request_timeout" toml:"request_timeout" json:"request_timeout"`

	OpenAI      OpenAIConfig      `yaml:"openai" toml:"openai" json:"openai"`
	Cosmos      CosmosConfig      `yaml:"cosmos" toml:"cosmos" json:"cosmos"`
	AzureSpeech AzureSpeechConfig `yaml:"azure_speech" toml:"azure_speech" json:"azure_speech"`
	Log         LogConfig         `yaml:"log" toml:"log" json:"log"`
}

// OpenAIConfig configures OpenAI access.
type OpenAIConfig struct {
	APIKey    Secret `yaml:"api_key" toml:"api_key" json:"api_key"`
	ProjectID string `yaml:"project_id" toml:"project_id" json:"project_id"`
	OrgID     string `yaml:"org_id" toml:"org_id" json:"org_id"`
	Model     string `yaml:"model" toml:"model" json:"model"`
}

// CosmosConfig configures Azure Cosmos DB access.
type CosmosConfig struct {
	Endpoint         string `yaml:"endpoint" toml:"endpoint" json:"endpoint"`
	Key              Secret `yaml:"key" toml:"key" json:"key"`
	Database         string `yaml:"database" toml:"database" json:"database"`
	Container        string `yaml:"container" toml:"container" json:"container"`
	PartitionKeyPath string `yaml:"partition_key_path" toml:"partition_key_path" json:"partition_key_path"`
}

// AzureSpeechConfig configures Azure Speech access.
type AzureSpeechConfig struct {
	Key    Secret `yaml:"key" toml:"key" json:"key"`
	Region string `yaml:"region" toml:"region" json:"region"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warning, error, critical.
	Level string `yaml:"level" toml:"level" json:"level"`

	// Format is json or text.
	Format string `yaml:"format" toml:"format" json:"format"`

	// File, when set, receives a copy of every log record.
	File string `yaml:"file" toml:"file" json:"file"`
}

// Default returns settings with every default applied.
func Default() *Settings {
	return &Settings{
		RequestTimeout: Duration(10 * time.Second),
		OpenAI: OpenAIConfig{
			Model: "gpt-4-turbo",
		},
		Cosmos: CosmosConfig{
			PartitionKeyPath: "/session_id",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads settings from configPath and the environment. When configPath
// is empty, CABREAICH_CONFIG, DOTENV_PATH and DefaultDotenvPath are tried in
// that order; the default dotenv path is skipped when it does not exist.
func Load(configPath string) (*Settings, error) {
	return load(configPath, os.LookupEnv)
}

func load(configPath string, lookup func(string) (string, bool)) (*Settings, error) {
	s := Default()

	path, explicit := resolvePath(configPath, lookup)
	if path != "" {
		if err := s.loadFromFile(path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, &cerrors.ConfigError{
					Key:    "config_file",
					Reason: fmt.Sprintf("failed to load from %s", path),
					Cause:  err,
				}
			}
		}
	}

	s.applyDefaults()

	if err := s.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func resolvePath(configPath string, lookup func(string) (string, bool)) (string, bool) {
	if configPath != "" {
		return configPath, true
	}
	for _, key := range []string{"CABREAICH_CONFIG", "DOTENV_PATH"} {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
	}
	return DefaultDotenvPath, false
}

// applyDefaults fills zero values left by a partial file.
func (s *Settings) applyDefaults() {
	d := Default()
	if s.RequestTimeout == 0 {
		s.RequestTimeout = d.RequestTimeout
	}
	if s.OpenAI.Model == "" {
		s.OpenAI.Model = d.OpenAI.Model
	}
	if s.Cosmos.PartitionKeyPath == "" {
		s.Cosmos.PartitionKeyPath = d.Cosmos.PartitionKeyPath
	}
	if s.Log.Level == "" {
		s.Log.Level = d.Log.Level
	}
	if s.Log.Format == "" {
		s.Log.Format = d.Log.Format
	}
}

// loadFromFile reads a YAML, TOML or dotenv file, chosen by extension.
// Files without a known extension are read as dotenv.
func (s *Settings) loadFromFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, s); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, s); err != nil {
			return fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		values, err := readDotenv(data)
		if err != nil {
			return fmt.Errorf("failed to parse dotenv: %w", err)
		}
		if err := s.applyEnv(mapLookup(values)); err != nil {
			return err
		}
	}
	return nil
}

// validLogLevels lists accepted log levels.
var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true, "critical": true,
}

// Validate checks the settings. Empty service URLs are allowed; set ones
// must be absolute http or https URLs.
func (s *Settings) Validate() error {
	var errs []string

	urls := []struct {
		key   string
		value string
	}{
		{"qlogic_route_url", s.QLogicRouteURL},
		{"game_launch_url", s.GameLaunchURL},
		{"integration_api_url", s.IntegrationAPIURL},
		{"speech_api_url", s.SpeechAPIURL},
		{"cosmos.endpoint", s.Cosmos.Endpoint},
	}
	for _, u := range urls {
		if u.value == "" {
			continue
		}
		if err := validateHTTPURL(u.value); err != nil {
			errs = append(errs, fmt.Sprintf("%s %v", u.key, err))
		}
	}

	if s.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("request_timeout must be positive, got %v", s.RequestTimeout))
	}

	if !strings.HasPrefix(s.Cosmos.PartitionKeyPath, "/") {
		errs = append(errs, fmt.Sprintf("cosmos.partition_key_path %q must start with '/'", s.Cosmos.PartitionKeyPath))
	}

	if !validLogLevels[strings.ToLower(s.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of [debug, info, warning, error, critical], got %q", s.Log.Level))
	}
	if f := strings.ToLower(s.Log.Format); f != "json" && f != "text" {
		errs = append(errs, fmt.Sprintf("log.format must be one of [json, text], got %q", s.Log.Format))
	}

	if len(errs) > 0 {
		return &cerrors.ConfigError{
			Key:    "validation",
			Reason: "configuration validation failed: " + strings.Join(errs, "; "),
		}
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("is not a valid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("has no host: %q", raw)
	}
	return nil
}

// Missing lists the settings every container needs that are still unset,
// by environment variable name.
func (s *Settings) Missing() []string {
	required := []struct {
		env string
		set bool
	}{
		{"QLOGIC_ROUTE_URL", s.QLogicRouteURL != ""},
		{"GAME_LAUNCH_URL", s.GameLaunchURL != ""},
		{"INTEGRATION_API_URL", s.IntegrationAPIURL != ""},
		{"SPEECH_API_URL", s.SpeechAPIURL != ""},
		{"OPENAI_API_KEY", s.OpenAI.APIKey != ""},
		{"AZURE_COSMOS_ENDPOINT", s.Cosmos.Endpoint != ""},
		{"AZURE_COSMOS_KEY", s.Cosmos.Key != ""},
		{"AZURE_COSMOS_DB", s.Cosmos.Database != ""},
		{"AZURE_COSMOS_CONTAINER", s.Cosmos.Container != ""},
		{"AZURE_SPEECH_KEY", s.AzureSpeech.Key != ""},
		{"AZURE_SPEECH_REGION", s.AzureSpeech.Region != ""},
	}
	var missing []string
	for _, r := range required {
		if !r.set {
			missing = append(missing, r.env)
		}
	}
	return missing
}
