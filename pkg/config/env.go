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

package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// applyEnv overrides settings from environment-style variables, either the
// process environment or the parsed contents of a dotenv file.
func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	secret := func(key string, dst *Secret) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = Secret(v)
		}
	}

	str("QLOGIC_ROUTE_URL", &s.QLogicRouteURL)
	str("GAME_LAUNCH_URL", &s.GameLaunchURL)
	str("INTEGRATION_API_URL", &s.IntegrationAPIURL)
	str("SPEECH_API_URL", &s.SpeechAPIURL)

	secret("OPENAI_API_KEY", &s.OpenAI.APIKey)
	str("OPENAI_PROJECT_ID", &s.OpenAI.ProjectID)
	str("OPENAI_ORG_ID", &s.OpenAI.OrgID)
	str("OPENAI_MODEL", &s.OpenAI.Model)

	str("AZURE_COSMOS_ENDPOINT", &s.Cosmos.Endpoint)
	secret("AZURE_COSMOS_KEY", &s.Cosmos.Key)
	str("AZURE_COSMOS_DB", &s.Cosmos.Database)
	str("AZURE_COSMOS_CONTAINER", &s.Cosmos.Container)
	str("AZURE_COSMOS_PARTITION_KEY_PATH", &s.Cosmos.PartitionKeyPath)

	secret("AZURE_SPEECH_KEY", &s.AzureSpeech.Key)
	str("AZURE_SPEECH_REGION", &s.AzureSpeech.Region)

	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		s.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		s.Log.Format = strings.ToLower(v)
	}
	str("LOG_FILE", &s.Log.File)

	if v, ok := lookup("REQUEST_TIMEOUT"); ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return &cerrors.ConfigError{
				Key:    "REQUEST_TIMEOUT",
				Reason: fmt.Sprintf("invalid duration %q", v),
				Cause:  err,
			}
		}
		s.RequestTimeout = Duration(d)
	}
	return nil
}

// parseDuration accepts Go durations ("1.5s") and plain seconds ("10").
func parseDuration(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("not a duration: %q", v)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// readDotenv parses a dotenv file with viper's env codec. Keys are
// upper-cased to match environment variable names.
func readDotenv(data []byte) (map[string]string, error) {
	v := viper.New()
	v.SetConfigType("env")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(v.AllKeys()))
	for _, key := range v.AllKeys() {
		values[strings.ToUpper(key)] = v.GetString(key)
	}
	return values, nil
}
