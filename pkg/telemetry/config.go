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

package telemetry

import (
	"fmt"
	"io"
	"strings"
)

// Exporter names accepted by Config.Exporter.
const (
	ExporterNone     = "none"
	ExporterConsole  = "console"
	ExporterOTLPHTTP = "otlp-http"
	ExporterOTLPGRPC = "otlp-grpc"
)

// Config holds tracing configuration.
type Config struct {
	// ServiceName identifies this service in traces.
	ServiceName string

	// ServiceVersion is the application version.
	ServiceVersion string

	// Exporter selects where spans go: none, console, otlp-http, otlp-grpc.
	// Default: none
	Exporter string

	// Endpoint is the OTLP collector endpoint (host:port) for otlp exporters.
	Endpoint string

	// Insecure disables TLS towards the collector (development only).
	Insecure bool

	// Headers are sent with every export request (e.g. vendor API keys).
	Headers map[string]string

	// ConsoleWriter receives spans for the console exporter. Default: os.Stdout
	ConsoleWriter io.Writer

	// SampleRate is the fraction of traces recorded, 0.0 - 1.0. Default: 1.0
	SampleRate float64
}

// DefaultConfig returns a Config that records nothing.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Exporter:       ExporterNone,
		SampleRate:     1.0,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	switch strings.ToLower(c.Exporter) {
	case "", ExporterNone, ExporterConsole:
	case ExporterOTLPHTTP, ExporterOTLPGRPC:
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint is required for exporter %q", c.Exporter)
		}
	default:
		return fmt.Errorf("unknown exporter %q (must be none, console, otlp-http or otlp-grpc)", c.Exporter)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be between 0 and 1, got %v", c.SampleRate)
	}
	return nil
}
