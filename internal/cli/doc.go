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

/*
Package cli implements cabctl, a command-line client for the cabreaich
services built on the shared client library.

# Command Tree

	cabctl
	├── route-turn    Ask QLogic to route a turn
	├── audio         Pause or resume audio for a session
	├── event
	│   ├── vad       Post a VAD speech start/end event
	│   └── flags     Post VAD timing flags
	├── config
	│   └── show      Print the effective settings (secrets redacted)
	└── version       Show version

# Usage

From main.go:

	cli.SetVersion(version, commit, date)
	if err := cli.NewRootCommand().Execute(); err != nil {
	    cli.HandleExitError(err)
	}

# Global Flags

	--config           Settings file (YAML, TOML or dotenv)
	--log-level        trace, debug, info, warning, error, critical
	--log-format       json or text
	--jq               jq expression applied to JSON output
	--trace-exporter   none, console, otlp-http or otlp-grpc
	--timeout          Per-request timeout

Every service client created by one invocation shares a single connection
pool, which the command closes when it finishes.
*/
package cli
