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

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reaich/cabreaich-common/internal/jq"
	"github.com/reaich/cabreaich-common/pkg/client"
	"github.com/reaich/cabreaich-common/pkg/config"
	"github.com/reaich/cabreaich-common/pkg/httpclient"
	"github.com/reaich/cabreaich-common/pkg/log"
	"github.com/reaich/cabreaich-common/pkg/telemetry"
)

// Version information, set from main.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// SetVersion sets the version information (called from main).
func SetVersion(v, c, b string) {
	version, commit, buildDate = v, c, b
}

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath    string
	logLevel      string
	logFormat     string
	jq            string
	traceExporter string
	timeout       time.Duration
}

func (o *globalOptions) register(flags *pflag.FlagSet) {
	flags.StringVar(&o.configPath, "config", "", "Path to a settings file (YAML, TOML or dotenv)")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level (overrides settings)")
	flags.StringVar(&o.logFormat, "log-format", "", "Log format: json or text (overrides settings)")
	flags.StringVar(&o.jq, "jq", "", "jq expression applied to JSON output")
	flags.StringVar(&o.traceExporter, "trace-exporter", telemetry.ExporterNone, "Trace exporter: none, console, otlp-http, otlp-grpc")
	flags.DurationVar(&o.timeout, "timeout", 0, "Per-request timeout (overrides settings)")
}

// session is the state shared by the commands of one invocation.
type session struct {
	opts     globalOptions
	settings *config.Settings
	logger   *slog.Logger
	pool     *httpclient.Pool
	filter   *jq.Filter
	out      io.Writer

	cleanup []func(context.Context) error
}

// NewRootCommand creates the root Cobra command for cabctl.
func NewRootCommand() *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:   "cabctl",
		Short: "cabctl - command-line client for the cabreaich services",
		Long: `cabctl talks to the QLogic router, the speech container and the
Integration API using the shared cabreaich client library.

Service URLs and credentials come from the settings file given with
--config, from DOTENV_PATH, or from the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	s.opts.register(cmd.PersistentFlags())

	cmd.AddCommand(
		newRouteTurnCommand(s),
		newAudioCommand(s),
		newEventCommand(s),
		newConfigCommand(s),
		newVersionCommand(),
	)
	return cmd
}

// run wraps a command body with setup and a teardown that runs on every
// exit path.
func (s *session) run(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = telemetry.ToContext(ctx, telemetry.NewCorrelationID())

		defer func() {
			if cerr := s.teardown(ctx); cerr != nil {
				err = errors.Join(err, cerr)
			}
		}()
		if err := s.setup(ctx, cmd); err != nil {
			return err
		}
		return fn(ctx, cmd, args)
	}
}

func (s *session) setup(ctx context.Context, cmd *cobra.Command) error {
	s.out = cmd.OutOrStdout()

	settings, err := config.Load(s.opts.configPath)
	if err != nil {
		return err
	}
	if s.opts.timeout > 0 {
		settings.RequestTimeout = config.Duration(s.opts.timeout)
	}
	s.settings = settings

	logCfg := log.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.Level = firstNonEmpty(s.opts.logLevel, settings.Log.Level)
	logCfg.Format = log.Format(firstNonEmpty(s.opts.logFormat, settings.Log.Format))
	logCfg.File = settings.Log.File
	logger, closer, err := log.New(logCfg)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	s.logger = log.WithCorrelationID(logger, telemetry.FromContextOrEmpty(ctx).String())
	s.cleanup = append(s.cleanup, func(context.Context) error { return closer.Close() })

	if s.opts.traceExporter != "" && s.opts.traceExporter != telemetry.ExporterNone {
		tcfg := telemetry.DefaultConfig("cabctl")
		tcfg.ServiceVersion = version
		tcfg.Exporter = s.opts.traceExporter
		tcfg.ConsoleWriter = cmd.ErrOrStderr()
		shutdown, err := telemetry.Setup(ctx, tcfg)
		if err != nil {
			return fmt.Errorf("set up tracing: %w", err)
		}
		s.cleanup = append(s.cleanup, shutdown)
	}

	if s.opts.jq != "" {
		filter, err := jq.Compile(s.opts.jq)
		if err != nil {
			return err
		}
		s.filter = filter
	}

	poolCfg := httpclient.DefaultConfig()
	// Each client bounds its requests with its own deadline.
	poolCfg.Timeout = 0
	poolCfg.Logger = s.logger
	pool, err := httpclient.New(poolCfg)
	if err != nil {
		return err
	}
	s.pool = pool
	s.cleanup = append(s.cleanup, func(context.Context) error { return pool.Close() })
	return nil
}

// teardown runs cleanups in reverse order.
func (s *session) teardown(ctx context.Context) error {
	var errs []error
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		if err := s.cleanup[i](context.WithoutCancel(ctx)); err != nil {
			errs = append(errs, err)
		}
	}
	s.cleanup = nil
	return errors.Join(errs...)
}

// clientOptions are the options every service client of the invocation uses.
func (s *session) clientOptions() []client.Option {
	return []client.Option{
		client.WithSharedPool(s.pool),
		client.WithLogger(s.logger),
	}
}

// print writes v as indented JSON, or the output of the --jq filter.
func (s *session) print(ctx context.Context, v any) error {
	values := []any{v}
	if s.filter != nil {
		out, err := s.filter.Apply(ctx, v)
		if err != nil {
			return err
		}
		values = out
	}
	for _, val := range values {
		data, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		if _, err := fmt.Fprintln(s.out, string(data)); err != nil {
			return err
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
