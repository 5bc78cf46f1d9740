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
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
	"github.com/reaich/cabreaich-common/pkg/integration"
	"github.com/reaich/cabreaich-common/pkg/models"
	"github.com/reaich/cabreaich-common/pkg/qlogic"
	"github.com/reaich/cabreaich-common/pkg/speech"
	"github.com/reaich/cabreaich-common/pkg/textutil"
)

func parseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &cerrors.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%q is not a valid UUID", value),
		}
	}
	return id, nil
}

func newRouteTurnCommand(s *session) *cobra.Command {
	var childID, sessionID, sttText, targetPhrase, moduleContext string

	cmd := &cobra.Command{
		Use:   "route-turn",
		Short: "Ask QLogic to route a turn",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			child, err := parseUUID("child_id", childID)
			if err != nil {
				return err
			}
			sess, err := parseUUID("session_id", sessionID)
			if err != nil {
				return err
			}

			in := models.NewQLogicTurnInput(child, sess)
			if moduleContext != "" {
				in.ModuleContext = moduleContext
			}
			if cmd.Flags().Changed("stt-text") {
				cleaned := textutil.CleanText(sttText)
				in.STTText = &cleaned
			}
			if cmd.Flags().Changed("target-phrase") {
				in.TargetPhrase = &targetPhrase
			}

			c, err := qlogic.NewFromSettings(s.settings, s.clientOptions()...)
			if err != nil {
				return err
			}
			defer c.Close()

			resp, err := c.RouteTurn(ctx, in)
			if err != nil {
				return err
			}
			return s.print(ctx, resp)
		}),
	}

	cmd.Flags().StringVar(&childID, "child-id", "", "Child UUID (required)")
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session UUID (required)")
	cmd.Flags().StringVar(&sttText, "stt-text", "", "Recognized speech")
	cmd.Flags().StringVar(&targetPhrase, "target-phrase", "", "Phrase the child was asked to say")
	cmd.Flags().StringVar(&moduleContext, "module-context", "", "Calling module (default speech_handler)")
	_ = cmd.MarkFlagRequired("child-id")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}

func newAudioCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "audio <session-id> <pause|resume>",
		Short: "Pause or resume audio for a session",
		Args:  cobra.ExactArgs(2),
		RunE: s.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			c, err := speech.NewFromSettings(s.settings, s.clientOptions()...)
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.ControlAudio(ctx, args[0], speech.AudioAction(args[1]))
			if err != nil {
				return err
			}
			return s.print(ctx, res.Value())
		}),
	}
}

func newEventCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Post events to the Integration API",
	}
	cmd.AddCommand(newVADEventCommand(s), newFlagsEventCommand(s))
	return cmd
}

func newVADEventCommand(s *session) *cobra.Command {
	var sessionID, eventType string

	cmd := &cobra.Command{
		Use:   "vad",
		Short: "Post a VAD speech start or end event",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			sess, err := parseUUID("session_id", sessionID)
			if err != nil {
				return err
			}
			typ, err := models.ParseVADEventType(eventType)
			if err != nil {
				return err
			}

			c, err := integration.NewFromSettings(s.settings, s.clientOptions()...)
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.PostVADEvent(ctx, models.NewVADEvent(typ, sess))
			if err != nil {
				return err
			}
			return s.print(ctx, res.Value())
		}),
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session UUID (required)")
	cmd.Flags().StringVar(&eventType, "type", "", "Event type: start or end (required)")
	_ = cmd.MarkFlagRequired("session-id")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newFlagsEventCommand(s *session) *cobra.Command {
	var sessionID string
	var flags []string

	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Post VAD timing flags",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			sess, err := parseUUID("session_id", sessionID)
			if err != nil {
				return err
			}
			for _, f := range flags {
				if !models.KnownFlag(f) {
					s.logger.Warn("posting unknown flag", "flag", f)
				}
			}

			data := &models.VADTimingFlagsData{SessionID: sess, Flags: append([]string{}, flags...), Timestamp: models.Now()}

			c, err := integration.NewFromSettings(s.settings, s.clientOptions()...)
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.PostTimingFlags(ctx, data)
			if err != nil {
				return err
			}
			return s.print(ctx, res.Value())
		}),
	}

	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session UUID (required)")
	cmd.Flags().StringSliceVar(&flags, "flag", nil, "Timing flag, e.g. false_start (repeatable)")
	_ = cmd.MarkFlagRequired("session-id")
	return cmd
}

func newConfigCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: s.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if missing := s.settings.Missing(); len(missing) > 0 {
				s.logger.Warn("settings incomplete", "missing", missing)
			}
			if s.filter != nil {
				return s.print(ctx, s.settings)
			}
			data, err := yaml.Marshal(s.settings)
			if err != nil {
				return fmt.Errorf("failed to marshal settings: %w", err)
			}
			_, err = s.out.Write(data)
			return err
		}),
	})
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Printf("cabctl version %s\n", version)
			cmd.Printf("  commit:     %s\n", commit)
			cmd.Printf("  build date: %s\n", buildDate)
			return nil
		},
	}
}
