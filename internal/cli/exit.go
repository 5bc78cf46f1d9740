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
	"errors"
	"fmt"
	"io"
	"os"

	cerrors "github.com/reaich/cabreaich-common/pkg/errors"
)

// Exit codes for cabctl.
const (
	ExitSuccess        = 0
	ExitFailed         = 1
	ExitInvalidInput   = 2
	ExitTransportError = 3
	ExitStatusError    = 4
	ExitDecodeError    = 5
	ExitConfigError    = 6
)

// ExitCode maps err to a process exit code by its error kind.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch cerrors.KindOf(err) {
	case cerrors.KindValidation:
		return ExitInvalidInput
	case cerrors.KindTransport:
		return ExitTransportError
	case cerrors.KindStatus:
		return ExitStatusError
	case cerrors.KindDecode:
		return ExitDecodeError
	case cerrors.KindConfig:
		return ExitConfigError
	}
	return ExitFailed
}

// HandleExitError prints err with any suggestion and exits with the code
// for its kind.
func HandleExitError(err error) {
	if err == nil {
		return
	}
	printError(os.Stderr, err)
	os.Exit(ExitCode(err))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err.Error())

	var ve *cerrors.ValidationError
	if errors.As(err, &ve) && ve.Suggestion != "" {
		fmt.Fprintf(w, "\nSuggestion: %s\n", ve.Suggestion)
		return
	}

	var uv cerrors.UserVisibleError
	if errors.As(err, &uv) && uv.IsUserVisible() {
		if s := uv.Suggestion(); s != "" {
			fmt.Fprintf(w, "\nSuggestion: %s\n", s)
		}
	}
}
