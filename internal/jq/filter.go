// Package jq applies jq expressions to command output.
package jq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itchyny/gojq"
)

const (
	// DefaultTimeout bounds a single evaluation.
	DefaultTimeout = 1 * time.Second

	// DefaultMaxInputSize is the largest JSON input accepted (10MB).
	DefaultMaxInputSize = 10 * 1024 * 1024
)

// Filter is a compiled jq expression.
type Filter struct {
	expr         string
	code         *gojq.Code
	timeout      time.Duration
	maxInputSize int
}

// Compile parses and compiles expr. An empty expression yields the
// identity filter.
func Compile(expr string) (*Filter, error) {
	if expr == "" {
		expr = "."
	}
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("jq compilation failed: %w", err)
	}
	return &Filter{
		expr:         expr,
		code:         code,
		timeout:      DefaultTimeout,
		maxInputSize: DefaultMaxInputSize,
	}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.expr }

// Apply runs the filter over v and returns every emitted value. v is first
// normalized through JSON so that structs and typed maps are accepted.
func (f *Filter) Apply(ctx context.Context, v any) ([]any, error) {
	input, err := f.normalize(v)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var results []any
	iter := f.code.RunWithContext(ctx, input)
	for {
		out, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := out.(error); isErr {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("jq execution timeout after %v", f.timeout)
			}
			return nil, err
		}
		results = append(results, out)
	}
	return results, nil
}

func (f *Filter) normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jq input: %w", err)
	}
	if len(data) > f.maxInputSize {
		return nil, fmt.Errorf("jq input size (%d bytes) exceeds maximum (%d bytes)", len(data), f.maxInputSize)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to normalize jq input: %w", err)
	}
	return out, nil
}
