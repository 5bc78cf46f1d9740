package jq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routing struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		data       any
		want       []any
	}{
		{
			name:       "empty expression is identity",
			expression: "",
			data:       map[string]any{"foo": "bar"},
			want:       []any{map[string]any{"foo": "bar"}},
		},
		{
			name:       "field from struct",
			expression: ".payload.text",
			data:       routing{Type: "prompt", Payload: map[string]any{"text": "hi"}},
			want:       []any{"hi"},
		},
		{
			name:       "array map",
			expression: "map(.x)",
			data:       []any{map[string]any{"x": 1}, map[string]any{"x": 2}},
			want:       []any{[]any{float64(1), float64(2)}},
		},
		{
			name:       "multiple outputs",
			expression: ".[]",
			data:       []int{1, 2},
			want:       []any{float64(1), float64(2)},
		},
		{
			name:       "no output",
			expression: "empty",
			data:       map[string]any{},
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Apply(context.Background(), tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(".[")
	assert.Error(t, err)

	_, err = Compile("undefined_function_xyz")
	assert.Error(t, err)
}

func TestFilter_RuntimeError(t *testing.T) {
	f, err := Compile(".foo")
	require.NoError(t, err)

	_, err = f.Apply(context.Background(), []any{1})
	assert.Error(t, err)
}

func TestFilter_InputTooLarge(t *testing.T) {
	f, err := Compile(".")
	require.NoError(t, err)
	f.maxInputSize = 4

	_, err = f.Apply(context.Background(), "too long")
	assert.Error(t, err)
}
