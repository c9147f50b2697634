package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "pure JSON",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "JSON inside prose",
			input: `Sure! Here's the result: {"itemName":"Can","binType":"yellow"} Hope that helps!`,
			want:  `{"itemName":"Can","binType":"yellow"}`,
		},
		{
			name:  "markdown fenced JSON",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "nested object",
			input: `prefix {"a":{"b":2}} suffix`,
			want:  `{"a":{"b":2}}`,
		},
		{
			name:  "spurious trailing brace triggers depth scan",
			input: `{"a":1} and a stray }`,
			want:  `{"a":1}`,
		},
		{
			name:  "two siblings with unbalanced tail extracts first only",
			input: `{"a":1} also {"b":2}}`,
			want:  `{"a":1}`,
		},
		{
			name:    "no braces",
			input:   "nothing to see here",
			wantErr: true,
		},
		{
			name:    "closing before opening",
			input:   `} oops {`,
			wantErr: true,
		},
		{
			name:    "never closes",
			input:   `{"a": {"b": 1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractObject(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidResponse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
