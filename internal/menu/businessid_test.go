package menu_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryansgue/scanela-sub001/internal/menu"
)

func TestNormalizeBusinessID(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantQuery   string
		wantDisplay string
		wantErr     bool
	}{
		{
			name:        "integer",
			raw:         `42`,
			wantQuery:   "42",
			wantDisplay: "42",
		},
		{
			name:        "numeric string canonicalized for queries",
			raw:         `"007"`,
			wantQuery:   "7",
			wantDisplay: "007",
		},
		{
			name:        "big integer as string stays verbatim",
			raw:         `"123456789012345678901234567890"`,
			wantQuery:   "123456789012345678901234567890",
			wantDisplay: "123456789012345678901234567890",
		},
		{
			name:        "opaque string",
			raw:         `"branch-madrid"`,
			wantQuery:   "branch-madrid",
			wantDisplay: "branch-madrid",
		},
		{
			name:        "padded string trimmed",
			raw:         `"  branch-madrid  "`,
			wantQuery:   "branch-madrid",
			wantDisplay: "branch-madrid",
		},
		{
			name:    "empty string",
			raw:     `""`,
			wantErr: true,
		},
		{
			name:    "whitespace string",
			raw:     `"   "`,
			wantErr: true,
		},
		{
			name:    "null",
			raw:     `null`,
			wantErr: true,
		},
		{
			name:    "object",
			raw:     `{"id":1}`,
			wantErr: true,
		},
		{
			name:    "missing",
			raw:     ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := menu.NormalizeBusinessID(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, menu.ErrInvalidBusinessID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, got.Query)
			assert.Equal(t, tt.wantDisplay, got.Display)
		})
	}
}

func TestParseBusinessID(t *testing.T) {
	got, err := menu.ParseBusinessID("42")
	require.NoError(t, err)
	assert.Equal(t, "42", got.Query)

	_, err = menu.ParseBusinessID("")
	assert.ErrorIs(t, err, menu.ErrInvalidBusinessID)
}
