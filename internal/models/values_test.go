package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {

	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"Success - number", `7`, "7"},
		{"Success - string", `"7"`, "7"},
		{"Success - uuid string", `"b1c2"`, "b1c2"},
		{"Success - null", `null`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tc.input), &id))
			assert.Equal(t, tc.want, id)
		})
	}

	t.Run("Failure - object", func(t *testing.T) {
		var id ID
		assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &id))
	})
}

func TestID_MarshalJSON(t *testing.T) {

	numeric, err := json.Marshal(ID("12"))
	require.NoError(t, err)
	assert.Equal(t, `12`, string(numeric))

	text, err := json.Marshal(ID("tmpl-12"))
	require.NoError(t, err)
	assert.Equal(t, `"tmpl-12"`, string(text))
}

func TestAmount_UnmarshalJSON(t *testing.T) {

	tests := []struct {
		name  string
		input string
		want  Amount
	}{
		{"Success - number", `149.5`, 149.5},
		{"Success - numeric string", `"321.84"`, 321.84},
		{"Success - blank string", `"  "`, 0},
		{"Success - null", `null`, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tc.input), &a))
			assert.InDelta(t, float64(tc.want), a.Float64(), 1e-9)
		})
	}

	t.Run("Failure - not a number", func(t *testing.T) {
		var a Amount
		assert.Error(t, json.Unmarshal([]byte(`"free"`), &a))
	})
}
