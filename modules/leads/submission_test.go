package leads_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmrmedia/obsidian-landing/modules/leads"
)

func TestSubmission_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("scalars", func(t *testing.T) {
		t.Parallel()

		var s leads.Submission
		err := json.Unmarshal([]byte(`{"name":"Jane","zip":80202,"phone":null,"consent":true}`), &s)
		require.NoError(t, err)
		assert.Equal(t, leads.Submission{
			"name":    "Jane",
			"zip":     "80202",
			"phone":   "",
			"consent": "true",
		}, s)
	})

	tests := []struct {
		name  string
		input string
	}{
		{"array", `["Jane"]`},
		{"string", `"Jane"`},
		{"null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s leads.Submission
			err := json.Unmarshal([]byte(tt.input), &s)
			assert.ErrorIs(t, err, leads.ErrInvalidSubmission)
		})
	}
}

func TestSubmission_UnmarshalJSON_Nested(t *testing.T) {
	t.Parallel()

	var s leads.Submission
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Jane","utm":{ "source": "google" },"tags":["a", "b"]}`), &s))
	assert.Equal(t, leads.Submission{
		"name": "Jane",
		"utm":  `{"source":"google"}`,
		"tags": `["a","b"]`,
	}, s)
}

func TestPayload_KeepsRawBytes(t *testing.T) {
	t.Parallel()

	raw := `{"address": "123 Main Street",  "city":"Denver"}`
	var p leads.Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.JSONEq(t, raw, string(p.Raw))
	assert.Equal(t, raw, string(p.Raw))
	assert.Equal(t, "Denver", p.Fields["city"])
}

func TestSubmission_Clean(t *testing.T) {
	t.Parallel()

	moving, ok := leads.Lookup("moving")
	require.True(t, ok)

	s := leads.Submission{
		"name":   "  Jane \n  Doe ",
		"email":  " Jane.Doe@Example.COM ",
		"reason": "New job.\r\n\r\n\r\nStarting in May.  ",
		"_state": "error",
		"notes":  strings.Repeat("x", 300),
	}

	cleaned := s.Clean(moving)
	assert.Equal(t, "Jane Doe", cleaned["name"])
	assert.Equal(t, "jane.doe@example.com", cleaned["email"])
	assert.Equal(t, "New job.\n\nStarting in May.", cleaned["reason"])
	assert.Len(t, cleaned["notes"], 256)
	assert.NotContains(t, cleaned, "_state")

	assert.Equal(t, "error", s.Control("state"))
	assert.Empty(t, cleaned.Control("state"))
}
