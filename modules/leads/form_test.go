package leads_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmrmedia/obsidian-landing/handler"
	"github.com/dmrmedia/obsidian-landing/modules/leads"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{"valuation", "realtor", "moving"} {
		f, ok := leads.Lookup(kind)
		require.True(t, ok, kind)
		assert.Equal(t, leads.FormKind(kind), f.Kind)
		assert.True(t, f.Has(leads.ChannelEmail))
	}

	valuation, _ := leads.Lookup("valuation")
	assert.True(t, valuation.Has(leads.ChannelWebhook))
	realtor, _ := leads.Lookup("realtor")
	assert.False(t, realtor.Has(leads.ChannelWebhook))

	_, ok := leads.Lookup("mortgage")
	assert.False(t, ok)
}

func TestForm_Validate(t *testing.T) {
	t.Parallel()

	valuation, _ := leads.Lookup("valuation")
	realtor, _ := leads.Lookup("realtor")

	valid := leads.Submission{
		"address": "123 Main Street",
		"city":    "Denver",
		"zip":     "80202",
		"name":    "Jane",
		"email":   "jane@example.com",
	}

	t.Run("valid without optional phone", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valuation.Validate(valid))
	})

	t.Run("accepts what the browser accepts", func(t *testing.T) {
		t.Parallel()

		moving, _ := leads.Lookup("moving")
		for _, phone := range []string{"303-555-0142 ext 12", "555-0142"} {
			assert.NoError(t, moving.Validate(leads.Submission{
				"name":   "Jane",
				"phone":  phone,
				"email":  "jane@localhost",
				"reason": "New job",
			}), phone)
		}
	})

	t.Run("missing and malformed fields", func(t *testing.T) {
		t.Parallel()

		err := valuation.Validate(leads.Submission{
			"address": "123 Main Street",
			"zip":     "8020",
			"name":    "Jane",
			"email":   "jane@",
			"phone":   "555",
		})
		require.Error(t, err)

		var verr handler.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("city"))
		assert.True(t, verr.Has("zip"))
		assert.True(t, verr.Has("email"))
		assert.False(t, verr.Has("phone"))
		assert.False(t, verr.Has("address"))
		assert.Equal(t, "must be a valid 5-digit ZIP code", verr.Get("zip"))
	})

	t.Run("timeline choices", func(t *testing.T) {
		t.Parallel()

		s := leads.Submission{
			"name":     "Jane",
			"phone":    "(303) 555-1234",
			"email":    "jane@example.com",
			"location": "Arvada",
			"timeline": "1-3-months",
		}
		assert.NoError(t, realtor.Validate(s))

		s["timeline"] = "someday"
		var verr handler.ValidationError
		require.ErrorAs(t, realtor.Validate(s), &verr)
		assert.True(t, verr.Has("timeline"))
	})
}
