package leads_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmrmedia/obsidian-landing/modules/leads"
	"github.com/dmrmedia/obsidian-landing/pkg/statemachine"
)

func TestFormMachine(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("submit then fail then retry", func(t *testing.T) {
		t.Parallel()

		m := leads.NewFormMachine(leads.FormIdle, nil)
		require.NoError(t, m.Fire(ctx, leads.EventSubmit, nil))
		assert.Equal(t, leads.FormSubmitting, m.Current())

		require.NoError(t, m.Fire(ctx, leads.EventFail, nil))
		assert.Equal(t, leads.FormError, m.Current())

		require.NoError(t, m.Fire(ctx, leads.EventSubmit, nil))
		require.NoError(t, m.Fire(ctx, leads.EventSucceed, nil))
		assert.Equal(t, leads.FormSucceeded, m.Current())
	})

	t.Run("illegal transitions", func(t *testing.T) {
		t.Parallel()

		m := leads.NewFormMachine(leads.FormIdle, nil)
		assert.ErrorIs(t, m.Fire(ctx, leads.EventSucceed, nil), statemachine.ErrNoTransition)
		assert.ErrorIs(t, m.Fire(ctx, leads.EventFail, nil), statemachine.ErrNoTransition)

		require.NoError(t, m.Fire(ctx, leads.EventSubmit, nil))
		assert.ErrorIs(t, m.Fire(ctx, leads.EventSubmit, nil), statemachine.ErrNoTransition)
		assert.Equal(t, leads.FormSubmitting, m.Current())
	})
}

func TestParseFormState(t *testing.T) {
	t.Parallel()

	assert.Equal(t, leads.FormError, leads.ParseFormState("error"))
	assert.Equal(t, leads.FormIdle, leads.ParseFormState("idle"))
	assert.Equal(t, leads.FormIdle, leads.ParseFormState("submitting"))
	assert.Equal(t, leads.FormIdle, leads.ParseFormState(""))
	assert.Equal(t, "succeeded", leads.FormSucceeded.String())
}
