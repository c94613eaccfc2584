package validator_test

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmrmedia/obsidian-landing/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(
			validator.Required("name", "Jane"),
			validator.ValidEmail("email", "jane@example.com"),
		))
	})

	t.Run("collects failures in order", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "  "),
			validator.ValidEmail("email", "nope"),
			validator.MaxLen("email", "nope", 2),
		)
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))
		assert.ErrorIs(t, err, validator.ErrValidationFailed)

		errs := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{"name", "email"}, errs.Fields())
		assert.True(t, errs.Has("email"))
		assert.Len(t, errs.Get("email"), 2)
		assert.Equal(t, map[string][]string{
			"name":  {"field is required"},
			"email": {"must be a valid email address", "must be at most 2 characters long"},
		}, errs.Map())
		assert.Contains(t, err.Error(), "name: field is required")
	})

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("submit: %w", validator.Apply(validator.Required("x", "")))
		assert.NotNil(t, validator.ExtractValidationErrors(err))
		assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}

func TestOptionalAndWhen(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.Optional("", validator.ValidEmail("email", ""))))
	assert.Error(t, validator.Apply(validator.Optional("abc", validator.ValidEmail("email", "abc"))))

	rules := validator.When(false, validator.Required("a", ""))
	assert.NoError(t, validator.Apply(rules...))
	rules = validator.When(true, validator.Required("a", ""))
	assert.Error(t, validator.Apply(rules...))
}

func TestLengthCountsRunes(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.MaxLen("name", "Zoë", 3)))
	assert.Error(t, validator.Apply(validator.MinLen("name", "Zoë", 4)))
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"jane@example.com", "a.b+tag@sub.example.co", "jane@localhost", "o'neil@example-mail.com"}
	invalid := []string{"", "jane", "jane@", "@example.com", "jane@example..com", "jane@-example.com", "Jane <jane@example.com>"}

	for _, v := range valid {
		assert.NoError(t, validator.Apply(validator.ValidEmail("email", v)), v)
	}
	for _, v := range invalid {
		assert.Error(t, validator.Apply(validator.ValidEmail("email", v)), v)
	}
}

func TestInListAndMatches(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.InList("timeline", "0-3 months", []string{"0-3 months", "3-6 months"})))
	assert.Error(t, validator.Apply(validator.InList("timeline", "someday", []string{"0-3 months"})))

	zip := regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	assert.NoError(t, validator.Apply(validator.Matches("zip", "80202", zip, "ZIP code")))
	err := validator.Apply(validator.Matches("zip", "8020", zip, "ZIP code"))
	require.Error(t, err)
	assert.Equal(t, []string{"must be a valid ZIP code"}, validator.ExtractValidationErrors(err).Get("zip"))
}
