package leads

import (
	"context"
	"log/slog"

	"github.com/dmrmedia/obsidian-landing/pkg/logger"
	"github.com/dmrmedia/obsidian-landing/pkg/statemachine"
)

// FormState is the UI state of a lead form.
type FormState uint8

const (
	FormIdle FormState = iota
	FormSubmitting
	FormError
	// FormSucceeded is never rendered; the visitor navigates away.
	FormSucceeded
)

func (s FormState) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormSubmitting:
		return "submitting"
	case FormError:
		return "error"
	case FormSucceeded:
		return "succeeded"
	}
	return "unknown"
}

// ParseFormState reads the state a form was rendered in. Only states a
// visitor can submit from are accepted; anything else is FormIdle.
func ParseFormState(s string) FormState {
	if s == FormError.String() {
		return FormError
	}
	return FormIdle
}

// FormEvent drives FormState transitions.
type FormEvent string

const (
	EventSubmit  FormEvent = "submit"
	EventFail    FormEvent = "fail"
	EventSucceed FormEvent = "succeed"
)

// FormMachine tracks a single submission attempt.
type FormMachine = statemachine.Machine[FormState, FormEvent]

// NewFormMachine returns a machine starting in initial:
//
//	idle --submit--> submitting
//	error --submit--> submitting
//	submitting --fail--> error
//	submitting --succeed--> succeeded
func NewFormMachine(initial FormState, log *slog.Logger) *FormMachine {
	if log == nil {
		log = logger.Discard()
	}
	return statemachine.MustNew(initial,
		statemachine.WithTransition[FormState, FormEvent](FormIdle, FormSubmitting, EventSubmit),
		statemachine.WithTransition[FormState, FormEvent](FormError, FormSubmitting, EventSubmit),
		statemachine.WithTransition[FormState, FormEvent](FormSubmitting, FormError, EventFail),
		statemachine.WithTransition[FormState, FormEvent](FormSubmitting, FormSucceeded, EventSucceed),
		statemachine.WithObserver(func(from, to FormState, event FormEvent) {
			log.LogAttrs(context.Background(), slog.LevelDebug, "form state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
				logger.Event(string(event)),
			)
		}),
	)
}
