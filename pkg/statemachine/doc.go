// Package statemachine implements a small generic finite state machine with
// guards, actions and observers.
//
//	type State string
//	type Event string
//
//	m := statemachine.MustNew[State, Event]("idle",
//		statemachine.WithTransition[State, Event]("idle", "submitting", "submit"),
//		statemachine.WithTransition[State, Event]("submitting", "error", "fail"),
//	)
//	if err := m.Fire(ctx, "submit", nil); err != nil {
//		// errors.Is(err, statemachine.ErrNoTransition)
//	}
//
// Transitions sharing a source state and event are tried in registration
// order and the first one whose guards pass is taken.
package statemachine
