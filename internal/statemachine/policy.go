package statemachine

import (
	"errors"

	"github.com/looplab/fsm"
)

// ErrTransitionDenied is returned when a TransitionPolicy rejects a move.
var ErrTransitionDenied = errors.New("transition not allowed by policy")

// TransitionPolicy decides whether a status change is legal. It must be a
// pure lookup.
type TransitionPolicy interface {
	Allowed(from, to string) bool
}

// TransitionPolicyFunc adapts a function to TransitionPolicy.
type TransitionPolicyFunc func(from, to string) bool

func (f TransitionPolicyFunc) Allowed(from, to string) bool {
	return f(from, to)
}

// AllowAll permits every transition, including reverting finished projects.
var AllowAll TransitionPolicy = TransitionPolicyFunc(func(_, _ string) bool { return true })

// Forbid builds a policy that rejects the listed from->to pairs and allows
// everything else.
func Forbid(pairs ...[2]string) TransitionPolicy {
	denied := make(map[[2]string]bool, len(pairs))
	for _, p := range pairs {
		denied[p] = true
	}
	return TransitionPolicyFunc(func(from, to string) bool {
		return !denied[[2]string{from, to}]
	})
}

// isNoTransition reports whether err only says the state did not change.
func isNoTransition(err error) bool {
	var nt fsm.NoTransitionError
	return errors.As(err, &nt)
}
