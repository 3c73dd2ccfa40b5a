// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saga

import (
	"fmt"

	"github.com/pdiddy/research-projects/pkg/types"
)

// Op names a saga flow.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
)

// State is a step of the saga state machine.
type State string

const (
	StateIdle                 State = "idle"
	StateCreatingBase         State = "creating_base"
	StateUpdatingBase         State = "updating_base"
	StateJoining              State = "joining"
	StateCommitted            State = "committed"
	StateCompensatingRollback State = "compensating_rollback"
	StateFailed               State = "failed"
)

// Outcome is the result of a committed saga run.
type Outcome struct {
	State     State
	ProjectID string

	// Project is the updated base project; set on the update path only.
	Project *types.Project

	// Typed is nil when an update carried no typed values.
	Typed *types.TypedRecord

	Attachments []types.Attachment
}

// Error is the result of a failed saga run. Unwrap yields the error that
// triggered the failure; a failed compensation is kept alongside it and
// never replaces it.
type Error struct {
	Op        Op
	ProjectID string

	// Message is the user-facing text emitted for this outcome.
	Message string

	// Cause is the original failure.
	Cause error

	// Compensated reports whether a compensating action was attempted.
	Compensated bool

	// CompensationErr is the failure of the compensating action, if any.
	CompensationErr error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s project: %v", e.Op, e.Cause)
	if e.CompensationErr != nil {
		msg += fmt.Sprintf(" (rollback failed: %v)", e.CompensationErr)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// RolledBack reports whether compensation ran and succeeded.
func (e *Error) RolledBack() bool {
	return e.Compensated && e.CompensationErr == nil
}
