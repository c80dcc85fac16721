package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIdentity    = errors.New("email does not belong to a recognised domain")
	ErrRestrictedIdentity = errors.New("the administrator account cannot be self-registered")
	ErrNotAuthorized      = errors.New("role does not permit this operation")
	ErrInvalidTransition  = errors.New("event transition not allowed")
	ErrAttendanceClosed   = errors.New("event is not accepting attendance")
	ErrAlreadyAssigned    = errors.New("points already assigned for this event")
)

type RefusalReason string

const (
	RefusalNotCompleted    RefusalReason = "not-completed"
	RefusalAlreadyAssigned RefusalReason = "already-assigned"
	RefusalNotAdmin        RefusalReason = "not-admin"
)

// AssignmentRefusedError reports a failed precondition of points assignment.
// No state is changed when it is returned.
type AssignmentRefusedError struct {
	Reason RefusalReason
}

func (e *AssignmentRefusedError) Error() string {
	return fmt.Sprintf("points assignment refused: %s", e.Reason)
}
