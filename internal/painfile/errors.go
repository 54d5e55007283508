package painfile

import "fmt"

// BadTemplateError is raised when the skeleton fails the sanity check of
// §4.5 step 1, or is otherwise structurally unusable as a prototype source.
type BadTemplateError struct {
	Reason string
}

func (e *BadTemplateError) Error() string {
	return fmt.Sprintf("painfile: bad template: %s", e.Reason)
}

// UnknownParticipantError is raised when a payer or payee in the matrix has
// no entry in the DfspDirectory (§4.5 step 2).
type UnknownParticipantError struct {
	ParticipantID int64
}

func (e *UnknownParticipantError) Error() string {
	return fmt.Sprintf("painfile: unknown participant: %d", e.ParticipantID)
}
