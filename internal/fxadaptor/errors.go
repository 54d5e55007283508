package fxadaptor

import "fmt"

// InvalidInputError is the single error kind the FX-provider adaptor raises
// (§7 InvalidInput), carrying the offending field name and a human reason.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("fxadaptor: invalid input field %q: %s", e.Field, e.Reason)
}
