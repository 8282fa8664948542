package bet

import "fmt"

// InvalidParameterError reports a bet parameter that failed validation.
// Field carries the flag-style name of the offending parameter.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

func invalidParam(field, format string, args ...interface{}) error {
	return &InvalidParameterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
