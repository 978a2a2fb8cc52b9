package model

import "fmt"

// MissingColumnError reports a required input column that is absent.
// This is the only fatal error class: without the required columns the run
// cannot produce meaningful output and aborts immediately.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("input is missing required column %q", e.Column)
}
