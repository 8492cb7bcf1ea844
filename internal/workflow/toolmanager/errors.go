package toolmanager

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateTool = errors.New("tool already registered")
	ErrEmptyToolName = errors.New("tool name is empty")
)

// RegistrationError names the tool a registration failed for.
type RegistrationError struct {
	Name  string
	Cause error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registering tool %q: %v", e.Name, e.Cause)
}
func (e *RegistrationError) Unwrap() error { return e.Cause }
