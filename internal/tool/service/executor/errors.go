package executor

import (
	"errors"
	"fmt"
)

// CommandError is returned when a command cannot be started or its exit
// status cannot be determined.
type CommandError struct {
	Cmd   string
	Cause error
	Stage string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timeout")
