package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/Cyclone1070/codereview/internal/config"
)

// Command describes one subprocess invocation.
type Command struct {
	Args []string // Args[0] is the program
	Dir  string
	Env  []string // nil inherits the parent environment

	// Timeout bounds the run. Zero means no timeout beyond ctx.
	Timeout time.Duration
}

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// Executor runs commands using os/exec.
type Executor struct {
	config *config.Config
}

// New creates a new Executor with injected config.
func New(cfg *config.Config) *Executor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &Executor{config: cfg}
}

// Run starts the command, collects its output, and waits for it to exit.
//
// A non-zero exit returns the populated Result together with the *exec.ExitError.
// When Timeout elapses or ctx is cancelled the process is interrupted, then
// killed after the configured grace period. Timeout expiry returns ErrTimeout;
// cancellation returns ctx.Err(). Output gathered before shutdown is kept.
func (e *Executor) Run(ctx context.Context, c Command) (*Result, error) {
	if len(c.Args) == 0 {
		return nil, os.ErrInvalid
	}

	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	maxBytes := int(e.config.Tools.MaxCommandOutputSize)
	stdout := newCollector(maxBytes)
	stderr := newCollector(maxBytes)

	cmd := exec.CommandContext(runCtx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	// After the interrupt, Wait kills the process and closes the pipes once this elapses.
	cmd.WaitDelay = time.Duration(e.config.Tools.GracefulShutdownMs) * time.Millisecond

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: c.Args[0], Cause: err, Stage: "start"}
	}

	execErr := cmd.Wait()
	if errors.Is(execErr, exec.ErrWaitDelay) {
		// Clean exit; a descendant held the pipes open past the grace period.
		execErr = nil
	}

	res := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  getExitCode(execErr),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}

	switch {
	case ctx.Err() != nil:
		res.ExitCode = -1
		return res, ctx.Err()
	case runCtx.Err() != nil:
		res.ExitCode = -1
		return res, ErrTimeout
	case execErr != nil && res.ExitCode == -1:
		return res, &CommandError{Cmd: c.Args[0], Cause: execErr, Stage: "wait"}
	}
	return res, execErr
}

func getExitCode(err error) int {
	if err == nil {
		return 0
	}
	type exitCoder interface {
		ExitCode() int
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return -1
}
