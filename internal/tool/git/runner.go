// Package git runs git subcommands inside a fixed working directory and
// exposes the read-only ones as tools.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Cyclone1070/codereview/internal/config"
	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/Cyclone1070/codereview/internal/tool/service/executor"
	"github.com/chainguard-dev/clog"
)

// commandRunner executes a subprocess.
type commandRunner interface {
	Run(ctx context.Context, c executor.Command) (*executor.Result, error)
}

// Runner invokes git with caller-supplied arguments in the working directory.
// It never returns a Go error: every failure becomes an Err result.
//
// The working directory is not locked. Running concurrently with an external
// process that mutates the same repository gives undefined results.
type Runner struct {
	exec   commandRunner
	config *config.Config
	dir    string
	env    []string
}

// NewRunner creates a Runner bound to dir, which should be canonical.
func NewRunner(exec commandRunner, cfg *config.Config, dir string) *Runner {
	env := append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"GIT_PAGER=cat",
		"GIT_OPTIONAL_LOCKS=0",
	)
	return &Runner{
		exec:   exec,
		config: cfg,
		dir:    dir,
		env:    env,
	}
}

// Dir returns the working directory git runs in.
func (r *Runner) Dir() string {
	return r.dir
}

// Run executes `git <args...>`. Exit status 0 yields Ok with stdout exactly
// as captured; any other outcome yields Err with a diagnostic.
func (r *Runner) Run(ctx context.Context, args []string) tool.Result {
	timeout := time.Duration(r.config.Tools.GitCommandTimeoutSeconds) * time.Second
	display := "git " + strings.Join(args, " ")
	log := clog.FromContext(ctx).With("command", display)

	res, err := r.exec.Run(ctx, executor.Command{
		Args:    append([]string{r.config.Tools.GitBinary}, args...),
		Dir:     r.dir,
		Env:     r.env,
		Timeout: timeout,
	})

	switch {
	case errors.Is(err, executor.ErrTimeout):
		log.Warnf("git command timed out after %s", timeout)
		return tool.Err(fmt.Sprintf("%s: command timed out after %s", display, timeout))
	case ctx.Err() != nil:
		return tool.Err(fmt.Sprintf("%s: %v", display, ctx.Err()))
	case res == nil:
		log.With("error", err).Warn("git command could not start")
		return tool.Err(fmt.Sprintf("%s: %v", display, err))
	}

	if res.ExitCode != 0 {
		log.With("exit_code", res.ExitCode).Debug("git command failed")
		stderr := res.Stderr
		if strings.TrimSpace(stderr) == "" {
			stderr = fmt.Sprintf("%s: exit status %d", display, res.ExitCode)
		}
		return tool.Err(stderr)
	}

	log.With("bytes", len(res.Stdout)).Debug("git command succeeded")
	if res.Truncated && int64(len(res.Stdout)) >= r.config.Tools.MaxCommandOutputSize {
		return tool.Ok(res.Stdout + fmt.Sprintf("\n[output truncated at %d bytes]", r.config.Tools.MaxCommandOutputSize))
	}
	return tool.Ok(res.Stdout)
}
