package git

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/codereview/internal/tool"
)

// pathResolver maps a user path to one relative to the working directory.
type pathResolver interface {
	Rel(path string) (string, error)
}

// StatusRequest takes no arguments.
type StatusRequest struct{}

func (StatusRequest) String() string { return "git status" }

// StatusTool reports `git status` for the working directory.
type StatusTool struct {
	runner *Runner
}

func NewStatusTool(runner *Runner) *StatusTool {
	return &StatusTool{runner: runner}
}

func (t *StatusTool) Name() string { return "git_status" }

func (t *StatusTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        t.Name(),
		Description: "Get the current git status of the repository",
		Parameters: &tool.Schema{
			Type:       tool.TypeObject,
			Properties: map[string]*tool.Schema{},
		},
	}
}

func (t *StatusTool) Input() any { return &StatusRequest{} }

func (t *StatusTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	if _, ok := input.(*StatusRequest); !ok {
		return tool.Result{}, fmt.Errorf("git_status: unexpected input %T", input)
	}
	res := t.runner.Run(ctx, []string{"status"})
	return res, ctx.Err()
}

// DiffRequest narrows `git diff`. The zero value shows unstaged changes for
// the whole working directory.
type DiffRequest struct {
	Staged bool   `json:"staged"`
	Path   string `json:"path"`
}

func (r DiffRequest) String() string {
	s := "git diff"
	if r.Staged {
		s += " --cached"
	}
	if r.Path != "" {
		s += " -- " + r.Path
	}
	return s
}

// DiffTool shows changes in the working directory.
type DiffTool struct {
	runner   *Runner
	resolver pathResolver
}

func NewDiffTool(runner *Runner, resolver pathResolver) *DiffTool {
	return &DiffTool{runner: runner, resolver: resolver}
}

func (t *DiffTool) Name() string { return "git_diff" }

func (t *DiffTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        t.Name(),
		Description: "Show changes in the working directory",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"staged": {
					Type:        tool.TypeBoolean,
					Description: "Show staged changes (git diff --cached) instead of unstaged ones",
				},
				"path": {
					Type:        tool.TypeString,
					Description: "Limit the diff to this file or directory, relative to the repository root",
				},
			},
		},
	}
}

func (t *DiffTool) Input() any { return &DiffRequest{} }

func (t *DiffTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*DiffRequest)
	if !ok {
		return tool.Result{}, fmt.Errorf("git_diff: unexpected input %T", input)
	}

	args := []string{"diff"}
	if req.Staged {
		args = append(args, "--cached")
	}
	if req.Path != "" {
		rel, err := t.resolver.Rel(req.Path)
		if err != nil {
			return tool.Err(fmt.Sprintf("%v: %s", err, req.Path)), nil
		}
		if rel == "" {
			rel = "."
		}
		args = append(args, "--", rel)
	}

	res := t.runner.Run(ctx, args)
	return res, ctx.Err()
}
