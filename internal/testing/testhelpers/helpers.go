// Package testhelpers provides shared fixtures for package tests.
package testhelpers

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/Cyclone1070/codereview/internal/provider"
	"github.com/Cyclone1070/codereview/internal/tool"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RequireGit skips the test when no git binary is on PATH.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not found on PATH")
	}
}

// NewRepo creates a repository in a temporary directory with the given files
// committed, and returns its canonical root.
func NewRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}

	repo, err := gogit.PlainInit(root, false)
	if err != nil {
		t.Fatalf("initialising repository: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("opening worktree: %v", err)
	}

	for name, body := range files {
		WriteFile(t, root, name, body)
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("staging %s: %v", name, err)
		}
	}

	if len(files) > 0 {
		_, err = wt.Commit("initial", &gogit.CommitOptions{
			Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Unix(0, 0)},
		})
		if err != nil {
			t.Fatalf("committing: %v", err)
		}
	}
	return root
}

// WriteFile writes body to root/name, creating parent directories.
func WriteFile(t *testing.T, root, name, body string) {
	t.Helper()
	full := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("creating dirs for %s: %v", name, err)
	}
	if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// ScriptedProvider replays canned responses in order and records every request.
type ScriptedProvider struct {
	Responses []*provider.Message
	Err       error

	Calls [][]provider.Message
}

// Generate returns the next scripted response.
func (p *ScriptedProvider) Generate(ctx context.Context, messages []provider.Message, tools []tool.Declaration) (*provider.Message, error) {
	p.Calls = append(p.Calls, append([]provider.Message(nil), messages...))
	if p.Err != nil {
		return nil, p.Err
	}
	if len(p.Responses) == 0 {
		return &provider.Message{Role: provider.RoleAssistant}, nil
	}
	resp := p.Responses[0]
	p.Responses = p.Responses[1:]
	return resp, nil
}
