// Package repo locates the git repository a review runs against.
package repo

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/codereview/internal/tool/service/path"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var ErrNotRepository = errors.New("not a git repository")

// Repository is an opened working tree, remembered together with the
// directory it was opened from.
type Repository struct {
	root string
	dir  string
	repo *gogit.Repository
}

// Open canonicalises dir and opens the repository containing it, searching
// parent directories for .git. dir itself stays the working directory; the
// worktree root is only reported.
func Open(dir string) (*Repository, error) {
	canonical, err := path.CanonicaliseRoot(dir)
	if err != nil {
		return nil, err
	}

	r, err := gogit.PlainOpenWithOptions(canonical, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, canonical)
	}
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", canonical, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no working tree", ErrNotRepository, canonical)
	}

	root, err := path.CanonicaliseRoot(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	return &Repository{root: root, dir: canonical, repo: r}, nil
}

// Root returns the canonical working tree root.
func (r *Repository) Root() string {
	return r.root
}

// Dir returns the canonical directory Open was given. Tools are scoped to it.
func (r *Repository) Dir() string {
	return r.dir
}

// Head returns the short name of the checked-out branch, or "HEAD" when
// detached. A repository with no commits reports its unborn branch.
func (r *Repository) Head() (string, error) {
	ref, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		sym, symErr := r.repo.Storer.Reference(plumbing.HEAD)
		if symErr != nil {
			return "", symErr
		}
		return sym.Target().Short(), nil
	}
	if err != nil {
		return "", err
	}
	if !ref.Name().IsBranch() {
		return "HEAD", nil
	}
	return ref.Name().Short(), nil
}
