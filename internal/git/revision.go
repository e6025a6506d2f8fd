package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ShortHashLen is the number of hex digits in a short revision.
const ShortHashLen = 7

// ErrNotRepository is returned when no repository contains the directory.
var ErrNotRepository = errors.New("not a git repository")

// Revision describes the commit checked out in a repository.
type Revision struct {
	Hash   string
	Branch string // empty for a detached HEAD
}

// Short returns the abbreviated commit hash.
func (r Revision) Short() string {
	if len(r.Hash) <= ShortHashLen {
		return r.Hash
	}
	return r.Hash[:ShortHashLen]
}

// HeadRevision returns the HEAD commit of the repository containing dir.
// Parent directories are searched for the .git directory.
func HeadRevision(dir string) (Revision, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Revision{}, ErrNotRepository
	}
	if err != nil {
		return Revision{}, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Revision{}, fmt.Errorf("repository has no commits: %w", err)
		}
		return Revision{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	rev := Revision{Hash: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}
	return rev, nil
}
