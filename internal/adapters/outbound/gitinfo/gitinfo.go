// Package gitinfo resolves version-control metadata for scanned trees.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Resolver implements domain.GitInfo using go-git.
type Resolver struct{}

func New() *Resolver {
	return &Resolver{}
}

func (r *Resolver) IsGitRepo(root string) bool {
	_, err := git.PlainOpen(root)
	return err == nil
}

// CommitHash returns the HEAD commit hash of the repository at root.
func (r *Resolver) CommitHash(root string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
