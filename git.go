package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// isGitURL reports whether an argument names a git repository rather than
// a local path. Plain http(s) URLs are ambiguous and treated as web inputs
// unless they end in .git.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@")
}

// expandGitURL shallow-clones a repository into a temporary directory and
// expands its working tree through the directory walker. Row names are the
// paths inside the repository. The returned cleanup removes the clone and
// must run after the inputs have been counted.
func expandGitURL(url string, langData *LoadedLanguageData) ([]Input, func(), error) {
	tempDir, err := os.MkdirTemp("", "metron-git-")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tempDir) }

	fmt.Fprintf(os.Stderr, "Cloning %s...\n", url)
	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           url,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to clone '%s': %w", url, err)
	}

	inputs, err := walkDirectory(tempDir, langData)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	// Strip the temp dir from the names so rows read like repo paths.
	for i := range inputs {
		if rel, relErr := filepath.Rel(tempDir, inputs[i].Name); relErr == nil {
			inputs[i].Name = rel
		}
	}
	return inputs, cleanup, nil
}
