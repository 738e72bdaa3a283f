package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	gitignore "github.com/monochromegane/go-gitignore"
)

// runInteractiveFinder walks the current directory and lets the user
// multi-select the inputs to count. The candidate list respects the hidden
// rule and the root .gitignore so the picker isn't buried in build junk.
// A nil, nil return means the user aborted and the run should exit clean.
func runInteractiveFinder() ([]string, error) {
	root := "."

	var ignoreMatcher gitignore.IgnoreMatcher
	if !noIgnore {
		if matcher, err := gitignore.NewGitIgnore(filepath.Join(root, ".gitignore")); err == nil {
			ignoreMatcher = matcher
		}
	}

	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}
		if !showHidden && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ignoreMatcher != nil && ignoreMatcher.Match(path, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for inputs: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("nothing to select in the current directory")
	}

	idx, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string { return candidates[i] },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select inputs to count. Tab multi-selects, Enter confirms."
			}
			path := candidates[i]
			info, statErr := os.Stat(path)
			if statErr != nil {
				return fmt.Sprintf("Path: %s\nError: %v", path, statErr)
			}
			if info.IsDir() {
				return fmt.Sprintf("Path: %s\nDirectory (expanded to its files)", path)
			}
			return fmt.Sprintf("Path: %s\nSize: %d bytes\nModified: %s",
				path, info.Size(), info.ModTime().Format("2006-01-02 15:04"))
		}),
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return nil, nil
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	selected := make([]string, len(idx))
	for i, index := range idx {
		selected[i] = candidates[index]
	}
	return selected, nil
}
