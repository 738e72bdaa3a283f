package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// fileInput wraps a path as an openable input. The file is only opened
// when the run reaches it, so a path that disappears between expansion and
// counting still surfaces as an ordinary open failure.
func fileInput(path string) Input {
	return Input{
		Name: path,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// stdinInput is the unnamed singleton used when a run has no arguments.
func stdinInput() Input {
	return Input{
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(os.Stdin), nil
		},
	}
}

// expandLocalPath turns one positional argument into concrete inputs: a
// file becomes a single input, a directory becomes one input per file that
// survives the walk filters. Explicitly named files are always counted;
// the filters only prune directory walks.
func expandLocalPath(path string, langData *LoadedLanguageData) ([]Input, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []Input{fileInput(path)}, nil
	}
	return walkDirectory(path, langData)
}

// parsePatterns splits a comma-separated string of glob patterns.
func parsePatterns(patterns string) []string {
	if patterns == "" {
		return nil
	}
	return strings.Split(patterns, ",")
}

// matchesAnyPattern reports whether name matches any of the glob patterns.
func matchesAnyPattern(name string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid glob pattern '%s': %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// walkDirectory expands a directory argument into file inputs, honoring
// .gitignore, the hidden-file rule, include/exclude patterns, the language
// filter and the depth and size limits. Per-entry problems are warnings;
// only a broken walk itself is an error.
func walkDirectory(root string, langData *LoadedLanguageData) ([]Input, error) {
	var inputs []Input
	var ignoreMatcher gitignore.IgnoreMatcher

	parsedIncludes := parsePatterns(includePatterns)
	parsedExcludes := parsePatterns(excludePatterns)
	hasExplicitIncludes := len(parsedIncludes) > 0

	if !noIgnore {
		gitIgnorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not parse %s: %v\n", gitIgnorePath, err)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error accessing path %s: %v\n", path, err)
			return nil
		}
		if path == root {
			return nil
		}

		baseName := d.Name()
		isDir := d.IsDir()

		if !showHidden && isHidden(baseName) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		if ignoreMatcher != nil && ignoreMatcher.Match(relPath, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if maxDepth > 0 && countPathSeparators(relPath) >= maxDepth {
			if isDir {
				return fs.SkipDir
			}
		}

		excluded, err := matchesAnyPattern(baseName, parsedExcludes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		if excluded {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}
		if isDir {
			// Directories only face the exclude filter; includes and the
			// language filter apply to the files inside them.
			return nil
		}

		keep := false
		switch {
		case hasExplicitIncludes:
			included, err := matchesAnyPattern(baseName, parsedIncludes)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
			keep = included
		case langData != nil:
			_, keep = langData.LanguageFor(path)
		default:
			keep = true
		}
		if !keep {
			return nil
		}

		if maxSizeBytes > 0 {
			info, err := d.Info()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not stat %s: %v\n", path, err)
				return nil
			}
			if info.Size() > maxSizeBytes {
				return nil
			}
		}

		inputs = append(inputs, fileInput(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	return inputs, nil
}

// isHidden reports whether a base name is a dotfile. "." and ".." are not
// hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	base := filepath.Base(name)
	return len(base) > 0 && base[0] == '.'
}

// countPathSeparators counts the separators in a relative path, which is
// the entry's depth below the walk root.
func countPathSeparators(path string) int {
	path = filepath.ToSlash(path)
	if path == "." || path == "" {
		return 0
	}
	return strings.Count(strings.Trim(path, "/"), "/")
}
