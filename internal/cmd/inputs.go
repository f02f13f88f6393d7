package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

var ErrNoInput = errors.New("no input files")

// expandInputs resolves glob patterns, keeping the order of the arguments.
// Files matched by a pattern are sorted; duplicates are dropped.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			add(arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q: %w", arg, ErrNoInput)
		}
		slices.Sort(matches)
		for _, m := range matches {
			add(m)
		}
	}
	if len(files) == 0 {
		return nil, ErrNoInput
	}
	return files, nil
}
