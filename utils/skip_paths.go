package utils

import (
	"path/filepath"
	"strings"
)

// defaultSkipPaths are path segments never considered for repair.
var defaultSkipPaths = []string{
	".git",
	".svn",
	".idea",
	".vscode",
	"vendor",
	"node_modules",
	"testdata",
}

// ShouldSkipPath reports whether any segment of the path matches a default
// or configured skip pattern. Patterns starting with '*' match segment
// suffixes; all other patterns match whole segments, case-insensitively.
func ShouldSkipPath(path string, extraPatterns []string) bool {
	patterns := make([]string, 0, len(defaultSkipPaths)+len(extraPatterns))
	patterns = append(patterns, defaultSkipPaths...)
	patterns = append(patterns, extraPatterns...)

	parts := strings.Split(filepath.ToSlash(path), "/")
	for _, part := range parts {
		part = strings.ToLower(part)
		for _, pattern := range patterns {
			pattern = strings.ToLower(pattern)
			if strings.HasPrefix(pattern, "*") {
				if strings.HasSuffix(part, strings.TrimPrefix(pattern, "*")) {
					return true
				}
			} else if part == pattern {
				return true
			}
		}
	}

	return false
}
