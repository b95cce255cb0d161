// Package paths turns command-line file arguments into the stable block names stored in METADATA.
package paths

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// CanonicalizePath converts a file path to a root-relative path with forward slashes.
// Symlinks are resolved on both sides when they exist.
func CanonicalizePath(filePath string, root string) (string, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		resolved = abs
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	rootResolved, err := filepath.EvalSymlinks(rootAbs)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		rootResolved = rootAbs
	}

	rel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// NormalizePath rewrites backslashes to forward slashes regardless of host OS, cleans
// the result and drops a leading "./". Block files authored on Windows keep the same name.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean(p), "./")
}

// BlockName returns the name recorded for target. With an empty root the argument is
// only normalized; otherwise it is made relative to root first.
func BlockName(target, root string) (string, error) {
	if root == "" {
		return NormalizePath(target), nil
	}
	rel, err := CanonicalizePath(target, root)
	if err != nil {
		return "", err
	}
	return NormalizePath(rel), nil
}

// Segments splits a normalized name on "/" and drops empty segments.
func Segments(name string) []string {
	parts := strings.Split(name, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsWithinRoot reports whether target resolves inside root.
func IsWithinRoot(target, root string) bool {
	rel, err := CanonicalizePath(target, root)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}
