// Package fileutil expands command-line path arguments into a flat list of
// scannable files. Traversal failures are collected per entry and never abort
// the rest of the expansion.
package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WalkError records a traversal failure for one filesystem entry. It is
// recovered: the expansion continues with the remaining entries.
type WalkError struct {
	Path string
	Err  error
}

// Error implements the error interface for WalkError.
func (e *WalkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *WalkError) Unwrap() error {
	return e.Err
}

// ExpandResult contains the flattened file list and any per-entry errors
// encountered while expanding.
type ExpandResult struct {
	// Files are the paths to scan, in argument order with directory contents
	// sorted for deterministic queueing.
	Files []string
	// Errors holds one *WalkError per unreadable or rejected entry.
	Errors []error
}

// Expand flattens path arguments into scannable files. The "-" sentinel
// passes through untouched. Directories are expanded only when recursive is
// set; otherwise the entry is rejected with a WalkError. Hidden directories
// are skipped during recursion.
func Expand(paths []string, recursive bool) *ExpandResult {
	result := &ExpandResult{}

	for _, p := range paths {
		if p == "-" {
			result.Files = append(result.Files, p)
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			result.Errors = append(result.Errors, &WalkError{Path: p, Err: err})
			continue
		}

		if !info.IsDir() {
			result.Files = append(result.Files, p)
			continue
		}

		if !recursive {
			result.Errors = append(result.Errors, &WalkError{
				Path: p,
				Err:  fmt.Errorf("is a directory (use -r to search recursively)"),
			})
			continue
		}

		result.Files = append(result.Files, walkTree(p, &result.Errors)...)
	}

	return result
}

// walkTree collects regular files under root, recording per-entry errors and
// continuing past them.
func walkTree(root string, errs *[]error) []string {
	var files []string

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			*errs = append(*errs, &WalkError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks and other non-regular entries are not scannable.
		if !d.Type().IsRegular() {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		*errs = append(*errs, &WalkError{Path: root, Err: walkErr})
	}

	// Sort directory contents for consistent queue order.
	sort.Strings(files)
	return files
}
