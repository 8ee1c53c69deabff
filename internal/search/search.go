// Package search finds files by name under a directory tree.
package search

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrBadPattern indicates the query produced an invalid glob.
var ErrBadPattern = errors.New("invalid search pattern")

// Patterns builds one glob per extension of the form *<query>*.<ext>.
// Extensions are trimmed and blanks are dropped.
func Patterns(query string, exts []string) ([]string, error) {
	patterns := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		p := "*" + literalBackslash(query) + "*." + ext
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// literalBackslash escapes backslashes so they match themselves, as in
// shell-style fnmatch. On Windows the backslash is the path separator and
// filepath.Match never treats it as an escape.
func literalBackslash(s string) string {
	if filepath.Separator == '\\' {
		return s
	}
	return strings.ReplaceAll(s, `\`, `\\`)
}

// Find walks root top-down and returns files whose base name matches
// *<query>*.<ext> for any of exts. Within each directory, results are
// grouped by extension in the order given, then by name. Matching is
// case-sensitive.
//
// A root that does not exist or is not a directory yields no files.
// Unreadable subdirectories are skipped. A symlinked root is followed;
// symlinked directories below it are not.
func Find(ctx context.Context, root, query string, exts []string) ([]string, error) {
	patterns, err := Patterns(query, exts)
	if err != nil {
		return nil, err
	}

	files := []string{}
	if len(patterns) == 0 {
		return files, nil
	}

	// WalkDir does not follow a symlinked root, so walk its target and
	// report paths under the name the caller gave.
	walkRoot := root
	if info, err := os.Lstat(root); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			walkRoot = resolved
		}
	}

	err = filepath.WalkDir(walkRoot, func(walked string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil || !d.IsDir() {
			return nil
		}

		path := walked
		if walkRoot != root {
			rel, err := filepath.Rel(walkRoot, walked)
			if err != nil {
				return nil
			}
			path = filepath.Join(root, rel)
		}

		names, err := fileNames(walked)
		if err != nil {
			return nil
		}
		for _, p := range patterns {
			for _, name := range names {
				// Patterns were validated above, so Match cannot fail here.
				if ok, _ := filepath.Match(p, name); ok {
					files = append(files, filepath.Join(path, name))
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// fileNames returns the sorted names of the non-directory entries of dir.
func fileNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, e.Name())); err == nil && info.IsDir() {
				continue
			}
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// SplitExtensions parses a comma-separated extension list such as
// "pdf, txt,png".
func SplitExtensions(s string) []string {
	parts := strings.Split(s, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			exts = append(exts, p)
		}
	}
	return exts
}
