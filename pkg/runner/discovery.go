package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds the documents named by opts. Directories are scanned for
// files with a matching extension; files named directly are always included.
// It returns a sorted, de-duplicated list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	scan := scanner{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			scan.add(absPath)
			continue
		}
		if err := scan.walk(absPath); err != nil {
			return nil, err
		}
	}

	slices.Sort(scan.files)
	return scan.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// scanner accumulates discovered files across path arguments.
type scanner struct {
	ctx        context.Context
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (s *scanner) add(path string) {
	if _, ok := s.seen[path]; ok {
		return
	}
	s.seen[path] = struct{}{}
	s.files = append(s.files, path)
}

func (s *scanner) rel(path string) string {
	relPath, err := filepath.Rel(s.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk scans root. Unless opts.Recursive is set only root's own files are
// considered. Hidden files and directories are skipped.
func (s *scanner) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := s.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			switch {
			case path == root:
				return nil
			case !s.opts.Recursive, hidden, matchesAny(s.rel(path), s.opts.ExcludeGlobs):
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			followed, err := s.followSymlink(path)
			if followed || err != nil {
				return err
			}
		}

		if s.matches(path) {
			s.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// followSymlink handles a symlink met during a walk. It returns true when the
// link pointed at a directory, which is walked through its target when
// symlink following and recursion are both enabled. Broken links are skipped.
func (s *scanner) followSymlink(path string) (bool, error) {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return true, nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(realPath)
	if err != nil {
		return true, nil //nolint:nilerr // Inaccessible targets are skipped.
	}
	if !info.IsDir() {
		return false, nil
	}
	if !s.opts.FollowSymlinks || !s.opts.Recursive {
		return true, nil
	}
	// WalkDir does not follow a symlinked root, so walk the target.
	return true, s.walk(realPath)
}

// matches checks a scanned file against extensions and glob filters.
func (s *scanner) matches(path string) bool {
	if !hasMatchingExtension(path, s.extensions) {
		return false
	}
	relPath := s.rel(path)
	if matchesAny(relPath, s.opts.ExcludeGlobs) {
		return false
	}
	return len(s.opts.IncludeGlobs) == 0 || matchesAny(relPath, s.opts.IncludeGlobs)
}

func hasMatchingExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated path against a glob pattern.
// Patterns without a slash also match the base name; "**" matches any
// number of path segments ("build/**", "**/vendor", "a/**/*.xml").
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStar(strings.Split(path, "/"), strings.Split(pattern, "/"))
	}

	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}
	if strings.Contains(pattern, "/") {
		return false
	}
	matched, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && matched
}

// matchDoubleStar matches path segments against pattern segments, where a
// "**" segment consumes zero or more path segments. A pattern that matches a
// directory prefix also matches everything below it.
func matchDoubleStar(path, pattern []string) bool {
	if len(pattern) == 0 {
		return true
	}
	if pattern[0] == "**" {
		for skip := 0; skip <= len(path); skip++ {
			if matchDoubleStar(path[skip:], pattern[1:]) {
				return true
			}
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	matched, err := filepath.Match(pattern[0], path[0])
	if err != nil || !matched {
		return false
	}
	return matchDoubleStar(path[1:], pattern[1:])
}
