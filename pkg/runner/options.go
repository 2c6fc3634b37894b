// Package runner checks many documents concurrently: it discovers files,
// validates each one and aggregates per-directory and global statistics.
package runner

import "github.com/yaklabco/gomlcheck/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) scanned
	// inside directories. Files named explicitly in Paths are always checked.
	// Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict directory scans to matching paths, relative to
	// WorkingDir. Empty means every file with a scanned extension.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories.
	ExcludeGlobs []string

	// Recursive descends into subdirectories. Without it only the files
	// directly inside each directory argument are scanned.
	Recursive bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig builds run options for paths from a resolved config.
func OptionsFromConfig(cfg *config.Config, paths []string, workDir string) Options {
	return Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Extensions:     cfg.ScanExtensions(),
		ExcludeGlobs:   cfg.Ignore,
		Recursive:      cfg.IsRecursive(),
		FollowSymlinks: cfg.IsFollowSymlinks(),
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}
}

// DefaultExtensions returns every HTML and XML extension scanned by default.
func DefaultExtensions() []string {
	return append(config.DefaultHTMLExtensions(), config.DefaultXMLExtensions()...)
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
