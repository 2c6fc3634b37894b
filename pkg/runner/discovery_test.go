package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomlcheck/pkg/runner"
)

// tree creates files (slash-separated, relative to dir) with fixed content.
func tree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("<p></p>"), 0o644))
	}
}

func abs(dir string, files ...string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.Join(dir, filepath.FromSlash(f))
	}
	return out
}

func TestDiscover_SingleFileIgnoresExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "export.txt")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"export.txt"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "export.txt"), files)
}

func TestDiscover_DirectoryIsShallowByDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "index.html", "quiz.xml", "notes.txt", "sub/page.htm", "sub/deep/q.xml")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "index.html", "quiz.xml"), files)
}

func TestDiscover_Recursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "index.html", "sub/page.htm", "sub/deep/q.xml", "sub/readme.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Recursive:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "index.html", "sub/deep/q.xml", "sub/page.htm"), files)
}

func TestDiscover_ExtensionFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "a.html", "b.XML", "c.xml", "d.xhtml")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".xml"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "b.XML", "c.xml"), files, "extension match is case-insensitive")
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir,
		"keep.xml",
		"build/out.xml",
		"a/vendor/lib.xml",
		"a/b/draft-1.xml",
		"a/b/final.xml",
	)

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "directory prefix",
			exclude: []string{"build/**"},
			want:    []string{"a/b/draft-1.xml", "a/b/final.xml", "a/vendor/lib.xml", "keep.xml"},
		},
		{
			name:    "directory anywhere",
			exclude: []string{"**/vendor"},
			want:    []string{"a/b/draft-1.xml", "a/b/final.xml", "build/out.xml", "keep.xml"},
		},
		{
			name:    "base name",
			exclude: []string{"draft-*.xml"},
			want:    []string{"a/b/final.xml", "a/vendor/lib.xml", "build/out.xml", "keep.xml"},
		},
		{
			name:    "include",
			include: []string{"a/**/*.xml"},
			exclude: []string{"**/vendor/**"},
			want:    []string{"a/b/draft-1.xml", "a/b/final.xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				Recursive:    true,
				IncludeGlobs: tt.include,
				ExcludeGlobs: tt.exclude,
			})
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tt.want...), files)
		})
	}
}

func TestDiscover_HiddenFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "visible.xml", ".hidden.xml", ".cache/x.xml")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "visible.xml"), files)
}

func TestDiscover_DeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "z.xml", "a.xml")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"z.xml", ".", filepath.Join(dir, "a.xml")},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "a.xml", "z.xml"), files)
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing.xml"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "real/doc.xml")

	external := t.TempDir()
	tree(t, external, "external.xml")

	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	opts := runner.Options{WorkingDir: dir, Recursive: true}

	files, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "real/doc.xml"), files)

	opts.FollowSymlinks = true
	files, err = runner.Discover(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(dir, "real", "doc.xml"))

	resolved, err := filepath.EvalSymlinks(external)
	require.NoError(t, err)
	assert.Contains(t, files, filepath.Join(resolved, "external.xml"))
}

func TestDiscover_FileSymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "real.xml")
	if err := os.Symlink(filepath.Join(dir, "real.xml"), filepath.Join(dir, "link.xml")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "gone.xml"), filepath.Join(dir, "broken.xml")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "link.xml", "real.xml"), files)
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.ElementsMatch(t, []string{".html", ".htm", ".xhtml", ".xml"}, runner.DefaultExtensions())
}
