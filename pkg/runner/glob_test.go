package runner

import "testing"

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"quiz.xml", "*.xml", true},
		{"a/b/quiz.xml", "*.xml", true},
		{"a/b/quiz.xml", "a/*.xml", false},
		{"a/quiz.xml", "a/*.xml", true},
		{"build/x/y.xml", "build/**", true},
		{"build", "build/**", true},
		{"rebuild/y.xml", "build/**", false},
		{"a/node_modules/x.html", "**/node_modules", true},
		{"a/b/c.xml", "**", true},
		{"a/b/c.xml", "a/**/c.xml", true},
		{"a/c.xml", "a/**/c.xml", true},
		{"b/c.xml", "a/**/c.xml", false},
		{"a/b.xml", "[", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.path, func(t *testing.T) {
			t.Parallel()
			if got := matchGlob(tt.path, tt.pattern); got != tt.want {
				t.Errorf("matchGlob(%q, %q) = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}
