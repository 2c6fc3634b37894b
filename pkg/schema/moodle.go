package schema

import (
	"fmt"

	"github.com/yaklabco/gomlcheck/pkg/markup"
)

const (
	moodleRoot     = "quiz"
	moodleQuestion = "question"
	moodleType     = "multichoice"
)

//nolint:gochecknoglobals // Read-only value.
var documentStart = markup.Position{Line: 1, Column: 1}

func checkMoodleMultichoice(trace []markup.Element) []markup.Diagnostic {
	var diags []markup.Diagnostic

	top := markup.Children(trace, -1)
	var roots []int
	for _, idx := range top {
		if trace[idx].Name == moodleRoot {
			roots = append(roots, idx)
		}
	}

	if len(roots) == 0 {
		at := documentStart
		if len(top) > 0 {
			at = trace[top[0]].Pos
		}
		diags = append(diags, markup.NewSchemaViolation(moodleRoot, at, "Missing root <quiz> element"))
	} else {
		for _, extra := range roots[1:] {
			diags = append(diags, markup.NewSchemaViolation(moodleRoot, trace[extra].Pos,
				fmt.Sprintf("Duplicate root <quiz> element, first opened at %s", trace[roots[0]].Pos)))
		}

		root := roots[0]
		if !hasDescendant(trace, root, moodleQuestion) {
			diags = append(diags, markup.NewSchemaViolation(moodleQuestion, trace[root].Pos,
				"No <question> elements found under <quiz>"))
		}
	}

	for idx, elem := range trace {
		if elem.Name != moodleQuestion {
			continue
		}
		if kind, _ := elem.Attr("type"); kind != moodleType {
			continue
		}
		diags = append(diags, checkQuestion(trace, idx)...)
	}

	return diags
}

func checkQuestion(trace []markup.Element, question int) []markup.Diagnostic {
	found := map[string]int{}
	for _, child := range markup.Children(trace, question) {
		found[trace[child].Name]++
	}

	at := trace[question].Pos
	var diags []markup.Diagnostic
	if found["name"] == 0 {
		diags = append(diags, markup.NewSchemaViolation("name", at, "Missing <name> tag in multichoice question"))
	}
	if found["questiontext"] == 0 {
		diags = append(diags, markup.NewSchemaViolation("questiontext", at,
			"Missing <questiontext> tag in multichoice question"))
	}
	if found["answer"] == 0 {
		diags = append(diags, markup.NewSchemaViolation("answer", at, "No <answer> tags found in multichoice question"))
	}
	return diags
}

// hasDescendant reports whether any element named name sits below ancestor.
func hasDescendant(trace []markup.Element, ancestor int, name string) bool {
	for idx := ancestor + 1; idx < len(trace); idx++ {
		if trace[idx].Name != name {
			continue
		}
		for parent := trace[idx].Parent; parent >= 0; parent = trace[parent].Parent {
			if parent == ancestor {
				return true
			}
		}
	}
	return false
}
