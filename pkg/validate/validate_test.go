package validate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomlcheck/pkg/markup"
	"github.com/yaklabco/gomlcheck/pkg/schema"
	"github.com/yaklabco/gomlcheck/pkg/validate"
)

func TestValidateDocument_CrossedTags(t *testing.T) {
	t.Parallel()

	got, err := validate.ValidateDocument("<b><i></b></i>", markup.ModeHTML, schema.None)
	require.NoError(t, err)

	want := validate.Result{
		Diagnostics: []markup.Diagnostic{
			{
				Kind:    markup.MismatchedClose,
				Tag:     "i",
				Pos:     markup.Position{Line: 1, Column: 7},
				OpenPos: markup.Position{Line: 1, Column: 4},
				Message: "expected </i>, implicitly closed by </b>",
			},
			{
				Kind:    markup.UnexpectedClose,
				Tag:     "i",
				Pos:     markup.Position{Line: 1, Column: 11},
				OpenPos: markup.Position{Line: 1, Column: 11},
				Message: "unexpected closing tag </i> with no matching open element",
			},
		},
		TagCount: 2,
		Format:   markup.ModeHTML,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ValidateDocument() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateDocument_SchemaAfterNesting(t *testing.T) {
	t.Parallel()

	got, err := validate.ValidateDocument("<quiz>\n<b></quiz>", markup.ModeXML, schema.MoodleMultichoice)
	require.NoError(t, err)

	require.Len(t, got.Diagnostics, 2)
	assert.Equal(t, markup.MismatchedClose, got.Diagnostics[0].Kind)
	assert.Equal(t, markup.SchemaViolation, got.Diagnostics[1].Kind)
	assert.Equal(t, markup.Position{Line: 1, Column: 1}, got.Diagnostics[1].Pos)
	assert.Equal(t, 1, got.Count(markup.SchemaViolation))
	assert.False(t, got.OK())
}

func TestValidateDocument_SchemaIgnoredForHTML(t *testing.T) {
	t.Parallel()

	got, err := validate.ValidateDocument("<p>x</p>", markup.ModeHTML, schema.MoodleMultichoice)
	require.NoError(t, err)
	assert.True(t, got.OK())
	assert.Equal(t, 1, got.TagCount)
}

func TestValidateDocument_ContractErrors(t *testing.T) {
	t.Parallel()

	_, err := validate.ValidateDocument("<a/>", markup.Mode(0), schema.None)
	assert.ErrorIs(t, err, markup.ErrUnknownMode)

	_, err = validate.ValidateDocument("<a/>", markup.ModeXML, schema.Name(9))
	assert.ErrorIs(t, err, schema.ErrUnknownSchema)
}

func TestValidateDocument_Idempotent(t *testing.T) {
	t.Parallel()

	const input = "<quiz><question type=\"multichoice\"><name/></question><div>"

	first, err := validate.ValidateDocument(input, markup.ModeXML, schema.MoodleMultichoice)
	require.NoError(t, err)
	second, err := validate.ValidateDocument(input, markup.ModeXML, schema.MoodleMultichoice)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestValidateDocument_OrderedByPosition(t *testing.T) {
	t.Parallel()

	input := "<a>\n</b>\n<c><d></c>\n</ e>\n<f></a>"
	got, err := validate.ValidateDocument(input, markup.ModeXML, schema.None)
	require.NoError(t, err)

	for idx := 1; idx < len(got.Diagnostics); idx++ {
		assert.False(t, got.Diagnostics[idx].Pos.Before(got.Diagnostics[idx-1].Pos),
			"diagnostic %d at %s precedes %s", idx, got.Diagnostics[idx].Pos, got.Diagnostics[idx-1].Pos)
	}
}

func TestValidateDocument_Samples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file   string
		mode   markup.Mode
		schema schema.Name
		want   map[markup.DiagnosticKind]int
	}{
		{
			file: "page.html",
			mode: markup.ModeHTML,
			want: map[markup.DiagnosticKind]int{markup.MismatchedClose: 2, markup.UnexpectedClose: 1},
		},
		{
			file: "quiz.xml",
			mode: markup.ModeXML,
			want: map[markup.DiagnosticKind]int{},
		},
		{
			file:   "quiz.xml",
			mode:   markup.ModeXML,
			schema: schema.MoodleMultichoice,
			want:   map[markup.DiagnosticKind]int{markup.SchemaViolation: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.file+"/"+tt.schema.String(), func(t *testing.T) {
			t.Parallel()

			data, err := os.ReadFile(filepath.Join("testdata", "samples", tt.file))
			require.NoError(t, err)

			got, err := validate.ValidateDocument(string(data), tt.mode, tt.schema)
			require.NoError(t, err)

			counts := map[markup.DiagnosticKind]int{}
			for _, d := range got.Diagnostics {
				counts[d.Kind]++
			}
			if diff := cmp.Diff(tt.want, counts); diff != "" {
				t.Errorf("diagnostic kinds mismatch (-want +got):\n%s\n%v", diff, got.Diagnostics)
			}
		})
	}
}
