package validate_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gomlcheck/pkg/markup"
	"github.com/yaklabco/gomlcheck/pkg/schema"
	"github.com/yaklabco/gomlcheck/pkg/validate"
)

func buildQuiz(questions int) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<quiz>\n")
	for range questions {
		b.WriteString(`  <question type="multichoice">
    <name><text>Capital</text></name>
    <questiontext format="html"><text><![CDATA[<p>Pick one</p>]]></text></questiontext>
    <answer fraction="100"><text>Paris</text></answer>
    <answer fraction="0"><text>Lyon</text></answer>
  </question>
`)
	}
	b.WriteString("</quiz>\n")
	return b.String()
}

func buildPage(sections int) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>t</title></head><body>\n")
	for range sections {
		b.WriteString("<div class=\"card\"><p>Text<br><img src=\"a.png\" alt=\"a > b\"></p><ul><li>one</li><li>two</li></ul></div>\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

func BenchmarkValidateDocument(b *testing.B) {
	benchmarks := []struct {
		name   string
		text   string
		mode   markup.Mode
		schema schema.Name
	}{
		{name: "html_small", text: buildPage(10), mode: markup.ModeHTML},
		{name: "html_large", text: buildPage(1000), mode: markup.ModeHTML},
		{name: "xml_moodle_small", text: buildQuiz(10), mode: markup.ModeXML, schema: schema.MoodleMultichoice},
		{name: "xml_moodle_large", text: buildQuiz(1000), mode: markup.ModeXML, schema: schema.MoodleMultichoice},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.SetBytes(int64(len(bm.text)))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := validate.ValidateDocument(bm.text, bm.mode, bm.schema); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
