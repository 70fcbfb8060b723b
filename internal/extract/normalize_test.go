package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/conference-cli/internal/model"
)

// line builds a single-span structural line.
func line(text, font string) model.Line {
	return model.Line{Spans: []model.Span{{Text: text, Font: font}}}
}

// textPage builds a page where each argument is one block of regular-font
// lines.
func textPage(index int, blocks ...[]string) model.Page {
	p := model.Page{Index: index}
	for _, texts := range blocks {
		var b model.Block
		for _, t := range texts {
			b.Lines = append(b.Lines, line(t, "Helvetica"))
		}
		p.Blocks = append(p.Blocks, b)
	}
	return p
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a \t b  c  "))
	assert.Equal(t, "", CollapseWhitespace("   "))
}

func TestNormalizeLine_DominantFont(t *testing.T) {
	l := model.Line{Spans: []model.Span{
		{Text: "Jane", Font: "Helvetica-Bold"},
		{Text: "Doe", Font: "Helvetica"},
		{Text: "Smith", Font: "Helvetica"},
	}}

	rl, ok := NormalizeLine(l, 3)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe Smith", rl.Text)
	assert.Equal(t, "Helvetica", rl.Font)
	assert.Equal(t, 3, rl.Page)
}

func TestNormalizeLine_FontTieFirstOccurrenceWins(t *testing.T) {
	l := model.Line{Spans: []model.Span{
		{Text: "Acme", Font: "Helvetica-Bold"},
		{Text: "Robotics", Font: "Helvetica"},
	}}

	rl, ok := NormalizeLine(l, 0)
	require.True(t, ok)
	assert.Equal(t, "Helvetica-Bold", rl.Font)
}

func TestNormalizeLine_EmptySpans(t *testing.T) {
	l := model.Line{Spans: []model.Span{{Text: "  ", Font: "Helvetica"}}}
	_, ok := NormalizeLine(l, 0)
	assert.False(t, ok)
}

func TestNormalizePage_OrderAndPageIndex(t *testing.T) {
	p := textPage(2, []string{"first", " "}, []string{"second"})

	lines := NormalizePage(p)
	require.Len(t, lines, 2)
	assert.Equal(t, "first", lines[0].Text)
	assert.Equal(t, "second", lines[1].Text)
	assert.Equal(t, 2, lines[0].Page)
}
