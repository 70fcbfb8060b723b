package docload

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glyph(s string, x, y, w float64, font string) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, Font: font, FontSize: 12}
}

func TestBuildPage_LinesAndBlocks(t *testing.T) {
	// Three tightly spaced lines, then a distant footer line. Gaps are
	// 12, 12, 76; the median gap of 12 puts the block break threshold at
	// 20.4, so only the footer starts a new block.
	texts := []pdf.Text{
		glyph("Jane", 10, 700, 30, "Helvetica"),
		glyph("Doe", 45, 700, 25, "Helvetica"),
		glyph("CTO", 10, 688, 25, "Helvetica"),
		glyph("Acme", 10, 676, 35, "Helvetica-Bold"),
		glyph("Footer", 10, 600, 40, "Helvetica"),
	}

	page := BuildPage(3, texts, "raw page text")
	assert.Equal(t, 3, page.Index)
	assert.Equal(t, "raw page text", page.Text)

	require.Len(t, page.Blocks, 2)
	require.Len(t, page.Blocks[0].Lines, 3)
	require.Len(t, page.Blocks[1].Lines, 1)

	first := page.Blocks[0].Lines[0]
	require.Len(t, first.Spans, 1)
	assert.Equal(t, "Jane Doe", first.Spans[0].Text)
	assert.Equal(t, "Helvetica", first.Spans[0].Font)

	bold := page.Blocks[0].Lines[2]
	require.Len(t, bold.Spans, 1)
	assert.Equal(t, "Acme", bold.Spans[0].Text)
	assert.Equal(t, "Helvetica-Bold", bold.Spans[0].Font)
}

func TestBuildPage_YToleranceMergesJitteredGlyphs(t *testing.T) {
	texts := []pdf.Text{
		glyph("Hello", 10, 700, 35, "Helvetica"),
		glyph("World", 50, 699.5, 35, "Helvetica"),
	}

	page := BuildPage(0, texts, "")
	require.Len(t, page.Blocks, 1)
	require.Len(t, page.Blocks[0].Lines, 1)
	require.Len(t, page.Blocks[0].Lines[0].Spans, 1)
	assert.Equal(t, "Hello World", page.Blocks[0].Lines[0].Spans[0].Text)
}

func TestBuildPage_OrdersByPositionNotInput(t *testing.T) {
	// Glyphs arrive out of reading order; output is top to bottom, left
	// to right.
	texts := []pdf.Text{
		glyph("world", 50, 688, 35, "Helvetica"),
		glyph("second", 10, 688, 35, "Helvetica"),
		glyph("first", 10, 700, 30, "Helvetica"),
	}

	page := BuildPage(0, texts, "")
	require.Len(t, page.Blocks, 1)
	lines := page.Blocks[0].Lines
	require.Len(t, lines, 2)
	assert.Equal(t, "first", lines[0].Spans[0].Text)
	assert.Equal(t, "second world", lines[1].Spans[0].Text)
}

func TestBuildPage_FontChangeSplitsSpans(t *testing.T) {
	texts := []pdf.Text{
		glyph("Jane ", 10, 700, 32, "Helvetica-Bold"),
		glyph("Doe", 42, 700, 25, "Helvetica"),
	}

	page := BuildPage(0, texts, "")
	spans := page.Blocks[0].Lines[0].Spans
	require.Len(t, spans, 2)
	assert.Equal(t, "Helvetica-Bold", spans[0].Font)
	assert.Equal(t, "Helvetica", spans[1].Font)
	assert.Equal(t, "Doe", spans[1].Text)
}

func TestBuildPage_TightGlyphRunsConcatenateWithoutSpace(t *testing.T) {
	// Kerned glyph runs within a word must not gain spaces.
	texts := []pdf.Text{
		glyph("Ac", 10, 700, 14, "Helvetica"),
		glyph("me", 24.5, 700, 14, "Helvetica"),
	}

	page := BuildPage(0, texts, "")
	spans := page.Blocks[0].Lines[0].Spans
	require.Len(t, spans, 1)
	assert.Equal(t, "Acme", spans[0].Text)
}

func TestBuildPage_Empty(t *testing.T) {
	page := BuildPage(0, nil, "")
	assert.Empty(t, page.Blocks)
	assert.Empty(t, page.Text)
}

func TestBuildPage_SkipsEmptyGlyphs(t *testing.T) {
	texts := []pdf.Text{
		glyph("", 10, 700, 0, "Helvetica"),
		glyph("only", 10, 688, 30, "Helvetica"),
	}

	page := BuildPage(0, texts, "")
	require.Len(t, page.Blocks, 1)
	require.Len(t, page.Blocks[0].Lines, 1)
	assert.Equal(t, "only", page.Blocks[0].Lines[0].Spans[0].Text)
}
