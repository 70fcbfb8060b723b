package extract

import (
	"regexp"
	"strings"

	"github.com/sells-group/conference-cli/internal/model"
)

// whitespaceRe matches runs of whitespace including non-breaking and
// narrow spaces, which PDF text extraction produces liberally.
var whitespaceRe = regexp.MustCompile(`[\s\x{00A0}\x{2007}\x{202F}]+`)

// CollapseWhitespace trims a string and collapses all interior
// whitespace runs to single ASCII spaces.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// NormalizeLine flattens one structural line into a RawLine. The
// dominant font is the most frequent span font among non-empty spans,
// ties broken by first occurrence. Returns false for empty lines.
func NormalizeLine(line model.Line, page int) (model.RawLine, bool) {
	var parts []string
	counts := make(map[string]int)
	var order []string

	for _, span := range line.Spans {
		text := CollapseWhitespace(span.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
		if counts[span.Font] == 0 {
			order = append(order, span.Font)
		}
		counts[span.Font]++
	}

	text := CollapseWhitespace(strings.Join(parts, " "))
	if text == "" {
		return model.RawLine{}, false
	}

	var font string
	best := 0
	for _, f := range order {
		if counts[f] > best {
			best = counts[f]
			font = f
		}
	}

	return model.RawLine{Text: text, Font: font, Page: page}, true
}

// NormalizeBlock flattens a block into its non-empty RawLines in order.
func NormalizeBlock(block model.Block, page int) []model.RawLine {
	var lines []model.RawLine
	for _, l := range block.Lines {
		if rl, ok := NormalizeLine(l, page); ok {
			lines = append(lines, rl)
		}
	}
	return lines
}

// NormalizePage flattens a whole page into a page-ordered RawLine
// stream. This is the only view of the layout hierarchy the line-based
// extractors depend on.
func NormalizePage(page model.Page) []model.RawLine {
	var lines []model.RawLine
	for _, b := range page.Blocks {
		lines = append(lines, NormalizeBlock(b, page.Index)...)
	}
	return lines
}
