// Package docload reads PDF documents into the structural primitives the
// extraction engine consumes: pages of blocks, lines, and font spans.
// Glyph runs are grouped into lines by vertical position, into spans by
// font, and lines are clustered into blocks by vertical gap.
package docload

import (
	"context"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/conference-cli/internal/model"
)

const (
	// Glyphs whose Y differs by less than this share a visual line.
	lineYTolerance = 2.0

	// A horizontal gap wider than this fraction of the font size marks a
	// word boundary between glyph runs.
	wordGapFraction = 0.25

	// Lines separated by more than this multiple of the typical line gap
	// start a new block.
	blockGapFactor = 1.7

	// Floor for the block-break threshold, in points.
	minBlockGap = 6.0
)

// Loader loads a source document by path.
type Loader interface {
	Load(ctx context.Context, path string) (*model.Document, error)
}

// PDFLoader reads PDFs with ledongthuc/pdf.
type PDFLoader struct{}

// NewPDFLoader returns a PDFLoader.
func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

// Load reads every page of the PDF at path. An unreadable file is an
// error for the caller to report and skip; a malformed page only loses
// that page.
func (l *PDFLoader) Load(ctx context.Context, path string) (*model.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "docload: open %s", path)
	}
	defer f.Close()

	doc := &model.Document{Name: filepath.Base(path)}

	for num := 1; num <= reader.NumPage(); num++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "docload: cancelled")
		}

		p := reader.Page(num)
		if p.V.IsNull() {
			continue
		}

		raw, err := p.GetPlainText(nil)
		if err != nil {
			zap.L().Debug("docload: plain text failed",
				zap.String("document", doc.Name),
				zap.Int("page", num),
				zap.Error(err),
			)
			raw = ""
		}

		page := BuildPage(num-1, p.Content().Text, raw)
		doc.Pages = append(doc.Pages, page)
	}

	zap.L().Info("docload: loaded document",
		zap.String("document", doc.Name),
		zap.Int("pages", len(doc.Pages)),
	)
	return doc, nil
}

// BuildPage groups a page's glyph runs into the block/line/span
// hierarchy. Exported for tests that feed synthetic glyph data.
func BuildPage(index int, texts []pdf.Text, rawText string) model.Page {
	lines := groupLines(texts)
	return model.Page{
		Index:  index,
		Blocks: groupBlocks(lines),
		Text:   norm.NFC.String(rawText),
	}
}

// layoutLine is a line under construction: its vertical position and the
// glyph runs on it, ordered left to right.
type layoutLine struct {
	y     float64
	texts []pdf.Text
}

// groupLines buckets glyph runs by vertical position (top of page
// first), sorts each bucket left to right, and merges runs into font
// spans with word-gap spaces inserted.
func groupLines(texts []pdf.Text) []layoutLine {
	var lines []layoutLine

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		placed := false
		for i := range lines {
			if math.Abs(lines[i].y-t.Y) < lineYTolerance {
				lines[i].texts = append(lines[i].texts, t)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, layoutLine{y: t.Y, texts: []pdf.Text{t}})
		}
	}

	// PDF Y grows upward: larger Y is higher on the page.
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })
	for i := range lines {
		sort.SliceStable(lines[i].texts, func(a, b int) bool {
			return lines[i].texts[a].X < lines[i].texts[b].X
		})
	}
	return lines
}

// buildSpans merges a line's ordered glyph runs into font spans,
// inserting a space wherever the horizontal gap exceeds the word-gap
// threshold.
func buildSpans(texts []pdf.Text) []model.Span {
	var spans []model.Span
	var cur *model.Span
	var prevEnd float64

	for i, t := range texts {
		s := norm.NFC.String(t.S)

		gap := i > 0 && t.X-prevEnd > wordGapFraction*math.Max(t.FontSize, 1)
		if cur != nil && cur.Font == t.Font {
			if gap && !strings.HasSuffix(cur.Text, " ") {
				cur.Text += " "
			}
			cur.Text += s
		} else {
			if cur != nil {
				spans = append(spans, *cur)
			}
			cur = &model.Span{Text: s, Font: t.Font}
		}
		prevEnd = t.X + t.W
	}
	if cur != nil {
		spans = append(spans, *cur)
	}
	return spans
}

// groupBlocks clusters lines into blocks by vertical gap: a gap wider
// than blockGapFactor times the median line gap (with a fixed floor)
// starts a new block.
func groupBlocks(lines []layoutLine) []model.Block {
	if len(lines) == 0 {
		return nil
	}

	var gaps []float64
	for i := 1; i < len(lines); i++ {
		gaps = append(gaps, lines[i-1].y-lines[i].y)
	}
	threshold := blockThreshold(gaps)

	var blocks []model.Block
	current := model.Block{}
	for i, ln := range lines {
		if i > 0 && lines[i-1].y-ln.y > threshold {
			blocks = append(blocks, current)
			current = model.Block{}
		}
		current.Lines = append(current.Lines, model.Line{Spans: buildSpans(ln.texts)})
	}
	blocks = append(blocks, current)
	return blocks
}

func blockThreshold(gaps []float64) float64 {
	if len(gaps) == 0 {
		return minBlockGap
	}
	sorted := append([]float64{}, gaps...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]

	t := median * blockGapFactor
	if t < minBlockGap {
		t = minBlockGap
	}
	return t
}
