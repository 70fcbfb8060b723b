package model

// Span is a run of characters sharing a single font on a visual line.
type Span struct {
	Text string `json:"text"`
	Font string `json:"font"`
}

// Line is one visual line of text composed of font spans.
type Line struct {
	Spans []Span `json:"spans"`
}

// Block groups vertically adjacent lines. On speaker-lineup pages one
// block corresponds to one speaker card.
type Block struct {
	Lines []Line `json:"lines"`
}

// Page holds the structural primitives of one document page. Text is the
// raw full-page text and is consumed only by the page classifier for
// keyword counting, never by extractors.
type Page struct {
	Index  int     `json:"index"`
	Blocks []Block `json:"blocks"`
	Text   string  `json:"text"`
}

// Document is a loaded source document in page order.
type Document struct {
	Name  string `json:"name"`
	Pages []Page `json:"pages"`
}

// RawLine is the normalized flat view the extractors consume: trimmed
// text, the line's dominant font, and the page it came from.
type RawLine struct {
	Text string
	Font string
	Page int
}
