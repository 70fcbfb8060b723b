package extract

import (
	"strings"

	"github.com/sells-group/conference-cli/internal/model"
)

const confSpeakerCard = 0.90

// IsBoldFamily reports whether a font name signals the company line of a
// speaker card: tagged bold (or black) but not simultaneously light.
func IsBoldFamily(font string) bool {
	lower := strings.ToLower(font)
	if strings.Contains(lower, "light") {
		return false
	}
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black")
}

// ExtractSpeakers reassembles multi-line speaker cards per structural
// block. Cards cannot be parsed by regex because name, title, and
// company are distinguished by font role, not text shape.
func ExtractSpeakers(doc string, page model.Page) []model.Record {
	var records []model.Record
	for _, block := range page.Blocks {
		if rec, ok := parseSpeakerCard(doc, NormalizeBlock(block, page.Index)); ok {
			records = append(records, rec)
		}
	}
	return records
}

// parseSpeakerCard extracts one speaker record from a card's lines. The
// first line must be a person name or the whole card is discarded; no
// partial extraction. Company lines are found by scanning backward from
// the last line while the dominant font stays bold-family; everything
// strictly between name and company is the contact title.
func parseSpeakerCard(doc string, lines []model.RawLine) (model.Record, bool) {
	var kept []model.RawLine
	for _, l := range lines {
		if !IsHeaderFooter(l.Text) {
			kept = append(kept, l)
		}
	}
	if len(kept) < 2 {
		return model.Record{}, false
	}

	name := StripNewTag(kept[0].Text)
	if !IsPersonName(name) {
		return model.Record{}, false
	}

	// Trailing run of bold-family lines forms the company name.
	companyStart := len(kept)
	for i := len(kept) - 1; i >= 1; i-- {
		if !IsBoldFamily(kept[i].Font) {
			break
		}
		companyStart = i
	}
	if companyStart == len(kept) {
		// No bold-family line at all: fall back to the last line.
		companyStart = len(kept) - 1
	}

	var companyParts []string
	for _, l := range kept[companyStart:] {
		if t := StripNewTag(l.Text); t != "" {
			companyParts = append(companyParts, t)
		}
	}
	company := CleanCompanyName(strings.Join(companyParts, " "))
	if !IsValidCompanyName(company) {
		return model.Record{}, false
	}

	var titleParts []string
	for _, l := range kept[1:companyStart] {
		if t := StripNewTag(l.Text); t != "" {
			titleParts = append(titleParts, t)
		}
	}

	return model.Record{
		Company:      company,
		SourceDoc:    doc,
		Role:         model.RoleSpeaker,
		ContactName:  name,
		ContactTitle: strings.Join(titleParts, " "),
		Confidence:   confSpeakerCard,
		SourcePage:   kept[0].Page,
	}, true
}
