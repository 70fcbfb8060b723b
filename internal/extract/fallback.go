package extract

import (
	"strconv"

	"github.com/sells-group/conference-cli/internal/model"
)

const confFallback = 0.85

// ExtractFallback runs on pages matching no known archetype. It makes no
// structural assumptions beyond the bare "<Company> (Team of <N>)"
// pattern and no standalone-company guesses; non-matching lines are
// dropped.
func ExtractFallback(doc string, page model.Page) []model.Record {
	var records []model.Record

	for _, line := range NormalizePage(page) {
		m := teamOfRe.FindStringSubmatch(line.Text)
		if m == nil {
			continue
		}
		company := CleanCompanyName(m[1])
		if !IsValidCompanyName(company) {
			continue
		}
		size, _ := strconv.Atoi(m[2])
		if size < 1 {
			size = 1
		}
		records = append(records, model.Record{
			Company:    company,
			SourceDoc:  doc,
			Role:       model.RoleAttendee,
			TeamSize:   size,
			Confidence: confFallback,
			Flags:      []string{model.FlagFallbackTeamSize},
			SourcePage: line.Page,
		})
	}

	return records
}
