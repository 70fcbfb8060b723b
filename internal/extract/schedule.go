package extract

import (
	"strings"

	"github.com/sells-group/conference-cli/internal/model"
)

const confScheduleLine = 0.75

// ExtractScheduleLines is a secondary, lower-confidence pass over
// comma-delimited agenda lines of the form "Name, Title, Company". The
// line is split on the first and last comma so a comma-bearing title
// ("VP, Customer Success") stays intact.
func ExtractScheduleLines(doc string, page model.Page) []model.Record {
	var records []model.Record

	for _, line := range NormalizePage(page) {
		first := strings.Index(line.Text, ",")
		last := strings.LastIndex(line.Text, ",")
		if first < 0 || last <= first {
			continue
		}

		name := strings.TrimSpace(line.Text[:first])
		title := strings.TrimSpace(line.Text[first+1 : last])
		company := CleanCompanyName(StripNewTag(line.Text[last+1:]))

		if !IsPersonName(name) {
			continue
		}
		if !IsValidCompanyName(company) {
			continue
		}

		records = append(records, model.Record{
			Company:      company,
			SourceDoc:    doc,
			Role:         model.RoleSpeaker,
			ContactName:  name,
			ContactTitle: title,
			Confidence:   confScheduleLine,
			Flags:        []string{model.FlagScheduleLineParse},
			SourcePage:   line.Page,
		})
	}

	return records
}
