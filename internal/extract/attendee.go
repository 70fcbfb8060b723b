package extract

import (
	"regexp"
	"strconv"

	"github.com/sells-group/conference-cli/internal/model"
)

// teamOfRe matches the attendee-roster pattern "<Company> (Team of <N>)".
var teamOfRe = regexp.MustCompile(`^(.*?)\s*\((?i:team of)\s*(\d+)\)\s*$`)

// Strategy confidences. These are explicit constants encoding relative
// trust in each heuristic, consumed downstream to skip low-trust records.
const (
	confAttendeeTeam = 0.95
	confAttendeeSolo = 0.90
)

// ExtractAttendees scans an attendee-list page line by line. Lines
// matching the team-size pattern yield high-confidence records; lines
// that independently pass company-name admission yield a record with the
// conservative default of a single attendee. Everything else is dropped
// with no partial credit.
func ExtractAttendees(doc string, page model.Page) []model.Record {
	var records []model.Record

	for _, line := range NormalizePage(page) {
		if IsHeaderFooter(line.Text) {
			continue
		}

		if m := teamOfRe.FindStringSubmatch(line.Text); m != nil {
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
				Confidence: confAttendeeTeam,
				SourcePage: page.Index,
			})
			continue
		}

		company := CleanCompanyName(line.Text)
		if !IsValidCompanyName(company) {
			continue
		}
		records = append(records, model.Record{
			Company:    company,
			SourceDoc:  doc,
			Role:       model.RoleAttendee,
			TeamSize:   1,
			Confidence: confAttendeeSolo,
			SourcePage: page.Index,
		})
	}

	return records
}
