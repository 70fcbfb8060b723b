package reconcile

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/conference-cli/internal/model"
)

// ContactExport is the downstream contact shape.
type ContactExport struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// ProfileExport is the stable shape consumed downstream. Field names and
// nesting must not change: company, source_pdf (joined), role (joined),
// team_size, confidence, flags, contacts, plus the backward-compatible
// flattened contact_name/contact_title mirroring the first contact.
type ProfileExport struct {
	Company      string          `json:"company"`
	SourcePDF    string          `json:"source_pdf"`
	Role         string          `json:"role"`
	TeamSize     int             `json:"team_size,omitempty"`
	Confidence   float64         `json:"confidence"`
	Flags        []string        `json:"flags"`
	Contacts     []ContactExport `json:"contacts"`
	ContactName  string          `json:"contact_name,omitempty"`
	ContactTitle string          `json:"contact_title,omitempty"`
}

// BuildExport converts profiles into the downstream mapping keyed by
// company display name. Contacts are sorted canonically
// (case-insensitive name, then title) so that serialization is
// byte-stable across reconciliation orderings.
func BuildExport(profiles []model.CompanyProfile) map[string]ProfileExport {
	out := make(map[string]ProfileExport, len(profiles))

	for _, p := range profiles {
		roles := make([]string, 0, len(p.Roles))
		for _, r := range p.Roles {
			roles = append(roles, string(r))
		}

		contacts := make([]ContactExport, 0, len(p.Contacts))
		for _, c := range p.Contacts {
			contacts = append(contacts, ContactExport{Name: c.Name, Title: c.Title})
		}
		sort.Slice(contacts, func(i, j int) bool {
			ni, nj := strings.ToLower(contacts[i].Name), strings.ToLower(contacts[j].Name)
			if ni != nj {
				return ni < nj
			}
			return strings.ToLower(contacts[i].Title) < strings.ToLower(contacts[j].Title)
		})

		exp := ProfileExport{
			Company:    p.Company,
			SourcePDF:  strings.Join(p.SourceDocs, ", "),
			Role:       strings.Join(roles, ", "),
			TeamSize:   p.TeamSize,
			Confidence: p.Confidence,
			Flags:      append([]string{}, p.Flags...),
			Contacts:   contacts,
		}
		if len(contacts) > 0 {
			exp.ContactName = contacts[0].Name
			exp.ContactTitle = contacts[0].Title
		}

		out[p.Company] = exp
	}

	return out
}

// MarshalJSON serializes profiles into the canonical downstream JSON
// document. Map keys are emitted sorted, so equal profile sets always
// produce identical bytes.
func MarshalJSON(profiles []model.CompanyProfile) ([]byte, error) {
	data, err := json.MarshalIndent(BuildExport(profiles), "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "reconcile: marshal profiles")
	}
	return data, nil
}
