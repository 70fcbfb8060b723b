package model

// Contact is one person associated with a company. Contacts are
// deduplicated case-insensitively on (name, title) during reconciliation;
// a contact is never removed once admitted.
type Contact struct {
	Name      string `json:"name"`
	Title     string `json:"title,omitempty"`
	SourceDoc string `json:"source_pdf,omitempty"`
}

// CompanyProfile is the canonical merged entity for one company across
// all source documents. SourceDocs, Roles and Flags are materialized
// sorted; Contacts keep admission order.
type CompanyProfile struct {
	Company    string    `json:"company"`
	SourceDocs []string  `json:"source_pdfs"`
	Roles      []Role    `json:"roles"`
	TeamSize   int       `json:"team_size,omitempty"`
	Confidence float64   `json:"confidence"`
	Flags      []string  `json:"flags"`
	Contacts   []Contact `json:"contacts"`
}

// HasRole reports whether the profile carries the given role.
func (p CompanyProfile) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
