package model

// Role describes how a company showed up in a source document.
type Role string

const (
	RoleSpeaker  Role = "speaker"
	RoleAttendee Role = "attendee"
)

// AllRoles returns all defined roles.
func AllRoles() []Role {
	return []Role{RoleSpeaker, RoleAttendee}
}

// Quality flags attached by extractors. Flags only accumulate; merges
// union them and never remove one.
const (
	FlagScheduleLineParse = "schedule_line_parse"
	FlagFallbackTeamSize  = "fallback_team_size"
)

// Record is a single extraction event: one company sighting produced by
// one extractor for one line or card. Records are immutable once created.
// TeamSize 0 means unknown; known values are always >= 1.
type Record struct {
	Company      string   `json:"company"`
	SourceDoc    string   `json:"source_pdf"`
	Role         Role     `json:"role"`
	ContactName  string   `json:"contact_name,omitempty"`
	ContactTitle string   `json:"contact_title,omitempty"`
	TeamSize     int      `json:"team_size,omitempty"`
	Confidence   float64  `json:"confidence"`
	Flags        []string `json:"flags,omitempty"`
	SourcePage   int      `json:"source_page"`
}
