package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/conference-cli/internal/model"
)

func TestBuildExport_Shape(t *testing.T) {
	profiles := []model.CompanyProfile{{
		Company:    "Acme Robotics",
		SourceDocs: []string{"roster.pdf", "speakers.pdf"},
		Roles:      []model.Role{model.RoleAttendee, model.RoleSpeaker},
		TeamSize:   4,
		Confidence: 0.95,
		Flags:      []string{model.FlagScheduleLineParse},
		Contacts: []model.Contact{
			{Name: "John Smith", Title: "CEO"},
			{Name: "Jane Doe", Title: "CTO"},
		},
	}}

	out := BuildExport(profiles)
	require.Len(t, out, 1)

	exp, ok := out["Acme Robotics"]
	require.True(t, ok)
	assert.Equal(t, "roster.pdf, speakers.pdf", exp.SourcePDF)
	assert.Equal(t, "attendee, speaker", exp.Role)
	assert.Equal(t, 4, exp.TeamSize)
	assert.InDelta(t, 0.95, exp.Confidence, 1e-9)
	assert.Equal(t, []string{model.FlagScheduleLineParse}, exp.Flags)

	// Contacts come out canonically sorted; the flattened fields mirror
	// the first sorted contact.
	require.Len(t, exp.Contacts, 2)
	assert.Equal(t, "Jane Doe", exp.Contacts[0].Name)
	assert.Equal(t, "John Smith", exp.Contacts[1].Name)
	assert.Equal(t, "Jane Doe", exp.ContactName)
	assert.Equal(t, "CTO", exp.ContactTitle)
}

func TestBuildExport_NoContacts(t *testing.T) {
	out := BuildExport([]model.CompanyProfile{{
		Company:    "Globex",
		Confidence: 0.85,
	}})

	exp := out["Globex"]
	assert.Empty(t, exp.Contacts)
	assert.Empty(t, exp.ContactName)
	assert.Empty(t, exp.ContactTitle)
}

func TestMarshalJSON_FieldNames(t *testing.T) {
	data, err := MarshalJSON([]model.CompanyProfile{{
		Company:    "Acme",
		SourceDocs: []string{"roster.pdf"},
		Roles:      []model.Role{model.RoleAttendee},
		TeamSize:   4,
		Confidence: 0.95,
		Contacts:   []model.Contact{{Name: "Jane Doe", Title: "CTO"}},
	}})
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	acme := decoded["Acme"]
	require.NotNil(t, acme)
	assert.Equal(t, "roster.pdf", acme["source_pdf"])
	assert.Equal(t, "attendee", acme["role"])
	assert.Equal(t, float64(4), acme["team_size"])
	assert.Equal(t, 0.95, acme["confidence"])
	assert.Equal(t, "Jane Doe", acme["contact_name"])
	assert.Equal(t, "CTO", acme["contact_title"])
	assert.Contains(t, acme, "contacts")
}

func TestMarshalJSON_TeamSizeOmittedWhenUnknown(t *testing.T) {
	data, err := MarshalJSON([]model.CompanyProfile{{
		Company:    "Globex",
		Confidence: 0.90,
	}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "team_size")
}
