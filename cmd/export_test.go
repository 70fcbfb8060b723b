package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/conference-cli/internal/model"
)

func TestProfileRows(t *testing.T) {
	profiles := []model.CompanyProfile{
		{
			Company:    "Acme Robotics",
			SourceDocs: []string{"roster.pdf", "speakers.pdf"},
			Roles:      []model.Role{model.RoleAttendee, model.RoleSpeaker},
			TeamSize:   4,
			Confidence: 0.95,
			Flags:      []string{model.FlagScheduleLineParse},
			Contacts: []model.Contact{
				{Name: "Jane Doe", Title: "CTO"},
				{Name: "John Smith"},
			},
		},
		{
			Company:    "Globex",
			SourceDocs: []string{"roster.pdf"},
			Roles:      []model.Role{model.RoleAttendee},
			Confidence: 0.90,
		},
	}

	rows := profileRows(profiles)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Company", "Roles", "Team Size", "Confidence", "Sources", "Flags", "Contacts"}, rows[0])
	assert.Equal(t, []string{
		"Acme Robotics",
		"attendee, speaker",
		"4",
		"0.95",
		"roster.pdf, speakers.pdf",
		model.FlagScheduleLineParse,
		"Jane Doe (CTO); John Smith",
	}, rows[1])

	// Unknown team size renders empty, not zero.
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "Globex", rows[2][0])
}
