package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/conference-cli/internal/model"
)

func TestExtractFallback_TeamOfOnly(t *testing.T) {
	page := textPage(5, []string{
		"Acme Robotics (Team of 4)",
		"Initech",
		"Some prose about the venue and its history",
	})

	records := ExtractFallback("misc.pdf", page)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Acme Robotics", rec.Company)
	assert.Equal(t, model.RoleAttendee, rec.Role)
	assert.Equal(t, 4, rec.TeamSize)
	assert.InDelta(t, 0.85, rec.Confidence, 1e-9)
	assert.Equal(t, []string{model.FlagFallbackTeamSize}, rec.Flags)
	assert.Equal(t, 5, rec.SourcePage)
}

func TestExtractFallback_NoStandaloneGuesses(t *testing.T) {
	page := textPage(0, []string{"Globex Corporation"})
	assert.Empty(t, ExtractFallback("misc.pdf", page))
}
