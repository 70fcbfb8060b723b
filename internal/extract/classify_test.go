package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_AttendeeNeedsBothThresholds(t *testing.T) {
	text := strings.Repeat("Acme (Team of 3)\n", 10)

	kinds := Classify(text, 50, DefaultClassifierConfig())
	assert.Equal(t, []PageKind{PageKindAttendee}, kinds)

	// Enough "team of" mentions but too few blocks: not an attendee list.
	kinds = Classify(text, 10, DefaultClassifierConfig())
	assert.Equal(t, []PageKind{PageKindUnknown}, kinds)

	// Enough blocks but a lone mention: not an attendee list.
	kinds = Classify("our team of experts", 50, DefaultClassifierConfig())
	assert.Equal(t, []PageKind{PageKindUnknown}, kinds)
}

func TestClassify_SpeakerMarkers(t *testing.T) {
	kinds := Classify("Meet the Speakers of 2026", 5, DefaultClassifierConfig())
	assert.Equal(t, []PageKind{PageKindSpeaker}, kinds)
}

func TestClassify_ScheduleMarkers(t *testing.T) {
	kinds := Classify("Day 1 opens at 9:00 am sharp", 5, DefaultClassifierConfig())
	assert.Equal(t, []PageKind{PageKindSchedule}, kinds)
}

func TestClassify_MultipleKinds(t *testing.T) {
	text := "AGENDA\nFeatured Speakers\n" + strings.Repeat("X (team of 2)\n", 6)

	kinds := Classify(text, 60, DefaultClassifierConfig())
	assert.Equal(t, []PageKind{PageKindAttendee, PageKindSpeaker, PageKindSchedule}, kinds)
}

func TestClassify_UnknownWhenNothingMatches(t *testing.T) {
	kinds := Classify("Welcome to the venue", 3, DefaultClassifierConfig())
	assert.Equal(t, []PageKind{PageKindUnknown}, kinds)
}

func TestClassify_ZeroConfigUsesDefaults(t *testing.T) {
	text := strings.Repeat("Acme (Team of 3)\n", DefaultTeamOfMinCount)

	kinds := Classify(text, DefaultMinAttendeeBlocks, ClassifierConfig{})
	assert.Equal(t, []PageKind{PageKindAttendee}, kinds)
}
