package extract

import (
	"strings"

	"go.uber.org/zap"
)

// PageKind is a structural page archetype selecting an extraction
// strategy.
type PageKind string

const (
	PageKindAttendee PageKind = "attendee_list"
	PageKindSpeaker  PageKind = "speaker_lineup"
	PageKindSchedule PageKind = "schedule"
	PageKindUnknown  PageKind = "unknown"
)

// Default classifier thresholds. The "team of" count and block count
// must BOTH clear their thresholds before a page is treated as an
// attendee list; a marketing page mentioning "team of" once must not
// qualify.
const (
	DefaultTeamOfMinCount    = 5
	DefaultMinAttendeeBlocks = 40
)

// ClassifierConfig carries the attendee-page thresholds.
type ClassifierConfig struct {
	TeamOfMinCount    int
	MinAttendeeBlocks int
}

// DefaultClassifierConfig returns the empirically chosen thresholds.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		TeamOfMinCount:    DefaultTeamOfMinCount,
		MinAttendeeBlocks: DefaultMinAttendeeBlocks,
	}
}

// speakerMarkers are section-header phrases identifying a speaker-lineup
// page.
var speakerMarkers = []string{
	"speaker lineup",
	"speaker line-up",
	"featured speakers",
	"meet the speakers",
	"our speakers",
}

// scheduleMarkers identify agenda pages. Time-of-day markers are matched
// with surrounding spaces to avoid hitting words like "program".
var scheduleMarkers = []string{
	"agenda",
	"day 1",
	"day 2",
	"day 3",
	"schedule at a glance",
	" a.m.",
	" p.m.",
	":00 am",
	":30 am",
	":00 pm",
	":30 pm",
}

// Classify inspects per-page signals and returns every matching
// archetype. Pages matching multiple archetypes run all matching
// extractors; their output merges downstream by deduplication, not by
// precedence. Pages matching nothing get PageKindUnknown and are routed
// to the fallback extractor.
func Classify(pageText string, blockCount int, cfg ClassifierConfig) []PageKind {
	if cfg.TeamOfMinCount <= 0 {
		cfg.TeamOfMinCount = DefaultTeamOfMinCount
	}
	if cfg.MinAttendeeBlocks <= 0 {
		cfg.MinAttendeeBlocks = DefaultMinAttendeeBlocks
	}

	lower := strings.ToLower(pageText)
	var kinds []PageKind

	if teamOf := strings.Count(lower, "team of"); teamOf >= cfg.TeamOfMinCount && blockCount >= cfg.MinAttendeeBlocks {
		kinds = append(kinds, PageKindAttendee)
		zap.L().Debug("classify: attendee-list page",
			zap.Int("team_of_count", teamOf),
			zap.Int("block_count", blockCount),
		)
	}

	if containsAny(lower, speakerMarkers) {
		kinds = append(kinds, PageKindSpeaker)
	}
	if containsAny(lower, scheduleMarkers) {
		kinds = append(kinds, PageKindSchedule)
	}

	if len(kinds) == 0 {
		kinds = append(kinds, PageKindUnknown)
	}
	return kinds
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
