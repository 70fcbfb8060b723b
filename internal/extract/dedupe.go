package extract

import (
	"sort"
	"strings"

	"github.com/sells-group/conference-cli/internal/model"
)

// dedupeKey identifies a record group within one document: the company's
// canonical key plus the case-insensitive contact identity. Contact
// identity participates so that collapsing same-company records can
// never drop a distinct person.
type dedupeKey struct {
	company string
	contact string
}

// DeduplicateRecords collapses near-duplicate records within a single
// document. On collision the higher-confidence record wins its scalar
// fields, team sizes take the maximum where defined, and flags are
// unioned. First-seen order is preserved.
func DeduplicateRecords(records []model.Record) []model.Record {
	best := make(map[dedupeKey]model.Record)
	var order []dedupeKey

	for _, rec := range records {
		key := dedupeKey{
			company: CanonicalKey(rec.Company),
			contact: strings.ToLower(rec.ContactName) + "\x00" + strings.ToLower(rec.ContactTitle),
		}

		existing, ok := best[key]
		if !ok {
			best[key] = rec
			order = append(order, key)
			continue
		}

		merged := existing
		if rec.Confidence > existing.Confidence {
			merged = rec
		}
		if existing.TeamSize > merged.TeamSize {
			merged.TeamSize = existing.TeamSize
		}
		if rec.TeamSize > merged.TeamSize {
			merged.TeamSize = rec.TeamSize
		}
		merged.Flags = unionFlags(existing.Flags, rec.Flags)
		best[key] = merged
	}

	result := make([]model.Record, 0, len(order))
	for _, key := range order {
		result = append(result, best[key])
	}
	return result
}

// unionFlags merges two flag sets into a sorted slice.
func unionFlags(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	for _, f := range a {
		seen[f] = true
	}
	for _, f := range b {
		seen[f] = true
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
