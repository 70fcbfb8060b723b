// Package reconcile merges extraction records from all documents into
// canonical company profiles. Merge operations are commutative and
// idempotent (max, union, dedup-append), so reconciling the same record
// set twice, or in any order, produces the same profiles.
package reconcile

import (
	"sort"
	"strings"

	"github.com/sells-group/conference-cli/internal/extract"
	"github.com/sells-group/conference-cli/internal/model"
)

// Accumulator collects records into canonical profiles keyed by the
// company's canonical key. A caller owns one Accumulator per pipeline
// run; there is no shared module state. Profiles are created on first
// sighting and mutated in place; they have no deletion path.
type Accumulator struct {
	profiles map[string]*profileState
}

type profileState struct {
	display     string
	sources     map[string]struct{}
	roles       map[model.Role]struct{}
	teamSize    int
	confidence  float64
	flags       map[string]struct{}
	contacts    []model.Contact
	contactSeen map[string]struct{}
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{profiles: make(map[string]*profileState)}
}

// Add merges one record into the accumulator. The record's company is
// already cleaned by extraction and is keyed as-is; no further suffix
// stripping happens here. Confidence and team size only ever increase;
// an unknown team size never overwrites a known one; flags union;
// contacts append unless an existing contact matches case-insensitively
// on (name, title).
func (a *Accumulator) Add(rec model.Record) {
	key := extract.CanonicalKey(rec.Company)
	if key == "" {
		return
	}
	display := extract.CollapseWhitespace(rec.Company)

	p, ok := a.profiles[key]
	if !ok {
		p = &profileState{
			display:     display,
			sources:     make(map[string]struct{}),
			roles:       make(map[model.Role]struct{}),
			flags:       make(map[string]struct{}),
			contactSeen: make(map[string]struct{}),
		}
		a.profiles[key] = p
	} else {
		p.display = betterDisplay(p.display, display)
	}

	if rec.SourceDoc != "" {
		p.sources[rec.SourceDoc] = struct{}{}
	}
	if rec.Role != "" {
		p.roles[rec.Role] = struct{}{}
	}
	if rec.TeamSize > p.teamSize {
		p.teamSize = rec.TeamSize
	}
	if rec.Confidence > p.confidence {
		p.confidence = rec.Confidence
	}
	for _, f := range rec.Flags {
		p.flags[f] = struct{}{}
	}

	if rec.ContactName != "" {
		contactKey := strings.ToLower(rec.ContactName) + "\x00" + strings.ToLower(rec.ContactTitle)
		if _, seen := p.contactSeen[contactKey]; !seen {
			p.contactSeen[contactKey] = struct{}{}
			p.contacts = append(p.contacts, model.Contact{
				Name:      rec.ContactName,
				Title:     rec.ContactTitle,
				SourceDoc: rec.SourceDoc,
			})
		}
	}
}

// AddAll merges a slice of records.
func (a *Accumulator) AddAll(records []model.Record) {
	for _, rec := range records {
		a.Add(rec)
	}
}

// Len returns the number of distinct companies accumulated so far.
func (a *Accumulator) Len() int {
	return len(a.profiles)
}

// Profiles materializes the canonical profiles sorted by canonical key.
// Sources, roles, and flags come out sorted; contacts keep admission
// order.
func (a *Accumulator) Profiles() []model.CompanyProfile {
	keys := make([]string, 0, len(a.profiles))
	for k := range a.profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]model.CompanyProfile, 0, len(keys))
	for _, k := range keys {
		p := a.profiles[k]

		sources := make([]string, 0, len(p.sources))
		for s := range p.sources {
			sources = append(sources, s)
		}
		sort.Strings(sources)

		roles := make([]model.Role, 0, len(p.roles))
		for r := range p.roles {
			roles = append(roles, r)
		}
		sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

		flags := make([]string, 0, len(p.flags))
		for f := range p.flags {
			flags = append(flags, f)
		}
		sort.Strings(flags)

		contacts := make([]model.Contact, len(p.contacts))
		copy(contacts, p.contacts)

		out = append(out, model.CompanyProfile{
			Company:    p.display,
			SourceDocs: sources,
			Roles:      roles,
			TeamSize:   p.teamSize,
			Confidence: p.confidence,
			Flags:      flags,
			Contacts:   contacts,
		})
	}
	return out
}

// betterDisplay picks the display name deterministically regardless of
// record order: the longer cleaned form wins, ties go to the
// lexicographically smaller string.
func betterDisplay(cur, cand string) string {
	if cand == "" {
		return cur
	}
	if len(cand) > len(cur) {
		return cand
	}
	if len(cand) == len(cur) && cand < cur {
		return cand
	}
	return cur
}
