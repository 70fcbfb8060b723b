package extract

import (
	"go.uber.org/zap"

	"github.com/sells-group/conference-cli/internal/model"
)

// ExtractDocument classifies every page of a document, runs all matching
// extraction strategies, and returns the document's deduplicated
// records. Extraction is a pure function of the document: no shared
// state, safe to run concurrently across documents.
func ExtractDocument(doc model.Document, cfg ClassifierConfig) []model.Record {
	var records []model.Record

	for _, page := range doc.Pages {
		kinds := Classify(page.Text, len(page.Blocks), cfg)
		for _, kind := range kinds {
			var recs []model.Record
			switch kind {
			case PageKindAttendee:
				recs = ExtractAttendees(doc.Name, page)
			case PageKindSpeaker:
				recs = ExtractSpeakers(doc.Name, page)
			case PageKindSchedule:
				recs = ExtractScheduleLines(doc.Name, page)
			case PageKindUnknown:
				recs = ExtractFallback(doc.Name, page)
			}
			records = append(records, recs...)

			if len(recs) > 0 {
				zap.L().Debug("extract: page records",
					zap.String("document", doc.Name),
					zap.Int("page", page.Index),
					zap.String("kind", string(kind)),
					zap.Int("records", len(recs)),
				)
			}
		}
	}

	deduped := DeduplicateRecords(records)
	zap.L().Info("extract: document complete",
		zap.String("document", doc.Name),
		zap.Int("raw_records", len(records)),
		zap.Int("records", len(deduped)),
	)
	return deduped
}
