package core

import (
	"math"
	"strings"
)

// DocumentFilter narrows the document library.
type DocumentFilter struct {
	// Query matches title or file name, case-insensitively.
	Query string
	// Industry matches the suggested industry tag; "" or "all" matches all.
	Industry string
	// StarredOnly keeps starred documents.
	StarredOnly bool
}

// FilterDocuments returns the documents matching f, in their original order.
func FilterDocuments(docs []UploadedDocumentProfile, f DocumentFilter) []UploadedDocumentProfile {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	industry := strings.TrimSpace(f.Industry)
	if strings.EqualFold(industry, "all") {
		industry = ""
	}

	out := []UploadedDocumentProfile{}
	for _, d := range docs {
		if query != "" &&
			!strings.Contains(strings.ToLower(d.DocumentTitle), query) &&
			!strings.Contains(strings.ToLower(d.FileName), query) {
			continue
		}
		if industry != "" && !strings.EqualFold(d.SuggestedTags.Industry, industry) {
			continue
		}
		if f.StarredOnly && !d.Starred {
			continue
		}
		out = append(out, d)
	}
	return out
}

// RecentActivityLimit is how many activity entries the dashboard shows.
const RecentActivityLimit = 8

// Dashboard summarises the session.
type Dashboard struct {
	Documents        int             `json:"documents"`
	PRDs             int             `json:"prds"`
	Starred          int             `json:"starred"`
	AvgReferenceDocs *int            `json:"avg_reference_docs"`
	RecentActivity   []ActivityEntry `json:"recent_activity"`
}

// Summarize computes the dashboard figures. AvgReferenceDocs is nil when
// there are no PRDs.
func Summarize(docs []UploadedDocumentProfile, prds []GeneratedPRD, activity []ActivityEntry) Dashboard {
	d := Dashboard{
		Documents:      len(docs),
		PRDs:           len(prds),
		RecentActivity: []ActivityEntry{},
	}
	for _, doc := range docs {
		if doc.Starred {
			d.Starred++
		}
	}
	if len(prds) > 0 {
		total := 0
		for _, p := range prds {
			total += p.Metadata.ReferenceDocumentsUsed
		}
		avg := int(math.Round(float64(total) / float64(len(prds))))
		d.AvgReferenceDocs = &avg
	}
	n := min(len(activity), RecentActivityLimit)
	d.RecentActivity = append(d.RecentActivity, activity[:n]...)
	return d
}
