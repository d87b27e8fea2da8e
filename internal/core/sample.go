package core

import "time"

// SampleData returns a small demonstration library, newest first, with
// timestamps relative to now.
func SampleData(now time.Time) ([]UploadedDocumentProfile, []GeneratedPRD, []ActivityEntry) {
	docs := []UploadedDocumentProfile{
		{
			ID:            "sample-doc-checkout",
			FileName:      "checkout-redesign-prd.pdf",
			DocumentTitle: "Checkout Redesign PRD",
			Sections: []DocumentSection{
				{Heading: "Problem Statement", Level: 1, Summary: "Cart abandonment sits at 71% on mobile."},
				{Heading: "Goals & Non-Goals", Level: 1, Summary: "One-page checkout; loyalty changes are out of scope."},
				{Heading: "Success Metrics", Level: 1, Summary: "Conversion, time to purchase and payment error rate."},
				{Heading: "Rollout", Level: 2, Summary: "Staged release behind a feature flag."},
			},
			SuggestedTags: SuggestedTags{
				Industry:       "E-commerce",
				ProductType:    "B2C",
				Complexity:     "Medium",
				StructuralType: "Feature Spec",
			},
			KPIFrameworks:      []string{"AARRR", "North Star Metric"},
			FormattingPatterns: FormattingPatterns{Tone: "Direct", Style: "Short sections with metric tables"},
			ContentSummary:     "Proposes a single-page mobile checkout to cut abandonment, with staged rollout and conversion targets.",
			UploadedAt:         now.Add(-26 * time.Hour),
			Starred:            true,
			CustomTags:         []string{"mobile", "reference"},
		},
		{
			ID:            "sample-doc-claims",
			FileName:      "claims-portal-requirements.docx",
			DocumentTitle: "Claims Portal Requirements",
			Sections: []DocumentSection{
				{Heading: "Background", Level: 1, Summary: "Claims are filed by phone and take 9 days to triage."},
				{Heading: "User Stories", Level: 1, Summary: "Policyholders, adjusters and auditors."},
				{Heading: "Compliance", Level: 1, Summary: "HIPAA handling of attached medical records."},
			},
			SuggestedTags: SuggestedTags{
				Industry:       "Healthcare",
				ProductType:    "B2C",
				Complexity:     "High",
				StructuralType: "Platform PRD",
			},
			KPIFrameworks:      []string{"HEART"},
			FormattingPatterns: FormattingPatterns{Tone: "Formal", Style: "Numbered requirements"},
			ContentSummary:     "Requirements for a self-service claims portal with document upload and adjuster workflows.",
			UploadedAt:         now.Add(-3 * 24 * time.Hour),
			CustomTags:         []string{},
		},
		{
			ID:            "sample-doc-billing",
			FileName:      "usage-billing.txt",
			DocumentTitle: "Usage-Based Billing",
			Sections: []DocumentSection{
				{Heading: "Pricing Model", Level: 1, Summary: "Metered API calls with monthly commitments."},
				{Heading: "Technical Scope", Level: 1, Summary: "Metering pipeline and invoice generation."},
			},
			SuggestedTags: SuggestedTags{
				Industry:       "SaaS",
				ProductType:    "B2B",
				Complexity:     "High",
				StructuralType: "Technical PRD",
			},
			KPIFrameworks:      []string{"Net Revenue Retention"},
			FormattingPatterns: FormattingPatterns{Tone: "Technical", Style: "Diagrams and API tables"},
			ContentSummary:     "Moves enterprise customers from seat pricing to metered billing.",
			UploadedAt:         now.Add(-6 * 24 * time.Hour),
			CustomTags:         []string{},
		},
	}

	prd := GeneratedPRD{
		ID:          "sample-prd-fleet",
		Title:       "FleetPulse - Product Requirements Document",
		Industry:    "Technology",
		ProductType: "B2B",
		DetailLevel: "Standard",
		MarkdownBody: `# FleetPulse - Product Requirements Document

## Executive Summary

FleetPulse gives logistics managers a **live view** of vehicle health so breakdowns are caught before they strand a delivery.

## KPIs & Metrics

| Metric | Baseline | Target |
|---|---|---|
| Unplanned downtime | 14 h/month | 6 h/month |
| Alert precision | - | 85% |

## Risks

- Telematics coverage differs between vehicle makes
- *Alert fatigue* if thresholds are tuned too low
`,
		Sections: []PRDSection{
			{Title: "Executive Summary", Anchor: "executive-summary"},
			{Title: "KPIs & Metrics", Anchor: "kpis--metrics"},
			{Title: "Risks", Anchor: "risks"},
		},
		Metadata: PRDMetadata{
			WordCount:              78,
			EmphasisAreas:          []string{"KPIs & Metrics", "Risk Analysis"},
			ReferenceDocumentsUsed: 2,
		},
		Artifacts: nil,
		CreatedAt: now.Add(-2 * time.Hour),
	}

	activity := []ActivityEntry{
		{Kind: ActivityGeneration, Title: prd.Title, Timestamp: prd.CreatedAt},
		{Kind: ActivityUpload, Title: docs[0].DocumentTitle, Timestamp: docs[0].UploadedAt},
		{Kind: ActivityUpload, Title: docs[1].DocumentTitle, Timestamp: docs[1].UploadedAt},
		{Kind: ActivityUpload, Title: docs[2].DocumentTitle, Timestamp: docs[2].UploadedAt},
	}

	return docs, []GeneratedPRD{prd}, activity
}

// UploadActivity and GenerationActivity build the activity entry for a new
// document or PRD.
func UploadActivity(doc UploadedDocumentProfile) ActivityEntry {
	return ActivityEntry{Kind: ActivityUpload, Title: doc.DocumentTitle, Timestamp: doc.UploadedAt}
}

func GenerationActivity(p GeneratedPRD) ActivityEntry {
	return ActivityEntry{Kind: ActivityGeneration, Title: p.Title, Timestamp: p.CreatedAt}
}
