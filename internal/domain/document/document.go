// Package document defines the branded documents generated for attachees and
// the status gates controlling when each may be downloaded.
package document

import (
	"fmt"

	"github.com/eujim/backend/internal/domain/attachment"
)

// Kind identifies a generated document type
type Kind string

const (
	KindGatePass             Kind = "gate_pass"
	KindIDCard               Kind = "id_card"
	KindCompletionLetter     Kind = "completion_letter"
	KindRecommendationLetter Kind = "recommendation_letter"
)

// AllKinds lists every document kind
func AllKinds() []Kind {
	return []Kind{KindGatePass, KindIDCard, KindCompletionLetter, KindRecommendationLetter}
}

// IsValid checks if the kind is a known document kind
func (k Kind) IsValid() bool {
	switch k {
	case KindGatePass, KindIDCard, KindCompletionLetter, KindRecommendationLetter:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Title returns the heading printed on the document
func (k Kind) Title() string {
	switch k {
	case KindGatePass:
		return "OFFICIAL GATE PASS & ADMISSION LETTER"
	case KindIDCard:
		return "ATTACHMENT ID CARD"
	case KindCompletionLetter:
		return "CERTIFICATE OF COMPLETION"
	case KindRecommendationLetter:
		return "LETTER OF RECOMMENDATION"
	}
	return ""
}

// FileName returns the download file name for a tracking reference
func (k Kind) FileName(trackingID string) string {
	var stem string
	switch k {
	case KindGatePass:
		stem = "GatePass"
	case KindIDCard:
		stem = "ID"
	case KindCompletionLetter:
		stem = "Completion"
	case KindRecommendationLetter:
		stem = "Recommendation"
	default:
		stem = "Document"
	}
	return fmt.Sprintf("%s_%s.pdf", stem, trackingID)
}

// AllowedFor is the gating table: each download re-checks the record's
// current status at request time. The gate pass unlocks on approval and stays
// available while the attachment runs; the ID card exists only for active
// attachees; both letters require a completed attachment.
func (k Kind) AllowedFor(status attachment.Status) bool {
	switch k {
	case KindGatePass:
		return status == attachment.StatusApproved || status == attachment.StatusInProgress
	case KindIDCard:
		return status == attachment.StatusInProgress
	case KindCompletionLetter, KindRecommendationLetter:
		return status == attachment.StatusCompleted
	}
	return false
}
