package document

import (
	"testing"

	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/stretchr/testify/assert"
)

func TestKind_IsValid(t *testing.T) {
	for _, k := range AllKinds() {
		assert.True(t, k.IsValid(), k)
	}
	assert.False(t, Kind("transcript").IsValid())
	assert.False(t, Kind("").IsValid())
}

func TestKind_FileName(t *testing.T) {
	assert.Equal(t, "GatePass_EUJ-2024-003.pdf", KindGatePass.FileName("EUJ-2024-003"))
	assert.Equal(t, "ID_EUJ-2024-003.pdf", KindIDCard.FileName("EUJ-2024-003"))
	assert.Equal(t, "Completion_EUJ-2024-003.pdf", KindCompletionLetter.FileName("EUJ-2024-003"))
	assert.Equal(t, "Recommendation_EUJ-2024-003.pdf", KindRecommendationLetter.FileName("EUJ-2024-003"))
}

func TestKind_AllowedFor(t *testing.T) {
	tests := []struct {
		kind    Kind
		status  attachment.Status
		allowed bool
	}{
		{KindGatePass, attachment.StatusPending, false},
		{KindGatePass, attachment.StatusApproved, true},
		{KindGatePass, attachment.StatusInProgress, true},
		{KindGatePass, attachment.StatusRejected, false},
		{KindGatePass, attachment.StatusCompleted, false},

		{KindIDCard, attachment.StatusApproved, false},
		{KindIDCard, attachment.StatusInProgress, true},
		{KindIDCard, attachment.StatusCompleted, false},

		{KindCompletionLetter, attachment.StatusPending, false},
		{KindCompletionLetter, attachment.StatusInProgress, false},
		{KindCompletionLetter, attachment.StatusCompleted, true},

		{KindRecommendationLetter, attachment.StatusInProgress, false},
		{KindRecommendationLetter, attachment.StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.kind.AllowedFor(tt.status))
		})
	}
}
