package attachment

import (
	"errors"
	"testing"

	"github.com/eujim/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertDomainCode asserts err is a DomainError with the given code
func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T", err)
	assert.Equal(t, code, domainErr.Code)
}

func TestNewEvaluation(t *testing.T) {
	t.Run("creates evaluation with valid ratings", func(t *testing.T) {
		e, err := NewEvaluation(uuid.New(), 4, 5, 3, "solid performer")
		require.NoError(t, err)
		assert.Equal(t, 4, e.TechnicalCompetence)
		assert.Equal(t, "4", e.AverageScore().String())
	})

	t.Run("rejects out-of-scale ratings", func(t *testing.T) {
		_, err := NewEvaluation(uuid.New(), 0, 3, 3, "")
		assertDomainCode(t, err, "INVALID_RATING")

		_, err = NewEvaluation(uuid.New(), 3, 6, 3, "")
		assertDomainCode(t, err, "INVALID_RATING")
	})

	t.Run("rejects empty attachee id", func(t *testing.T) {
		_, err := NewEvaluation(uuid.Nil, 3, 3, 3, "")
		assertDomainCode(t, err, "INVALID_ATTACHEE")
	})
}

func TestEvaluation_AverageScore(t *testing.T) {
	e, err := NewEvaluation(uuid.New(), 5, 4, 4, "")
	require.NoError(t, err)
	// (5+4+4)/3 = 4.333..., rounded to one decimal
	assert.Equal(t, "4.3", e.AverageScore().String())
}

func TestEvaluation_Update(t *testing.T) {
	e, err := NewEvaluation(uuid.New(), 2, 2, 2, "early days")
	require.NoError(t, err)

	require.NoError(t, e.Update(5, 5, 4, "much improved"))
	assert.Equal(t, "much improved", e.Comments)
	assert.Equal(t, "4.7", e.AverageScore().String())

	assertDomainCode(t, e.Update(5, 5, 0, ""), "INVALID_RATING")
}

func TestNewStudentFeedback(t *testing.T) {
	t.Run("creates feedback with valid ratings", func(t *testing.T) {
		f, err := NewStudentFeedback(uuid.New(), 4, 3, 5, "great mentors")
		require.NoError(t, err)
		assert.Equal(t, "4", f.OverallSatisfaction().String())
	})

	t.Run("rejects out-of-scale ratings", func(t *testing.T) {
		_, err := NewStudentFeedback(uuid.New(), 4, 3, 9, "")
		assertDomainCode(t, err, "INVALID_RATING")
	})
}

func TestStudentFeedback_Update(t *testing.T) {
	f, err := NewStudentFeedback(uuid.New(), 3, 3, 3, "ok")
	require.NoError(t, err)

	require.NoError(t, f.Update(5, 4, 4, "better resources now"))
	assert.Equal(t, "4.3", f.OverallSatisfaction().String())
	assert.Equal(t, "better resources now", f.StudentComments)
}
