package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appdocument "github.com/eujim/backend/internal/application/document"
	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRenderer struct{}

func (fakeRenderer) Render(ctx context.Context, data appdocument.RenderData) ([]byte, error) {
	return []byte("%PDF-1.4 " + string(data.Kind)), nil
}

func newDocumentTestRouter(repo *MockAttacheeRepository) *gin.Engine {
	svc := appdocument.NewService(repo, fakeRenderer{}, "https://portal.example.com", zap.NewNop())
	h := NewDocumentHandler(svc)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r
}

func TestDocumentList_PendingLocksEverything(t *testing.T) {
	repo := new(MockAttacheeRepository)
	a := newTestAttachee(t)
	repo.On("FindByTrackingID", mock.Anything, "EUJ-2024-001").Return(a, nil)

	r := newDocumentTestRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/applications/EUJ-2024-001/documents", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []appdocument.AvailableDocument `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 4)
	for _, doc := range resp.Data {
		assert.False(t, doc.Available, "kind %s should be locked while Pending", doc.Kind)
	}
}

func TestDocumentDownload_GatePassForApproved(t *testing.T) {
	repo := new(MockAttacheeRepository)
	a := newTestAttachee(t)
	_, err := a.ChangeStatus(attachment.StatusApproved, "")
	require.NoError(t, err)
	repo.On("FindByTrackingID", mock.Anything, "EUJ-2024-001").Return(a, nil)

	r := newDocumentTestRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/applications/EUJ-2024-001/documents/gate_pass", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "GatePass_EUJ-2024-001.pdf")
	assert.Contains(t, w.Body.String(), "%PDF")
}

func TestDocumentDownload_DeniedWhilePending(t *testing.T) {
	repo := new(MockAttacheeRepository)
	a := newTestAttachee(t)
	repo.On("FindByTrackingID", mock.Anything, "EUJ-2024-001").Return(a, nil)

	r := newDocumentTestRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/applications/EUJ-2024-001/documents/gate_pass", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_ELIGIBLE")
}

func TestDocumentDownload_UnknownKind(t *testing.T) {
	r := newDocumentTestRouter(new(MockAttacheeRepository))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/applications/EUJ-2024-001/documents/diploma", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
