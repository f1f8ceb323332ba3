package handler

import (
	"fmt"
	"net/http"

	appdocument "github.com/eujim/backend/internal/application/document"
	"github.com/eujim/backend/internal/domain/document"
	"github.com/gin-gonic/gin"
)

// DocumentHandler serves the status-gated PDF documents. The :id path
// segment carries the public tracking reference, not the aggregate UUID,
// because document links are shared in notification emails.
type DocumentHandler struct {
	BaseHandler
	documentService *appdocument.Service
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *appdocument.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// List godoc
// @Summary      List documents and their availability for an application
// @Tags         documents
// @Produce      json
// @Router       /applications/{id}/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documentService.ListAvailable(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, docs)
}

// Download godoc
// @Summary      Download a generated PDF document
// @Tags         documents
// @Produce      application/pdf
// @Router       /applications/{id}/documents/{kind} [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	kind := document.Kind(c.Param("kind"))
	if !kind.IsValid() {
		h.BadRequest(c, "Unknown document kind")
		return
	}

	file, err := h.documentService.Generate(c.Request.Context(), c.Param("id"), kind)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// RegisterRoutes registers the public document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/applications/:id/documents")
	{
		docs.GET("", h.List)
		docs.GET("/:kind", h.Download)
	}
}
