package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eujim/backend/internal/application/bulk"
	"github.com/gin-gonic/gin"
)

// maxImportBytes caps an uploaded CSV file
const maxImportBytes = 7 << 20

// BulkHandler handles CSV export and import for the admin dashboard
type BulkHandler struct {
	BaseHandler
	exportService *bulk.ExportService
	importService *bulk.ImportService
	jwtAuth       gin.HandlerFunc
}

// NewBulkHandler creates a new BulkHandler
func NewBulkHandler(exportService *bulk.ExportService, importService *bulk.ImportService, jwtAuth gin.HandlerFunc) *BulkHandler {
	return &BulkHandler{
		exportService: exportService,
		importService: importService,
		jwtAuth:       jwtAuth,
	}
}

// Export godoc
// @Summary      Export applications as CSV, honoring the dashboard filters
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Router       /admin/applications/export [get]
func (h *BulkHandler) Export(c *gin.Context) {
	filter := bulk.ExportFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	data, err := h.exportService.Export(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	name := h.exportService.FileName(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv", data)
}

// Import godoc
// @Summary      Import applications from an uploaded CSV file
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/applications/import [post]
func (h *BulkHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing CSV file upload")
		return
	}
	if file.Size > maxImportBytes {
		h.BadRequest(c, "CSV file exceeds the upload size limit")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read CSV file upload")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.BadRequest(c, "Cannot read CSV file upload")
		return
	}

	result, err := h.importService.Import(c.Request.Context(), data)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers the admin bulk routes
func (h *BulkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(h.jwtAuth)
	{
		admin.GET("/applications/export", h.Export)
		admin.POST("/applications/import", h.Import)
	}
}
