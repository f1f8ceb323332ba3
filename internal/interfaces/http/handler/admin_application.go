package handler

import (
	"sort"
	"time"

	appattachment "github.com/eujim/backend/internal/application/attachment"
	"github.com/eujim/backend/internal/interfaces/http/dto"
	"github.com/eujim/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// uploadLinkTTL bounds how long a staff download link stays valid
const uploadLinkTTL = 15 * time.Minute

// AdminApplicationHandler handles the staff dashboard endpoints
type AdminApplicationHandler struct {
	BaseHandler
	attacheeService   *appattachment.Service
	evaluationService *appattachment.EvaluationService
	analyticsService  *appattachment.AnalyticsService
	storage           appattachment.FileStorage
	jwtAuth           gin.HandlerFunc
}

// NewAdminApplicationHandler creates a new AdminApplicationHandler
func NewAdminApplicationHandler(
	attacheeService *appattachment.Service,
	evaluationService *appattachment.EvaluationService,
	analyticsService *appattachment.AnalyticsService,
	storage appattachment.FileStorage,
	jwtAuth gin.HandlerFunc,
) *AdminApplicationHandler {
	return &AdminApplicationHandler{
		attacheeService:   attacheeService,
		evaluationService: evaluationService,
		analyticsService:  analyticsService,
		storage:           storage,
		jwtAuth:           jwtAuth,
	}
}

// UpdateStatusRequest represents an admin status decision
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=2000"`
}

// EvaluationRequest represents the staff evaluation form
type EvaluationRequest struct {
	TechnicalCompetence int    `json:"technical_competence" binding:"required,min=1,max=5"`
	Discipline          int    `json:"discipline" binding:"required,min=1,max=5"`
	Teamwork            int    `json:"teamwork" binding:"required,min=1,max=5"`
	Comments            string `json:"comments" binding:"max=2000"`
}

// List godoc
// @Summary      List applications with search, status filter and pagination
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/applications [get]
func (h *AdminApplicationHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := appattachment.ListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Status:   c.Query("status"),
	}

	items, total, err := h.attacheeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, req.Page, req.PageSize)
}

// Get godoc
// @Summary      Get a single application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/applications/{id} [get]
func (h *AdminApplicationHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	resp, err := h.attacheeService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UploadLink is a short-lived download link for one file the applicant
// submitted with the intake form
type UploadLink struct {
	Document  string    `json:"document"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Uploads godoc
// @Summary      Download links for the applicant's submitted files
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/applications/{id}/uploads [get]
func (h *AdminApplicationHandler) Uploads(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	resp, err := h.attacheeService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	refs := map[string]string{
		"national_id_document": resp.Documents.IDDocumentKey,
		"introduction_letter":  resp.Documents.IntroLetterKey,
		"curriculum_vitae":     resp.Documents.CurriculumVitaeKey,
		"signed_contract":      resp.Documents.SignedContractKey,
	}

	links := make([]UploadLink, 0, len(refs))
	for document, key := range refs {
		if key == "" {
			continue
		}
		url, expiresAt, err := h.storage.GenerateDownloadURL(c.Request.Context(), key, uploadLinkTTL)
		if err != nil {
			h.InternalError(c, "Could not generate download link")
			return
		}
		links = append(links, UploadLink{Document: document, URL: url, ExpiresAt: expiresAt})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Document < links[j].Document })

	h.Success(c, links)
}

// UpdateStatus godoc
// @Summary      Move an application through the status workflow
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/applications/{id}/status [put]
func (h *AdminApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.attacheeService.Transition(c.Request.Context(), id, appattachment.TransitionRequest{
		Status: req.Status,
		Notes:  req.Notes,
		Actor:  middleware.GetJWTUsername(c),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpsertEvaluation godoc
// @Summary      Record or replace the staff evaluation
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/applications/{id}/evaluation [put]
func (h *AdminApplicationHandler) UpsertEvaluation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.evaluationService.UpsertEvaluation(c.Request.Context(), id, appattachment.RatingRequest{
		First:    req.TechnicalCompetence,
		Second:   req.Discipline,
		Third:    req.Teamwork,
		Comments: req.Comments,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetEvaluation godoc
// @Summary      Fetch the staff evaluation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/applications/{id}/evaluation [get]
func (h *AdminApplicationHandler) GetEvaluation(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	resp, err := h.evaluationService.GetEvaluation(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetFeedback godoc
// @Summary      Fetch the student feedback
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/applications/{id}/feedback [get]
func (h *AdminApplicationHandler) GetFeedback(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	resp, err := h.evaluationService.GetFeedback(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @Summary      Delete an application record
// @Tags         admin
// @Security     BearerAuth
// @Router       /admin/applications/{id} [delete]
func (h *AdminApplicationHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	if err := h.attacheeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Stats godoc
// @Summary      Dashboard status counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/applications/stats [get]
func (h *AdminApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.analyticsService.DashboardStats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stats)
}

// Analytics godoc
// @Summary      Institution and gender breakdowns
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/analytics/universities [get]
func (h *AdminApplicationHandler) Analytics(c *gin.Context) {
	resp, err := h.analyticsService.UniversityAnalytics(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers the JWT-protected admin routes
func (h *AdminApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(h.jwtAuth)
	{
		admin.GET("/applications", h.List)
		admin.GET("/applications/stats", h.Stats)
		admin.GET("/applications/:id", h.Get)
		admin.PUT("/applications/:id/status", h.UpdateStatus)
		admin.PUT("/applications/:id/evaluation", h.UpsertEvaluation)
		admin.GET("/applications/:id/evaluation", h.GetEvaluation)
		admin.GET("/applications/:id/feedback", h.GetFeedback)
		admin.GET("/applications/:id/uploads", h.Uploads)
		admin.DELETE("/applications/:id", h.Delete)
		admin.GET("/analytics/universities", h.Analytics)
	}
}
