package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	appattachment "github.com/eujim/backend/internal/application/attachment"
	"github.com/eujim/backend/internal/domain/attachment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadBytes caps each uploaded document part
const maxUploadBytes = 7 << 20

// dateLayout is the wire format for intake form dates
const dateLayout = "2006-01-02"

// ApplicationHandler handles the public intake and status endpoints
type ApplicationHandler struct {
	BaseHandler
	attacheeService   *appattachment.Service
	evaluationService *appattachment.EvaluationService
	storage           appattachment.FileStorage
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(
	attacheeService *appattachment.Service,
	evaluationService *appattachment.EvaluationService,
	storage appattachment.FileStorage,
) *ApplicationHandler {
	return &ApplicationHandler{
		attacheeService:   attacheeService,
		evaluationService: evaluationService,
		storage:           storage,
	}
}

// SubmitApplicationRequest represents the multipart intake form fields.
// Document uploads travel as separate file parts next to these.
type SubmitApplicationRequest struct {
	FirstName         string    `form:"first_name" binding:"required,min=2,max=100"`
	LastName          string    `form:"last_name" binding:"required,min=2,max=100"`
	NationalID        string    `form:"national_id_number" binding:"required,min=5,max=30"`
	Email             string    `form:"email" binding:"required,email,max=200"`
	Phone             string    `form:"phone" binding:"required,max=50"`
	Gender            string    `form:"gender" binding:"required,oneof=Male Female Other"`
	Institution       string    `form:"institution" binding:"required,max=200"`
	DateOfBirth       string    `form:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	StartDate         time.Time `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate           time.Time `form:"end_date" time_format:"2006-01-02" binding:"required"`
	ConsentDataPolicy bool      `form:"consent_data_policy"`
	ConsentTerms      bool      `form:"consent_terms"`
	ConsentMarketing  bool      `form:"consent_marketing"`
}

// CheckStatusRequest represents a public status lookup
type CheckStatusRequest struct {
	Query string `json:"query" binding:"required,min=3,max=200"`
}

// FeedbackRequest represents the student exit feedback form. Field names
// match the feedback response so clients can round-trip the payload.
type FeedbackRequest struct {
	MentorshipQuality    int    `json:"mentorship_quality" binding:"required,min=1,max=5"`
	EnvironmentRating    int    `json:"environment_rating" binding:"required,min=1,max=5"`
	ResourceAvailability int    `json:"resource_availability" binding:"required,min=1,max=5"`
	Comments             string `json:"comments" binding:"max=2000"`
}

// Submit godoc
// @Summary      Submit an attachment application
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Router       /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if !req.ConsentDataPolicy || !req.ConsentTerms {
		h.BadRequest(c, "Data policy and terms consent are required")
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			h.BadRequest(c, "Invalid date of birth")
			return
		}
		dob = &parsed
	}

	docs, err := h.stageDocuments(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := appattachment.CreateAttacheeRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		NationalID:  req.NationalID,
		Email:       req.Email,
		Phone:       req.Phone,
		Gender:      req.Gender,
		Institution: req.Institution,
		DateOfBirth: dob,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Documents:   docs,
		Consent: attachment.Consent{
			DataPolicy: req.ConsentDataPolicy,
			Terms:      req.ConsentTerms,
			Marketing:  req.ConsentMarketing,
		},
	}

	resp, err := h.attacheeService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// stageDocuments uploads the intake file parts and returns their storage
// keys. The national id copy, introduction letter and CV are mandatory, the
// signed contract arrives later for most applicants.
func (h *ApplicationHandler) stageDocuments(c *gin.Context) (attachment.DocumentRefs, error) {
	var refs attachment.DocumentRefs
	batch := uuid.New().String()

	required := []struct {
		part string
		key  *string
	}{
		{"national_id_document", &refs.IDDocumentKey},
		{"introduction_letter", &refs.IntroLetterKey},
		{"curriculum_vitae", &refs.CurriculumVitaeKey},
	}
	for _, doc := range required {
		file, err := c.FormFile(doc.part)
		if err != nil {
			return refs, fmt.Errorf("missing required document %q", doc.part)
		}
		key, err := h.uploadPart(c, batch, doc.part, file)
		if err != nil {
			return refs, err
		}
		*doc.key = key
	}

	if file, err := c.FormFile("signed_contract"); err == nil {
		key, err := h.uploadPart(c, batch, "signed_contract", file)
		if err != nil {
			return refs, err
		}
		refs.SignedContractKey = key
	}

	return refs, nil
}

func (h *ApplicationHandler) uploadPart(c *gin.Context, batch, part string, file *multipart.FileHeader) (string, error) {
	if file.Size > maxUploadBytes {
		return "", fmt.Errorf("document %q exceeds the upload size limit", part)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("cannot read document %q", part)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("cannot read document %q", part)
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("applications/%s/%s%s", batch, part, strings.ToLower(path.Ext(file.Filename)))
	if err := h.storage.Upload(c.Request.Context(), key, data, contentType); err != nil {
		return "", fmt.Errorf("failed to store document %q", part)
	}
	return key, nil
}

// Track godoc
// @Summary      Look up an application by tracking reference
// @Tags         applications
// @Produce      json
// @Router       /applications/track/{ref} [get]
func (h *ApplicationHandler) Track(c *gin.Context) {
	ref := c.Param("ref")
	resp, err := h.attacheeService.GetByTrackingID(c.Request.Context(), ref)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CheckStatus godoc
// @Summary      Status lookup by tracking id, email or national id
// @Tags         applications
// @Accept       json
// @Produce      json
// @Router       /applications/check-status [post]
func (h *ApplicationHandler) CheckStatus(c *gin.Context) {
	var req CheckStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.attacheeService.CheckStatus(c.Request.Context(), req.Query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// SubmitFeedback godoc
// @Summary      Submit student exit feedback
// @Tags         applications
// @Accept       json
// @Produce      json
// @Router       /applications/{id}/feedback [post]
func (h *ApplicationHandler) SubmitFeedback(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid application ID format")
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.evaluationService.UpsertFeedback(c.Request.Context(), id, appattachment.RatingRequest{
		First:    req.MentorshipQuality,
		Second:   req.EnvironmentRating,
		Third:    req.ResourceAvailability,
		Comments: req.Comments,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterRoutes registers the public application routes
func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	apps := rg.Group("/applications")
	{
		apps.POST("", h.Submit)
		apps.GET("/track/:ref", h.Track)
		apps.POST("/check-status", h.CheckStatus)
		apps.POST("/:id/feedback", h.SubmitFeedback)
	}
}
