package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/homevest/api/internal/engine"
	apierrors "github.com/homevest/api/internal/errors"
	"github.com/homevest/api/internal/middleware"
	"github.com/homevest/api/internal/models"
	"github.com/homevest/api/internal/services"
)

// AnalysisHandler handles analysis-related HTTP requests.
type AnalysisHandler struct {
	service services.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler instance.
func NewAnalysisHandler(service services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
	}
}

// CreateAnalysisRequest represents the body of the create-analysis endpoint.
type CreateAnalysisRequest struct {
	Property *models.PropertyInput        `json:"property" binding:"required"`
	Profile  *models.UserFinancialProfile `json:"profile" binding:"required"`

	// RequireNarrative makes generator failures fatal instead of falling
	// back to the locally computed narrative.
	RequireNarrative bool `json:"requireNarrative"`
}

// ListAnalysesRequest represents the query parameters for the list endpoint.
type ListAnalysesRequest struct {
	Zip   string `form:"zip"`
	Limit int    `form:"limit,default=20" binding:"omitempty,min=1,max=50"`
}

// ListAnalysesResponse represents the response for the list endpoint.
type ListAnalysesResponse struct {
	Analyses []models.AnalysisSummary `json:"analyses"`
	Count    int                      `json:"count"`
}

// Create handles POST /api/v1/analyses.
// It runs the full analysis pipeline for one property and financial profile
// and persists the outcome.
func (h *AnalysisHandler) Create(c *gin.Context) {
	log := middleware.GetLogger(c)

	// Bind and validate the request body
	var req CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log != nil {
		log.Info("Processing analysis request", map[string]interface{}{
			"zip_code":     req.Property.ZipCode,
			"price":        req.Property.Price,
			"profile_kind": string(req.Profile.Kind),
		})
	}

	record, err := h.service.Analyze(c.Request.Context(), services.AnalyzeRequest{
		Property:         req.Property,
		Profile:          req.Profile,
		RequireNarrative: req.RequireNarrative,
	})
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidInput):
			apierrors.BadRequest(c, err.Error(), nil)
		case errors.Is(err, engine.ErrIncompleteProfile):
			apierrors.IncompleteProfile(c, err.Error())
		case errors.Is(err, services.ErrNarrativeUnavailable):
			apierrors.BadGateway(c, "Advisor narrative could not be generated", err)
		default:
			apierrors.InternalServerError(c, "Failed to run analysis", err)
		}
		return
	}

	c.JSON(http.StatusCreated, record)
}

// Get handles GET /api/v1/analyses/:id.
func (h *AnalysisHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Analysis ID must be a valid UUID", nil)
		return
	}

	record, err := h.service.GetAnalysis(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisNotFound) {
			apierrors.NotFound(c, "No analysis found with this ID")
			return
		}
		apierrors.InternalServerError(c, "Failed to load analysis", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// List handles GET /api/v1/analyses.
// Results are newest first and may be filtered by zip code.
func (h *AnalysisHandler) List(c *gin.Context) {
	var req ListAnalysesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	summaries, err := h.service.ListAnalyses(c.Request.Context(), req.Zip, req.Limit)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list analyses", err)
		return
	}

	c.JSON(http.StatusOK, ListAnalysesResponse{
		Analyses: summaries,
		Count:    len(summaries),
	})
}

// Delete handles DELETE /api/v1/analyses/:id.
func (h *AnalysisHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Analysis ID must be a valid UUID", nil)
		return
	}

	if err := h.service.DeleteAnalysis(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrAnalysisNotFound) {
			apierrors.NotFound(c, "No analysis found with this ID")
			return
		}
		apierrors.InternalServerError(c, "Failed to delete analysis", err)
		return
	}

	c.Status(http.StatusNoContent)
}
