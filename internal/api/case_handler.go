package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veriscope/veriscope-api/internal/auth"
	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/pipeline"
	"github.com/veriscope/veriscope-api/internal/services"
)

// CaseHandler handles court-case search endpoints
type CaseHandler struct {
	caseService services.CaseService
}

// NewCaseHandler creates a new case handler
func NewCaseHandler(caseService services.CaseService) *CaseHandler {
	return &CaseHandler{
		caseService: caseService,
	}
}

// CaseSearchRequest is one search-and-view request. The profile drives the
// upstream search (deduplicated on repeats) and the options drive the local
// result pipeline.
type CaseSearchRequest struct {
	Profile models.SearchProfile `json:"profile" binding:"required"`
	Options pipeline.Options     `json:"options"`
}

// Search runs the court-case search and returns the requested result page
func (h *CaseHandler) Search(c *gin.Context) {
	var req CaseSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if req.Profile.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile name is required"})
		return
	}

	userID, _ := auth.CurrentUserID(c)

	result, err := h.caseService.Search(c.Request.Context(), userID, req.Profile)
	if err != nil {
		writeError(c, err)
		return
	}

	page := h.caseService.View(result, req.Options)

	c.JSON(http.StatusOK, gin.H{
		"page":       page,
		"statistics": result.Statistics,
		"counts": gin.H{
			"all":      len(result.All),
			"matches":  len(result.Matches),
			"rejected": len(result.Rejected),
		},
	})
}
