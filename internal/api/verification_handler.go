package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veriscope/veriscope-api/internal/auth"
	"github.com/veriscope/veriscope-api/internal/services"
)

// VerificationHandler handles registry lookup endpoints
type VerificationHandler struct {
	verification services.VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verification services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		verification: verification,
	}
}

// VerifyBusiness looks up a GSTIN and returns the scored dashboard payload.
// An optional cin query parameter enriches the score with company financials.
func (h *VerificationHandler) VerifyBusiness(c *gin.Context) {
	gstin := c.Param("gstin")
	if gstin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "GSTIN is required"})
		return
	}

	userID, _ := auth.CurrentUserID(c)

	result, err := h.verification.VerifyBusiness(c.Request.Context(), userID, gstin, c.Query("cin"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// VerifyIdentity looks up a personal identity profile by PAN
func (h *VerificationHandler) VerifyIdentity(c *gin.Context) {
	pan := c.Param("pan")
	if pan == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PAN is required"})
		return
	}

	userID, _ := auth.CurrentUserID(c)

	record, err := h.verification.VerifyIdentity(c.Request.Context(), userID, pan)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// VerifyFSSAI looks up a food-business license by number
func (h *VerificationHandler) VerifyFSSAI(c *gin.Context) {
	license := c.Param("license")
	if license == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "License number is required"})
		return
	}

	userID, _ := auth.CurrentUserID(c)

	result, err := h.verification.VerifyFSSAI(c.Request.Context(), userID, license)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchNews runs a news search for a business name
func (h *VerificationHandler) SearchNews(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	userID, _ := auth.CurrentUserID(c)

	articles, err := h.verification.SearchNews(c.Request.Context(), userID, query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles, "count": len(articles)})
}

// History returns a page of the user's past lookups
func (h *VerificationHandler) History(c *gin.Context) {
	userID, _ := auth.CurrentUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.verification.History(userID, limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries, "count": len(entries)})
}
