package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veriscope/veriscope-api/internal/auth"
	"github.com/veriscope/veriscope-api/internal/services"
)

// ExportHandler handles report download and email endpoints
type ExportHandler struct {
	verification services.VerificationService
	exports      services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(verification services.VerificationService, exports services.ExportService) *ExportHandler {
	return &ExportHandler{
		verification: verification,
		exports:      exports,
	}
}

// DownloadBusinessReport generates a business verification report and streams
// it as an attachment. Format is xlsx, pdf or csv.
func (h *ExportHandler) DownloadBusinessReport(c *gin.Context) {
	gstin := c.Param("gstin")
	if gstin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "GSTIN is required"})
		return
	}

	format := c.DefaultQuery("format", services.FormatExcel)
	userID, _ := auth.CurrentUserID(c)

	verification, err := h.verification.VerifyBusiness(c.Request.Context(), userID, gstin, c.Query("cin"))
	if err != nil {
		writeError(c, err)
		return
	}

	report, err := h.exports.BusinessReport(format, verification)
	if err != nil {
		writeError(c, err)
		return
	}

	writeAttachment(c, report)
}

// DownloadFSSAIReport generates a food-license report and streams it
func (h *ExportHandler) DownloadFSSAIReport(c *gin.Context) {
	license := c.Param("license")
	if license == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "License number is required"})
		return
	}

	format := c.DefaultQuery("format", services.FormatExcel)
	userID, _ := auth.CurrentUserID(c)

	verification, err := h.verification.VerifyFSSAI(c.Request.Context(), userID, license)
	if err != nil {
		writeError(c, err)
		return
	}

	report, err := h.exports.FSSAIReport(format, verification)
	if err != nil {
		writeError(c, err)
		return
	}

	writeAttachment(c, report)
}

// EmailReportRequest asks for a report to be generated and mailed
type EmailReportRequest struct {
	GSTIN     string `json:"gstin" binding:"required"`
	CIN       string `json:"cin"`
	Format    string `json:"format"`
	Recipient string `json:"recipient" binding:"required,email"`
}

// EmailBusinessReport generates a business report and emails it as an attachment
func (h *ExportHandler) EmailBusinessReport(c *gin.Context) {
	var req EmailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	format := req.Format
	if format == "" {
		format = services.FormatPDF
	}

	userID, _ := auth.CurrentUserID(c)

	verification, err := h.verification.VerifyBusiness(c.Request.Context(), userID, req.GSTIN, req.CIN)
	if err != nil {
		writeError(c, err)
		return
	}

	report, err := h.exports.BusinessReport(format, verification)
	if err != nil {
		writeError(c, err)
		return
	}

	subject := "Business Verification Report - " + verification.Record.LegalName
	if err := h.exports.EmailReport(c.Request.Context(), req.Recipient, subject, report); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Report sent",
		"recipient": req.Recipient,
		"filename":  report.Filename,
	})
}

func writeAttachment(c *gin.Context, report *services.Report) {
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
