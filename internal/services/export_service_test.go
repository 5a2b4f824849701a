package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	apperrors "github.com/veriscope/veriscope-api/internal/errors"
	"github.com/veriscope/veriscope-api/internal/metrics"
	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/pkg/config"
)

func testExportService(cfg *config.Config) ExportService {
	m := metrics.NewWith(prometheus.NewRegistry())
	return newExportService(cfg, m, zap.NewNop())
}

func sampleVerification() *BusinessVerification {
	return &BusinessVerification{
		Record: &models.BusinessRecord{
			GSTIN:       "29ABCDE1234F1Z5",
			LegalName:   "Sharma Trading Company Private Limited",
			TradeName:   "Sharma Traders",
			GSTINStatus: models.GSTINStatusActive,
		},
		Score: models.TrustScoreResult{Score: 82, Label: "Low Risk", CreditLimit: 487500},
	}
}

func TestBusinessReport_Formats(t *testing.T) {
	svc := testExportService(&config.Config{})

	tests := []struct {
		format      string
		contentType string
		magic       []byte
	}{
		{FormatExcel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte("PK")},
		{FormatPDF, "application/pdf", []byte("%PDF")},
		{FormatCSV, "text/csv", []byte("Business Name")},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			report, err := svc.BusinessReport(tt.format, sampleVerification())
			if err != nil {
				t.Fatalf("BusinessReport(%s) failed: %v", tt.format, err)
			}
			if report.ContentType != tt.contentType {
				t.Errorf("Content type %q, want %q", report.ContentType, tt.contentType)
			}
			if !bytes.HasPrefix(report.Data, tt.magic) {
				t.Errorf("Report data does not start with %q", tt.magic)
			}
			if !strings.HasSuffix(report.Filename, "."+tt.format) {
				t.Errorf("Filename %q missing .%s extension", report.Filename, tt.format)
			}
			if !strings.HasPrefix(report.Filename, "business-verification-") {
				t.Errorf("Unexpected filename %q", report.Filename)
			}
		})
	}
}

func TestBusinessReport_UnsupportedFormat(t *testing.T) {
	svc := testExportService(&config.Config{})

	_, err := svc.BusinessReport("docx", sampleVerification())
	expectAppError(t, err, apperrors.ErrCodeInvalidInput)
}

func TestFSSAIReport(t *testing.T) {
	svc := testExportService(&config.Config{})
	v := &FSSAIVerification{
		Record: &models.FSSAIRecord{
			LicenseNumber: "10019022001343",
			BusinessName:  "Annapurna Foods",
			Status:        models.FSSAIStatusActive,
		},
		Score: 70,
		Label: "Moderate Risk",
	}

	report, err := svc.FSSAIReport(FormatPDF, v)
	if err != nil {
		t.Fatalf("FSSAIReport failed: %v", err)
	}
	if report.Filename != "fssai-verification-annapurna-foods.pdf" {
		t.Errorf("Unexpected filename %q", report.Filename)
	}

	// CSV is not offered for food licenses.
	_, err = svc.FSSAIReport(FormatCSV, v)
	expectAppError(t, err, apperrors.ErrCodeInvalidInput)
}

func TestEmailReport_NotConfigured(t *testing.T) {
	svc := testExportService(&config.Config{})

	report := &Report{Filename: "business-verification-x.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}
	err := svc.EmailReport(context.Background(), "client@example.in", "Verification report", report)
	expectAppError(t, err, apperrors.ErrCodeServiceError)
}
