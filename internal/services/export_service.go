package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	apperrors "github.com/veriscope/veriscope-api/internal/errors"
	"github.com/veriscope/veriscope-api/internal/export"
	"github.com/veriscope/veriscope-api/internal/metrics"
	"github.com/veriscope/veriscope-api/pkg/config"
)

// Export formats
const (
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
	FormatCSV   = "csv"
)

var contentTypes = map[string]string{
	FormatExcel: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:   "application/pdf",
	FormatCSV:   "text/csv",
}

// exportServiceImpl implements ExportService
type exportServiceImpl struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// newExportService creates a new export service implementation
func newExportService(cfg *config.Config, m *metrics.Metrics, log *zap.Logger) ExportService {
	return &exportServiceImpl{
		cfg:     cfg,
		metrics: m,
		logger:  log,
	}
}

// BusinessReport generates a business verification report in the given format
func (s *exportServiceImpl) BusinessReport(format string, v *BusinessVerification) (*Report, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatExcel:
		data, err = export.BuildWorkbook(v.Record, v.CompanyInfo, v.Score)
	case FormatPDF:
		data, err = export.BuildPDF(v.Record, v.Score)
	case FormatCSV:
		data, err = export.BuildCSV(v.Record, v.Score)
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported export format: %s", format), nil)
	}

	if err != nil {
		return nil, apperrors.InternalError("failed to build report", err)
	}

	s.metrics.ObserveExport(format)

	return &Report{
		Filename:    export.Filename("business", v.Record.LegalName, format),
		ContentType: contentTypes[format],
		Data:        data,
	}, nil
}

// FSSAIReport generates a food-license verification report in the given format
func (s *exportServiceImpl) FSSAIReport(format string, v *FSSAIVerification) (*Report, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatExcel:
		data, err = export.BuildFSSAIWorkbook(v.Record, v.Score, v.Label)
	case FormatPDF:
		data, err = export.BuildFSSAIPDF(v.Record, v.Score, v.Label)
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported export format: %s", format), nil)
	}

	if err != nil {
		return nil, apperrors.InternalError("failed to build report", err)
	}

	s.metrics.ObserveExport(format)

	return &Report{
		Filename:    export.Filename("fssai", v.Record.BusinessName, format),
		ContentType: contentTypes[format],
		Data:        data,
	}, nil
}

// EmailReport sends a generated report as an attachment via SendGrid
func (s *exportServiceImpl) EmailReport(ctx context.Context, recipient, subject string, report *Report) error {
	if !s.cfg.HasSendGrid() {
		return apperrors.ServiceError("email delivery is not configured", nil)
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail("", recipient)

	body := "Please find the requested verification report attached."
	message := mail.NewSingleEmail(from, subject, to, body, "<p>"+body+"</p>")

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(report.Data))
	attachment.SetType(report.ContentType)
	attachment.SetFilename(report.Filename)
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return apperrors.ServiceError("failed to send report email", err)
	}
	if response.StatusCode >= 400 {
		return apperrors.ServiceError(fmt.Sprintf("email provider returned status %d", response.StatusCode), nil)
	}

	s.logger.Info("report emailed",
		zap.String("recipient", recipient),
		zap.String("filename", report.Filename))

	return nil
}
