package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/models"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
	"github.com/tradevista/admin-console/pkg/export"
	"github.com/tradevista/admin-console/pkg/pagination"
)

const exportPageSize = 100

type rosterAPI interface {
	ListTrainers(ctx context.Context, token string, page, limit int) ([]models.User, pagination.Meta, error)
	ListStudents(ctx context.Context, token string, page, limit int) ([]models.User, pagination.Meta, error)
}

// Export is a rendered download.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders full user rosters as CSV or PDF downloads.
type ExportService struct {
	api    rosterAPI
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(api rosterAPI, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		api:    api,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// TrainerRoster exports every trainer in the requested format.
func (s *ExportService) TrainerRoster(ctx context.Context, token, format string) (*Export, error) {
	users, err := s.fetchAll(ctx, token, s.api.ListTrainers)
	if err != nil {
		return nil, err
	}
	return s.render("trainers", "Trainer Roster", users, format)
}

// StudentRoster exports every student in the requested format.
func (s *ExportService) StudentRoster(ctx context.Context, token, format string) (*Export, error) {
	users, err := s.fetchAll(ctx, token, s.api.ListStudents)
	if err != nil {
		return nil, err
	}
	return s.render("students", "Student Roster", users, format)
}

type listFn func(ctx context.Context, token string, page, limit int) ([]models.User, pagination.Meta, error)

func (s *ExportService) fetchAll(ctx context.Context, token string, list listFn) ([]models.User, error) {
	var all []models.User
	for page := 1; ; page++ {
		users, meta, err := list(ctx, token, page, exportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, users...)
		if meta.TotalPages == 0 || page >= meta.TotalPages || len(users) == 0 {
			break
		}
	}
	return all, nil
}

func (s *ExportService) render(resource, title string, users []models.User, format string) (*Export, error) {
	dataset := export.Dataset{
		Title:   title,
		Headers: []string{"Name", "Email", "Username", "Phone", "Location", "Experience"},
	}
	for _, user := range users {
		dataset.Rows = append(dataset.Rows, []string{
			user.Name,
			user.Email,
			user.Username,
			user.Phone,
			user.Location(),
			user.TradingProfile.TradingExperience,
		})
	}

	stamp := time.Now().UTC().Format("2006-01-02")
	switch format {
	case "csv", "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &Export{
			Filename:    fmt.Sprintf("%s-%s.csv", resource, stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case "pdf":
		data, err := s.pdf.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &Export{
			Filename:    fmt.Sprintf("%s-%s.pdf", resource, stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "Unsupported export format")
	}
}
