package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/models"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
	"github.com/tradevista/admin-console/pkg/pagination"
)

type dashboardAPI interface {
	ListTrainers(ctx context.Context, token string, page, limit int) ([]models.User, pagination.Meta, error)
	ListStudents(ctx context.Context, token string, page, limit int) ([]models.User, pagination.Meta, error)
	ListCourses(ctx context.Context, token string) ([]models.Course, error)
}

// DashboardStats is the headline block on the dashboard screen.
type DashboardStats struct {
	TrainerTotal   int
	StudentTotal   int
	CourseCount    int
	RecentActivity []models.AuditLog
}

// DashboardService aggregates the landing-screen numbers.
type DashboardService struct {
	api    dashboardAPI
	audit  *AuditService
	logger *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(api dashboardAPI, audit *AuditService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{api: api, audit: audit, logger: logger}
}

// Overview collects trainer/student totals and the course count. Individual
// failures degrade to zero rather than failing the whole screen, except an
// expired session, which must reach the login redirect.
func (s *DashboardService) Overview(ctx context.Context, token string) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if _, meta, err := s.api.ListTrainers(ctx, token, 1, 1); err == nil {
		stats.TrainerTotal = meta.Total
	} else if isSessionExpired(err) {
		return nil, err
	} else {
		s.logger.Warn("dashboard trainer count failed", zap.Error(err))
	}
	if _, meta, err := s.api.ListStudents(ctx, token, 1, 1); err == nil {
		stats.StudentTotal = meta.Total
	} else if isSessionExpired(err) {
		return nil, err
	} else {
		s.logger.Warn("dashboard student count failed", zap.Error(err))
	}
	if courses, err := s.api.ListCourses(ctx, token); err == nil {
		stats.CourseCount = len(courses)
	} else if isSessionExpired(err) {
		return nil, err
	} else {
		s.logger.Warn("dashboard course count failed", zap.Error(err))
	}

	stats.RecentActivity = s.audit.Recent(ctx, 8)
	return stats, nil
}

func isSessionExpired(err error) bool {
	return appErrors.FromError(err).Code == appErrors.ErrSessionExpired.Code
}
