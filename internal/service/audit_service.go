package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/models"
)

type auditStore interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// AuditService records admin actions. Recording is best-effort: a failed
// write never fails the request that triggered it.
type AuditService struct {
	repo    auditStore
	logger  *zap.Logger
	enabled bool
}

// NewAuditService constructs an AuditService. A nil repo disables recording.
func NewAuditService(repo auditStore, logger *zap.Logger, enabled bool) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger, enabled: enabled}
}

// Enabled reports whether the audit trail is active.
func (s *AuditService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Record stores an audit entry.
func (s *AuditService) Record(ctx context.Context, entry *models.AuditLog) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}

// Recent returns the latest audit entries for the dashboard activity feed.
func (s *AuditService) Recent(ctx context.Context, limit int) []models.AuditLog {
	if !s.Enabled() {
		return nil
	}
	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Warn("failed to list audit entries", zap.Error(err))
		return nil
	}
	return entries
}
