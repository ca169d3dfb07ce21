package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/pkg/pagination"
)

type studentAPI interface {
	ListStudents(ctx context.Context, token string, page, limit int) ([]models.User, pagination.Meta, error)
	DeleteStudent(ctx context.Context, token, id string) error
}

// StudentService orchestrates the student list screen.
type StudentService struct {
	api    studentAPI
	logger *zap.Logger
	guard  *Guard
}

// NewStudentService constructs a StudentService.
func NewStudentService(api studentAPI, logger *zap.Logger, guard *Guard) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if guard == nil {
		guard = NewGuard()
	}
	return &StudentService{api: api, logger: logger, guard: guard}
}

// Page fetches one page of students, clamping requests past the end.
func (s *StudentService) Page(ctx context.Context, token string, page int) (*RosterPage, error) {
	if page < 1 {
		page = 1
	}
	users, meta, err := s.api.ListStudents(ctx, token, page, defaultPageSize)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 && meta.TotalPages > 0 && page > meta.TotalPages {
		page = pagination.Clamp(page, meta.TotalPages)
		users, meta, err = s.api.ListStudents(ctx, token, page, defaultPageSize)
		if err != nil {
			return nil, err
		}
	}
	current := meta.Page
	if current == 0 {
		current = page
	}
	return &RosterPage{
		Users:  users,
		Meta:   meta,
		Window: pagination.Window(current, meta.TotalPages),
	}, nil
}

// Delete removes a student and reports the page to show next.
func (s *StudentService) Delete(ctx context.Context, token, sid, id string, currentPage int) (int, error) {
	key := sid + ":student:delete:" + id
	if !s.guard.Begin(key) {
		return currentPage, ErrMutationInFlight
	}
	defer s.guard.End(key)

	if err := s.api.DeleteStudent(ctx, token, id); err != nil {
		return currentPage, err
	}

	if currentPage < 1 {
		currentPage = 1
	}
	users, meta, err := s.api.ListStudents(ctx, token, currentPage, defaultPageSize)
	if err != nil {
		s.logger.Warn("post-delete refetch failed", zap.String("student", id), zap.Error(err))
		return currentPage, nil
	}
	if len(users) == 0 && currentPage > 1 {
		return pagination.Clamp(currentPage-1, meta.TotalPages), nil
	}
	return currentPage, nil
}
