package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/models"
)

type courseAPI interface {
	ListCourses(ctx context.Context, token string) ([]models.Course, error)
	DeleteCourse(ctx context.Context, token, id string) error
}

// CourseCard is the view shape of one course row.
type CourseCard struct {
	ID          string
	Title       string
	Description string
	Thumbnail   string
	Trainers    []models.Coordinator
	EnrollCount int
	ModuleCount int
	PriceLabel  string
}

// CourseService orchestrates the course list screen.
type CourseService struct {
	api    courseAPI
	logger *zap.Logger
	guard  *Guard
}

// NewCourseService constructs a CourseService.
func NewCourseService(api courseAPI, logger *zap.Logger, guard *Guard) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if guard == nil {
		guard = NewGuard()
	}
	return &CourseService{api: api, logger: logger, guard: guard}
}

// List returns every course as a rendered card. The backend endpoint is
// unpaginated.
func (s *CourseService) List(ctx context.Context, token string) ([]CourseCard, error) {
	courses, err := s.api.ListCourses(ctx, token)
	if err != nil {
		return nil, err
	}
	cards := make([]CourseCard, 0, len(courses))
	for _, course := range courses {
		cards = append(cards, toCard(course))
	}
	return cards, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, token, sid, id string) error {
	key := sid + ":course:delete:" + id
	if !s.guard.Begin(key) {
		return ErrMutationInFlight
	}
	defer s.guard.End(key)

	return s.api.DeleteCourse(ctx, token, id)
}

func toCard(course models.Course) CourseCard {
	price := course.Price
	if course.OfferPrice > 0 {
		price = course.OfferPrice
	}
	return CourseCard{
		ID:          course.ID,
		Title:       course.Name,
		Description: course.Description,
		Thumbnail:   course.Photo,
		Trainers:    course.Coordinator,
		EnrollCount: len(course.Enrolled),
		ModuleCount: len(course.Modules),
		PriceLabel:  fmt.Sprintf("$%.0f", price),
	}
}
