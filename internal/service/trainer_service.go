package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/backend"
	"github.com/tradevista/admin-console/internal/models"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
	"github.com/tradevista/admin-console/pkg/pagination"
)

const defaultPageSize = 10

// ErrMutationInFlight reports a double-submitted mutation.
var ErrMutationInFlight = appErrors.New("MUTATION_IN_FLIGHT", 409, "That action is already in progress")

type trainerAPI interface {
	ListTrainers(ctx context.Context, token string, page, limit int) ([]models.User, pagination.Meta, error)
	AddTrainer(ctx context.Context, token string, payload backend.CreateTrainerPayload) (*models.User, error)
	DeleteTrainer(ctx context.Context, token, id string) error
}

// CreateTrainerForm mirrors the add-trainer modal fields.
type CreateTrainerForm struct {
	Name              string   `form:"name" validate:"required"`
	Username          string   `form:"username" validate:"required"`
	Email             string   `form:"email" validate:"required,email"`
	Password          string   `form:"password" validate:"required,min=6"`
	Phone             string   `form:"phone" validate:"required"`
	Street            string   `form:"street"`
	City              string   `form:"city"`
	State             string   `form:"state"`
	ZipCode           string   `form:"zipCode"`
	TradingExperience string   `form:"tradingExperience"`
	AssetsOfInterest  string   `form:"assetsOfInterest"`
	MainGoal          string   `form:"mainGoal"`
	RiskAppetite      string   `form:"riskAppetite"`
	PreferredLearning []string `form:"preferredLearning"`
}

// RosterPage is one rendered page of a user roster.
type RosterPage struct {
	Users  []models.User
	Meta   pagination.Meta
	Window []pagination.Item
}

// TrainerService orchestrates the trainer list screen.
type TrainerService struct {
	api       trainerAPI
	validator *validator.Validate
	logger    *zap.Logger
	guard     *Guard
}

// NewTrainerService constructs a TrainerService.
func NewTrainerService(api trainerAPI, validate *validator.Validate, logger *zap.Logger, guard *Guard) *TrainerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if guard == nil {
		guard = NewGuard()
	}
	return &TrainerService{api: api, validator: validate, logger: logger, guard: guard}
}

// Page fetches one page of trainers. The rendered page number always follows
// the page embedded in the accepted response; a request past the end is
// clamped and re-fetched.
func (s *TrainerService) Page(ctx context.Context, token string, page int) (*RosterPage, error) {
	if page < 1 {
		page = 1
	}
	users, meta, err := s.api.ListTrainers(ctx, token, page, defaultPageSize)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 && meta.TotalPages > 0 && page > meta.TotalPages {
		page = pagination.Clamp(page, meta.TotalPages)
		users, meta, err = s.api.ListTrainers(ctx, token, page, defaultPageSize)
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

// Create registers a new trainer account.
func (s *TrainerService) Create(ctx context.Context, token, sid string, form CreateTrainerForm) (*models.User, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Please fill in all required trainer fields")
	}

	key := sid + ":trainer:create"
	if !s.guard.Begin(key) {
		return nil, ErrMutationInFlight
	}
	defer s.guard.End(key)

	payload := backend.CreateTrainerPayload{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
		Phone:    strings.TrimSpace(form.Phone),
		Username: strings.TrimSpace(form.Username),
		Address: models.Address{
			Street:  strings.TrimSpace(form.Street),
			City:    strings.TrimSpace(form.City),
			State:   strings.TrimSpace(form.State),
			ZipCode: strings.TrimSpace(form.ZipCode),
		},
		TradingProfile: models.TradingProfile{
			TradingExperience: form.TradingExperience,
			AssetsOfInterest:  form.AssetsOfInterest,
			MainGoal:          form.MainGoal,
			RiskAppetite:      form.RiskAppetite,
			PreferredLearning: cleanList(form.PreferredLearning),
		},
	}

	created, err := s.api.AddTrainer(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes a trainer and reports the page the screen should show next.
// A delete that empties the current page falls back to the previous one.
func (s *TrainerService) Delete(ctx context.Context, token, sid, id string, currentPage int) (int, error) {
	key := sid + ":trainer:delete:" + id
	if !s.guard.Begin(key) {
		return currentPage, ErrMutationInFlight
	}
	defer s.guard.End(key)

	if err := s.api.DeleteTrainer(ctx, token, id); err != nil {
		return currentPage, err
	}

	if currentPage < 1 {
		currentPage = 1
	}
	users, meta, err := s.api.ListTrainers(ctx, token, currentPage, defaultPageSize)
	if err != nil {
		// The delete itself succeeded; let the screen re-fetch on render.
		s.logger.Warn("post-delete refetch failed", zap.String("trainer", id), zap.Error(err))
		return currentPage, nil
	}
	if len(users) == 0 && currentPage > 1 {
		return pagination.Clamp(currentPage-1, meta.TotalPages), nil
	}
	return currentPage, nil
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
