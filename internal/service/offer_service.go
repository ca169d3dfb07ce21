package service

import (
	"context"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/backend"
	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/pkg/config"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
)

type offerAPI interface {
	ListCourses(ctx context.Context, token string) ([]models.Course, error)
	CreateOffer(ctx context.Context, token string, upload backend.OfferUpload) error
}

// OfferForm holds the create-offer fields before the banner is attached.
type OfferForm struct {
	CourseID   string `form:"course" validate:"required"`
	OfferPrice string `form:"offer" validate:"required"`
	StartDate  string `form:"startDate" validate:"required"`
	EndDate    string `form:"endDate" validate:"required"`
}

// OfferService drives the promotional offer form.
type OfferService struct {
	api       offerAPI
	uploads   config.UploadConfig
	validator *validator.Validate
	logger    *zap.Logger
	guard     *Guard
}

// NewOfferService constructs an OfferService.
func NewOfferService(api offerAPI, uploads config.UploadConfig, validate *validator.Validate, logger *zap.Logger, guard *Guard) *OfferService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if guard == nil {
		guard = NewGuard()
	}
	return &OfferService{api: api, uploads: uploads, validator: validate, logger: logger, guard: guard}
}

// Courses returns the dropdown options for the offer form.
func (s *OfferService) Courses(ctx context.Context, token string) ([]models.Course, error) {
	return s.api.ListCourses(ctx, token)
}

// Create validates the draft and banner, then posts the offer. Validation
// failures happen before any backend call is issued.
func (s *OfferService) Create(ctx context.Context, token, sid string, form OfferForm, banner *multipart.FileHeader) error {
	if banner == nil {
		return appErrors.Clone(appErrors.ErrValidation, "Please select an image for the offer banner")
	}
	if err := s.validator.Struct(form); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "Please fill in all required fields")
	}
	if _, err := strconv.ParseFloat(form.OfferPrice, 64); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "Offer percentage must be a number")
	}
	if !s.allowedBannerType(banner.Header.Get("Content-Type")) {
		return appErrors.Clone(appErrors.ErrValidation, "Please select a valid image file")
	}
	if banner.Size > s.uploads.MaxFileSizeBytes {
		return appErrors.Clone(appErrors.ErrValidation, "Image size must be less than 5MB")
	}

	startDate, err := parseFormDate(form.StartDate)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "Start date is not a valid date")
	}
	endDate, err := parseFormDate(form.EndDate)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "End date is not a valid date")
	}

	key := sid + ":offer:create"
	if !s.guard.Begin(key) {
		return ErrMutationInFlight
	}
	defer s.guard.End(key)

	file, err := banner.Open()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "open banner upload")
	}
	defer file.Close() //nolint:errcheck

	return s.api.CreateOffer(ctx, token, backend.OfferUpload{
		CourseID:       form.CourseID,
		OfferPrice:     form.OfferPrice,
		StartDate:      startDate.Format(time.RFC3339),
		EndDate:        endDate.Format(time.RFC3339),
		BannerName:     banner.Filename,
		BannerMIMEType: banner.Header.Get("Content-Type"),
		Banner:         file,
	})
}

func (s *OfferService) allowedBannerType(contentType string) bool {
	if len(s.uploads.AllowedMIMEs) == 0 {
		return strings.HasPrefix(contentType, "image/")
	}
	for _, allowed := range s.uploads.AllowedMIMEs {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}

func parseFormDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
