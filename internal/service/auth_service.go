package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/backend"
	"github.com/tradevista/admin-console/internal/models"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
)

type authAPI interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, password string) error
	ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error
}

// LoginForm carries the credential fields of the login screen.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// ForgotPasswordForm requests a reset OTP.
type ForgotPasswordForm struct {
	Email string `form:"email" validate:"required,email"`
}

// ResetPasswordForm completes the OTP reset flow.
type ResetPasswordForm struct {
	Email           string `form:"email" validate:"required,email"`
	OTP             string `form:"otp" validate:"required"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

// ChangePasswordForm updates the signed-in admin's password.
type ChangePasswordForm struct {
	OldPassword     string `form:"oldPassword" validate:"required"`
	NewPassword     string `form:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// AuthService drives the credential flows against the platform backend.
type AuthService struct {
	api       authAPI
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(api authAPI, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{api: api, validator: validate, logger: logger}
}

// Login authenticates against the backend and returns the session to issue.
// Any backend rejection surfaces as the invalid-credentials message; only
// transport failures keep the generic one.
func (s *AuthService) Login(ctx context.Context, form LoginForm) (*models.Session, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid email or password")
	}

	result, err := s.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Code == appErrors.ErrUpstream.Code {
			return nil, appErr
		}
		s.logger.Info("login rejected", zap.String("email", form.Email), zap.Int("status", appErr.Status))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid email or password")
	}

	return &models.Session{
		UserID:       result.UserID,
		Name:         result.User.Name,
		Email:        result.User.Email,
		Role:         result.Role,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, nil
}

// ForgotPassword asks the backend to send a reset OTP.
func (s *AuthService) ForgotPassword(ctx context.Context, form ForgotPasswordForm) error {
	if err := s.validator.Struct(form); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "Please enter a valid email address")
	}
	return s.api.ForgotPassword(ctx, form.Email)
}

// ResetPassword completes the OTP flow with the new password.
func (s *AuthService) ResetPassword(ctx context.Context, form ResetPasswordForm) error {
	if err := s.validator.Struct(form); err != nil {
		if form.Password != form.ConfirmPassword {
			return appErrors.Clone(appErrors.ErrValidation, "Passwords do not match")
		}
		return appErrors.Clone(appErrors.ErrValidation, "Please fill in all fields; passwords need at least 6 characters")
	}
	return s.api.ResetPassword(ctx, form.Email, form.OTP, form.Password)
}

// ChangePassword updates the current admin's password.
func (s *AuthService) ChangePassword(ctx context.Context, token string, form ChangePasswordForm) error {
	if err := s.validator.Struct(form); err != nil {
		if form.NewPassword != form.ConfirmPassword {
			return appErrors.Clone(appErrors.ErrValidation, "Passwords do not match")
		}
		return appErrors.Clone(appErrors.ErrValidation, "Please fill in all fields; passwords need at least 6 characters")
	}
	return s.api.ChangePassword(ctx, token, form.OldPassword, form.NewPassword)
}
