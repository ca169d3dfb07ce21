package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradevista/admin-console/internal/backend"
	"github.com/tradevista/admin-console/internal/models"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
)

type fakeAuthAPI struct {
	loginErr   error
	loginCalls int
}

func (f *fakeAuthAPI) Login(_ context.Context, email, _ string) (*backend.LoginResult, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &backend.LoginResult{
		UserID:       "u1",
		Role:         models.RoleAdmin,
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         models.User{ID: "u1", Name: "Root", Email: email},
	}, nil
}

func (f *fakeAuthAPI) ForgotPassword(context.Context, string) error             { return nil }
func (f *fakeAuthAPI) ResetPassword(context.Context, string, string, string) error { return nil }
func (f *fakeAuthAPI) ChangePassword(context.Context, string, string, string) error { return nil }

func TestLoginBuildsSession(t *testing.T) {
	svc := NewAuthService(&fakeAuthAPI{}, nil, nil)

	sess, err := svc.Login(context.Background(), LoginForm{Email: "root@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "Root", sess.Name)
	assert.Equal(t, models.RoleAdmin, sess.Role)
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)
}

func TestLoginRejectionUsesCredentialMessage(t *testing.T) {
	api := &fakeAuthAPI{loginErr: appErrors.New("BACKEND_ERROR", 400, "Wrong credentials")}
	svc := NewAuthService(api, nil, nil)

	_, err := svc.Login(context.Background(), LoginForm{Email: "root@example.com", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", appErrors.FromError(err).Message)
}

func TestLoginTransportFailureKeepsGenericMessage(t *testing.T) {
	api := &fakeAuthAPI{loginErr: appErrors.Clone(appErrors.ErrUpstream, "")}
	svc := NewAuthService(api, nil, nil)

	_, err := svc.Login(context.Background(), LoginForm{Email: "root@example.com", Password: "secret"})
	require.Error(t, err)
	assert.Equal(t, "An error occurred", appErrors.FromError(err).Message)
}

func TestLoginValidatesBeforeCalling(t *testing.T) {
	api := &fakeAuthAPI{}
	svc := NewAuthService(api, nil, nil)

	_, err := svc.Login(context.Background(), LoginForm{Email: "not-an-email", Password: ""})
	require.Error(t, err)
	assert.Zero(t, api.loginCalls)
}

func TestResetPasswordMismatchMessage(t *testing.T) {
	svc := NewAuthService(&fakeAuthAPI{}, nil, nil)

	err := svc.ResetPassword(context.Background(), ResetPasswordForm{
		Email:           "root@example.com",
		OTP:             "123456",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	require.Error(t, err)
	assert.Equal(t, "Passwords do not match", appErrors.FromError(err).Message)
}
