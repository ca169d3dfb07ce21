package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradevista/admin-console/internal/backend"
	"github.com/tradevista/admin-console/internal/middleware"
	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/internal/service"
	"github.com/tradevista/admin-console/internal/session"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
	"github.com/tradevista/admin-console/pkg/config"
)

type stubAuthAPI struct {
	loginErr error
}

func (s *stubAuthAPI) Login(_ context.Context, email, _ string) (*backend.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &backend.LoginResult{
		UserID:      "u1",
		Role:        models.RoleAdmin,
		AccessToken: "access-1",
		User:        models.User{ID: "u1", Name: "Root", Email: email},
	}, nil
}

func (s *stubAuthAPI) ForgotPassword(context.Context, string) error                 { return nil }
func (s *stubAuthAPI) ResetPassword(context.Context, string, string, string) error  { return nil }
func (s *stubAuthAPI) ChangePassword(context.Context, string, string, string) error { return nil }

func newAuthRig(api *stubAuthAPI) (*gin.Engine, *session.Manager) {
	gin.SetMode(gin.TestMode)
	sessions := session.NewManager(session.NewMemoryStore(), config.SessionConfig{
		Secret:     "test_secret",
		CookieName: "admin_session",
		TTL:        time.Hour,
	}, nil)
	audit := service.NewAuditService(nil, nil, false)
	h := NewAuthHandler(service.NewAuthService(api, nil, nil), sessions, audit)

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")
	r.GET("/auth/login", h.ShowLogin)
	r.POST("/auth/login", h.Login)
	r.POST("/logout", middleware.RequireSession(sessions), h.Logout)
	return r, sessions
}

func postForm(r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFailedLoginRendersErrorInPlace(t *testing.T) {
	r, _ := newAuthRig(&stubAuthAPI{loginErr: appErrors.New("BACKEND_ERROR", 400, "Wrong credentials")})

	w := postForm(r, "/auth/login", url.Values{
		"email":    {"root@example.com"},
		"password": {"nope"},
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Location"), "failed login must not navigate")
	assert.Contains(t, w.Body.String(), "Invalid email or password")
	assert.Contains(t, w.Body.String(), "root@example.com", "email stays filled in")
	assert.Empty(t, w.Result().Cookies())
}

func TestSuccessfulLoginSetsSessionAndRedirects(t *testing.T) {
	r, sessions := newAuthRig(&stubAuthAPI{})

	w := postForm(r, "/auth/login", url.Values{
		"email":    {"root@example.com"},
		"password": {"secret"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Request.AddCookie(cookies[0])
	sess, err := sessions.Current(c)
	require.NoError(t, err)
	assert.Equal(t, "access-1", sess.AccessToken)
}

func TestLoginFollowsCallbackURL(t *testing.T) {
	r, _ := newAuthRig(&stubAuthAPI{})

	w := postForm(r, "/auth/login", url.Values{
		"email":       {"root@example.com"},
		"password":    {"secret"},
		"callbackUrl": {"/trainer?page=2"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/trainer?page=2", w.Header().Get("Location"))
}

func TestLoginIgnoresOffsiteCallback(t *testing.T) {
	r, _ := newAuthRig(&stubAuthAPI{})

	w := postForm(r, "/auth/login", url.Values{
		"email":       {"root@example.com"},
		"password":    {"secret"},
		"callbackUrl": {"https://evil.example.com/"},
	}, nil)

	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	r, _ := newAuthRig(&stubAuthAPI{})

	login := postForm(r, "/auth/login", url.Values{
		"email":    {"root@example.com"},
		"password": {"secret"},
	}, nil)
	cookies := login.Result().Cookies()

	w := postForm(r, "/logout", url.Values{}, cookies)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))

	// The session record is gone; a replayed cookie no longer passes the gate.
	again := postForm(r, "/logout", url.Values{}, cookies)
	assert.Equal(t, http.StatusSeeOther, again.Code)
	assert.Contains(t, again.Header().Get("Location"), "/auth/login?callbackUrl=")
}
