package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradevista/admin-console/pkg/config"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)
}

func TestListTrainersDecodesEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/trainers", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "ok",
			"data": {
				"trainers": [
					{"_id": "t1", "name": "Ava", "email": "ava@example.com", "treding_profile": {"trading_exprience": "advanced"}}
				],
				"meta": {"total": 11, "page": 2, "limit": 10, "totalPages": 2}
			}
		}`))
	})

	users, meta, err := client.ListTrainers(context.Background(), "token-1", 2, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "t1", users[0].ID)
	assert.Equal(t, "advanced", users[0].TradingProfile.TradingExperience)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 2, meta.TotalPages)
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success": false, "message": "jwt expired"}`))
	})

	_, _, err := client.ListStudents(context.Background(), "stale", 1, 10)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSessionExpired.Code, appErr.Code)
	assert.Equal(t, "jwt expired", appErr.Message)
}

func TestLoginReturnsTokenPair(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "Login successful",
			"data": {
				"_id": "u1",
				"role": "admin",
				"accessToken": "access-1",
				"refreshToken": "refresh-1",
				"user": {"_id": "u1", "name": "Root", "email": "root@example.com"}
			}
		}`))
	})

	result, err := client.Login(context.Background(), "root@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", result.UserID)
	assert.Equal(t, "admin", result.Role)
	assert.Equal(t, "access-1", result.AccessToken)
	assert.Equal(t, "refresh-1", result.RefreshToken)
	assert.Equal(t, "Root", result.User.Name)
}

func TestLoginRejectionCarriesBackendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success": false, "message": "Wrong credentials"}`))
	})

	_, err := client.Login(context.Background(), "root@example.com", "nope")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Wrong credentials", appErr.Message)
}

func TestNetworkFailureIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := New(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)

	_, err := client.ListCourses(context.Background(), "token")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, "An error occurred", appErr.Message)
}

func TestListCoursesUnwrapsCourseKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course/all-courses", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "ok",
			"data": {
				"course": [
					{"_id": "c1", "name": "Futures 101", "price": 250, "offerPrice": 199}
				]
			}
		}`))
	})

	courses, err := client.ListCourses(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Futures 101", courses[0].Name)
	assert.Equal(t, 199.0, courses[0].OfferPrice)
}
