package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/pkg/config"
)

func testManager() *Manager {
	return NewManager(NewMemoryStore(), config.SessionConfig{
		Secret:     "test_secret",
		CookieName: "admin_session",
		TTL:        time.Hour,
	}, nil)
}

func contextWithCookies(cookies []*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, cookie := range cookies {
		c.Request.AddCookie(cookie)
	}
	return c, w
}

func TestIssueAndCurrentRoundTrip(t *testing.T) {
	m := testManager()
	c, w := contextWithCookies(nil)

	sess := &models.Session{
		UserID:      "u1",
		Name:        "Root",
		Email:       "root@example.com",
		Role:        models.RoleAdmin,
		AccessToken: "access-1",
	}
	require.NoError(t, m.Issue(c, sess))
	require.NotEmpty(t, sess.SID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	c2, _ := contextWithCookies(cookies)
	found, err := m.Current(c2)
	require.NoError(t, err)
	assert.Equal(t, "u1", found.UserID)
	assert.Equal(t, "access-1", found.AccessToken)
}

func TestCurrentRejectsTamperedCookie(t *testing.T) {
	m := testManager()
	c, w := contextWithCookies(nil)
	require.NoError(t, m.Issue(c, &models.Session{UserID: "u1"}))

	cookie := w.Result().Cookies()[0]
	cookie.Value += "x"

	c2, _ := contextWithCookies([]*http.Cookie{cookie})
	_, err := m.Current(c2)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClearDeletesRecordAndExpiresCookie(t *testing.T) {
	m := testManager()
	c, w := contextWithCookies(nil)
	require.NoError(t, m.Issue(c, &models.Session{UserID: "u1"}))
	issued := w.Result().Cookies()

	c2, w2 := contextWithCookies(issued)
	m.Clear(c2)

	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)

	c3, _ := contextWithCookies(issued)
	_, err := m.Current(c3)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFlashesDrainOnce(t *testing.T) {
	m := testManager()
	c, _ := contextWithCookies(nil)

	m.Flash(c, "sid-1", models.FlashSuccess, "Trainer removed")
	m.Flash(c, "sid-1", models.FlashError, "Something failed")

	flashes := m.TakeFlashes(c, "sid-1")
	require.Len(t, flashes, 2)
	assert.Equal(t, "Trainer removed", flashes[0].Message)

	assert.Empty(t, m.TakeFlashes(c, "sid-1"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	sess := &models.Session{SID: "sid-1", UserID: "u1"}
	require.NoError(t, store.Save(nil, sess, -time.Second))

	_, err := store.Find(nil, "sid-1")
	assert.ErrorIs(t, err, ErrNoSession)
}
