package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/internal/session"
)

// ContextSessionKey is the gin context key storing the resolved session.
const ContextSessionKey = "currentSession"

// RequireSession gates protected pages. Unauthenticated requests are
// redirected to the login screen with the original path preserved.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.Current(c)
		if err != nil {
			loginURL := "/auth/login?callbackUrl=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusSeeOther, loginURL)
			c.Abort()
			return
		}
		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// RedirectIfAuthenticated bounces logged-in users off the auth screens.
func RedirectIfAuthenticated(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := sessions.Current(c); err == nil {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session attached by RequireSession.
func CurrentSession(c *gin.Context) *models.Session {
	if v, exists := c.Get(ContextSessionKey); exists {
		if sess, ok := v.(*models.Session); ok {
			return sess
		}
	}
	return nil
}
