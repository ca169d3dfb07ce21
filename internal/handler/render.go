package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tradevista/admin-console/internal/middleware"
	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/internal/session"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
)

// view assembles the template data shared by every screen: the current
// session and any queued flash toasts.
func view(c *gin.Context, sessions *session.Manager, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		data["Session"] = sess
		data["Flashes"] = sessions.TakeFlashes(c, sess.SID)
	}
	return data
}

// redirectToLogin drops the session and sends the browser back through the
// login screen, preserving the page the admin was on.
func redirectToLogin(c *gin.Context, sessions *session.Manager) {
	sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/auth/login?callbackUrl="+url.QueryEscape(c.Request.URL.RequestURI()))
}

// flashAndRedirect queues a toast and completes the POST-redirect-GET cycle.
func flashAndRedirect(c *gin.Context, sessions *session.Manager, level, message, target string) {
	if sess := middleware.CurrentSession(c); sess != nil {
		sessions.Flash(c, sess.SID, level, message)
	}
	c.Redirect(http.StatusSeeOther, target)
}

// handleMutationError routes a failed mutation: an expired session goes back
// through login, anything else becomes an error toast on the target page.
func handleMutationError(c *gin.Context, sessions *session.Manager, err error, target string) {
	appErr := appErrors.FromError(err)
	if sessionLost(appErr) {
		redirectToLogin(c, sessions)
		return
	}
	flashAndRedirect(c, sessions, models.FlashError, appErr.Message, target)
}

func sessionLost(appErr *appErrors.Error) bool {
	return appErr.Code == appErrors.ErrSessionExpired.Code || appErr.Code == appErrors.ErrUnauthorized.Code
}

// pageQuery reads the ?page= parameter, defaulting to 1.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// safeCallback keeps redirects on-site. Anything that is not a local path
// falls back to the dashboard.
func safeCallback(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/dashboard"
	}
	return raw
}
