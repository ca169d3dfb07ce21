package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradevista/admin-console/internal/middleware"
	"github.com/tradevista/admin-console/internal/service"
	"github.com/tradevista/admin-console/internal/session"
)

// DashboardHandler serves the landing screen.
type DashboardHandler struct {
	dashboard *service.DashboardService
	sessions  *session.Manager
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, sessions *session.Manager) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, sessions: sessions}
}

// Show renders the headline counts and recent activity.
func (h *DashboardHandler) Show(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	stats, err := h.dashboard.Overview(c.Request.Context(), sess.AccessToken)
	if err != nil {
		redirectToLogin(c, h.sessions)
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", view(c, h.sessions, gin.H{
		"Stats": stats,
	}))
}
