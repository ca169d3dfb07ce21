package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradevista/admin-console/internal/middleware"
	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/internal/service"
	"github.com/tradevista/admin-console/internal/session"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
)

// SignalHandler serves the broadcast signal screen.
type SignalHandler struct {
	signals  *service.SignalService
	sessions *session.Manager
}

// NewSignalHandler constructs SignalHandler.
func NewSignalHandler(signals *service.SignalService, sessions *session.Manager) *SignalHandler {
	return &SignalHandler{signals: signals, sessions: sessions}
}

// Show renders the signal channel history and the send box.
func (h *SignalHandler) Show(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	chatID, messages, err := h.signals.Messages(c.Request.Context(), sess.AccessToken)
	if err != nil {
		appErr := appErrors.FromError(err)
		if sessionLost(appErr) {
			redirectToLogin(c, h.sessions)
			return
		}
		c.HTML(appErr.Status, "signal.html", view(c, h.sessions, gin.H{
			"Error": appErr.Message,
		}))
		return
	}
	c.HTML(http.StatusOK, "signal.html", view(c, h.sessions, gin.H{
		"ChatID":   chatID,
		"Messages": messages,
	}))
}

// Send posts a signal message with an optional attachment.
func (h *SignalHandler) Send(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var form service.SignalForm
	_ = c.ShouldBind(&form)
	attachment, err := c.FormFile("file")
	if err != nil {
		attachment = nil
	}

	if err := h.signals.Send(c.Request.Context(), sess.AccessToken, sess.SID, form, attachment); err != nil {
		handleMutationError(c, h.sessions, err, "/signal-send")
		return
	}
	flashAndRedirect(c, h.sessions, models.FlashSuccess, "Signal sent", "/signal-send")
}
