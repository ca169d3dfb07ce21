package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradevista/admin-console/internal/middleware"
	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/internal/service"
	"github.com/tradevista/admin-console/internal/session"
	appErrors "github.com/tradevista/admin-console/pkg/errors"
)

// TrainerHandler serves the trainer roster screen.
type TrainerHandler struct {
	trainers *service.TrainerService
	exports  *service.ExportService
	sessions *session.Manager
}

// NewTrainerHandler constructs TrainerHandler.
func NewTrainerHandler(trainers *service.TrainerService, exports *service.ExportService, sessions *session.Manager) *TrainerHandler {
	return &TrainerHandler{trainers: trainers, exports: exports, sessions: sessions}
}

// List renders one page of the trainer table.
func (h *TrainerHandler) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	page, err := h.trainers.Page(c.Request.Context(), sess.AccessToken, pageQuery(c))
	if err != nil {
		appErr := appErrors.FromError(err)
		if sessionLost(appErr) {
			redirectToLogin(c, h.sessions)
			return
		}
		c.HTML(appErr.Status, "trainers.html", view(c, h.sessions, gin.H{
			"Error": appErr.Message,
		}))
		return
	}
	c.HTML(http.StatusOK, "trainers.html", view(c, h.sessions, gin.H{
		"Page": page,
	}))
}

// Create handles the add-trainer modal submission.
func (h *TrainerHandler) Create(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var form service.CreateTrainerForm
	_ = c.ShouldBind(&form)

	created, err := h.trainers.Create(c.Request.Context(), sess.AccessToken, sess.SID, form)
	if err != nil {
		handleMutationError(c, h.sessions, err, "/trainer")
		return
	}
	flashAndRedirect(c, h.sessions, models.FlashSuccess,
		fmt.Sprintf("Trainer %s added", created.Name), "/trainer")
}

// Delete removes a trainer and lands on the page the roster should show next.
func (h *TrainerHandler) Delete(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	returnTo := fmt.Sprintf("/trainer?page=%d", pageQuery(c))

	next, err := h.trainers.Delete(c.Request.Context(), sess.AccessToken, sess.SID, c.Param("id"), pageQuery(c))
	if err != nil {
		handleMutationError(c, h.sessions, err, returnTo)
		return
	}
	flashAndRedirect(c, h.sessions, models.FlashSuccess, "Trainer removed",
		fmt.Sprintf("/trainer?page=%d", next))
}

// Export streams the full trainer roster as CSV or PDF.
func (h *TrainerHandler) Export(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	out, err := h.exports.TrainerRoster(c.Request.Context(), sess.AccessToken, c.DefaultQuery("format", "csv"))
	if err != nil {
		handleMutationError(c, h.sessions, err, "/trainer")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}
