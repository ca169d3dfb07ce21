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

// StudentHandler serves the student roster screen.
type StudentHandler struct {
	students *service.StudentService
	exports  *service.ExportService
	sessions *session.Manager
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, exports *service.ExportService, sessions *session.Manager) *StudentHandler {
	return &StudentHandler{students: students, exports: exports, sessions: sessions}
}

// List renders one page of the student table.
func (h *StudentHandler) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	page, err := h.students.Page(c.Request.Context(), sess.AccessToken, pageQuery(c))
	if err != nil {
		appErr := appErrors.FromError(err)
		if sessionLost(appErr) {
			redirectToLogin(c, h.sessions)
			return
		}
		c.HTML(appErr.Status, "students.html", view(c, h.sessions, gin.H{
			"Error": appErr.Message,
		}))
		return
	}
	c.HTML(http.StatusOK, "students.html", view(c, h.sessions, gin.H{
		"Page": page,
	}))
}

// Delete removes a student and lands on the page the roster should show next.
func (h *StudentHandler) Delete(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	returnTo := fmt.Sprintf("/user?page=%d", pageQuery(c))

	next, err := h.students.Delete(c.Request.Context(), sess.AccessToken, sess.SID, c.Param("id"), pageQuery(c))
	if err != nil {
		handleMutationError(c, h.sessions, err, returnTo)
		return
	}
	flashAndRedirect(c, h.sessions, models.FlashSuccess, "Student removed",
		fmt.Sprintf("/user?page=%d", next))
}

// Export streams the full student roster as CSV or PDF.
func (h *StudentHandler) Export(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	out, err := h.exports.StudentRoster(c.Request.Context(), sess.AccessToken, c.DefaultQuery("format", "csv"))
	if err != nil {
		handleMutationError(c, h.sessions, err, "/user")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}
