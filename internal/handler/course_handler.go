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

// CourseHandler serves the course catalogue screen.
type CourseHandler struct {
	courses  *service.CourseService
	sessions *session.Manager
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses *service.CourseService, sessions *session.Manager) *CourseHandler {
	return &CourseHandler{courses: courses, sessions: sessions}
}

// List renders every course as a card.
func (h *CourseHandler) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	cards, err := h.courses.List(c.Request.Context(), sess.AccessToken)
	if err != nil {
		appErr := appErrors.FromError(err)
		if sessionLost(appErr) {
			redirectToLogin(c, h.sessions)
			return
		}
		c.HTML(appErr.Status, "courses.html", view(c, h.sessions, gin.H{
			"Error": appErr.Message,
		}))
		return
	}
	c.HTML(http.StatusOK, "courses.html", view(c, h.sessions, gin.H{
		"Courses": cards,
	}))
}

// Delete removes a course.
func (h *CourseHandler) Delete(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.courses.Delete(c.Request.Context(), sess.AccessToken, sess.SID, c.Param("id")); err != nil {
		handleMutationError(c, h.sessions, err, "/courses")
		return
	}
	flashAndRedirect(c, h.sessions, models.FlashSuccess, "Course deleted", "/courses")
}
