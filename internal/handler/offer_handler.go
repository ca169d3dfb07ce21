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

// OfferHandler serves the promotional offer form.
type OfferHandler struct {
	offers   *service.OfferService
	sessions *session.Manager
}

// NewOfferHandler constructs OfferHandler.
func NewOfferHandler(offers *service.OfferService, sessions *session.Manager) *OfferHandler {
	return &OfferHandler{offers: offers, sessions: sessions}
}

// Show renders the offer form with the course dropdown.
func (h *OfferHandler) Show(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	courses, err := h.offers.Courses(c.Request.Context(), sess.AccessToken)
	if err != nil {
		appErr := appErrors.FromError(err)
		if sessionLost(appErr) {
			redirectToLogin(c, h.sessions)
			return
		}
		c.HTML(appErr.Status, "offer.html", view(c, h.sessions, gin.H{
			"Error": appErr.Message,
		}))
		return
	}
	c.HTML(http.StatusOK, "offer.html", view(c, h.sessions, gin.H{
		"Courses": courses,
	}))
}

// Create validates and submits the offer. The banner is required before any
// backend call goes out.
func (h *OfferHandler) Create(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var form service.OfferForm
	_ = c.ShouldBind(&form)
	banner, err := c.FormFile("banner")
	if err != nil {
		banner = nil
	}

	if err := h.offers.Create(c.Request.Context(), sess.AccessToken, sess.SID, form, banner); err != nil {
		handleMutationError(c, h.sessions, err, "/offer")
		return
	}
	flashAndRedirect(c, h.sessions, models.FlashSuccess, "Offer created", "/offer")
}
