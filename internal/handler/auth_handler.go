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

// AuthHandler serves the credential screens and owns session issue/teardown.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	audit    *service.AuditService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, audit *service.AuditService) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, audit: audit}
}

// ShowLogin renders the login screen.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"CallbackURL": c.Query("callbackUrl"),
	})
}

// Login authenticates the admin. A rejected credential pair re-renders the
// form in place; success establishes the session and follows the callback.
func (h *AuthHandler) Login(c *gin.Context) {
	var form service.LoginForm
	_ = c.ShouldBind(&form)

	sess, err := h.auth.Login(c.Request.Context(), form)
	if err != nil {
		appErr := appErrors.FromError(err)
		c.HTML(appErr.Status, "login.html", gin.H{
			"Error":       appErr.Message,
			"Email":       form.Email,
			"CallbackURL": c.PostForm("callbackUrl"),
		})
		return
	}

	if err := h.sessions.Issue(c, sess); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error":       "Could not start a session, please try again",
			"Email":       form.Email,
			"CallbackURL": c.PostForm("callbackUrl"),
		})
		return
	}

	h.audit.Record(c.Request.Context(), &models.AuditLog{
		ActorID:   &sess.UserID,
		ActorName: sess.Name,
		Action:    models.AuditActionLogin,
		Resource:  "session",
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})

	c.Redirect(http.StatusSeeOther, safeCallback(c.PostForm("callbackUrl")))
}

// ShowForgotPassword renders the reset request screen.
func (h *AuthHandler) ShowForgotPassword(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot_password.html", gin.H{})
}

// ForgotPassword asks the backend to mail a reset OTP, then moves the admin
// on to the OTP screen.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var form service.ForgotPasswordForm
	_ = c.ShouldBind(&form)

	if err := h.auth.ForgotPassword(c.Request.Context(), form); err != nil {
		appErr := appErrors.FromError(err)
		c.HTML(appErr.Status, "forgot_password.html", gin.H{
			"Error": appErr.Message,
			"Email": form.Email,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/auth/verify-otp?email="+form.Email)
}

// ShowVerifyOTP renders the OTP + new password screen.
func (h *AuthHandler) ShowVerifyOTP(c *gin.Context) {
	c.HTML(http.StatusOK, "verify_otp.html", gin.H{
		"Email": c.Query("email"),
	})
}

// VerifyOTP completes the reset flow and returns the admin to login.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var form service.ResetPasswordForm
	_ = c.ShouldBind(&form)

	if err := h.auth.ResetPassword(c.Request.Context(), form); err != nil {
		appErr := appErrors.FromError(err)
		c.HTML(appErr.Status, "verify_otp.html", gin.H{
			"Error": appErr.Message,
			"Email": form.Email,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/auth/login")
}

// ShowUpdatePassword renders the change-password screen for a signed-in admin.
func (h *AuthHandler) ShowUpdatePassword(c *gin.Context) {
	c.HTML(http.StatusOK, "update_password.html", view(c, h.sessions, gin.H{}))
}

// UpdatePassword changes the signed-in admin's password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var form service.ChangePasswordForm
	_ = c.ShouldBind(&form)

	if err := h.auth.ChangePassword(c.Request.Context(), sess.AccessToken, form); err != nil {
		appErr := appErrors.FromError(err)
		if sessionLost(appErr) {
			redirectToLogin(c, h.sessions)
			return
		}
		c.HTML(appErr.Status, "update_password.html", view(c, h.sessions, gin.H{
			"Error": appErr.Message,
		}))
		return
	}

	flashAndRedirect(c, h.sessions, models.FlashSuccess, "Password updated", "/auth/update-password")
}

// Logout destroys the session and returns to login.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, err := h.sessions.Current(c); err == nil {
		h.audit.Record(c.Request.Context(), &models.AuditLog{
			ActorID:   &sess.UserID,
			ActorName: sess.Name,
			Action:    models.AuditActionLogout,
			Resource:  "session",
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		})
	}
	h.sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, "/auth/login")
}
