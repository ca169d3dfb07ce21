package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradevista/admin-console/internal/handler"
	"github.com/tradevista/admin-console/internal/middleware"
	"github.com/tradevista/admin-console/internal/models"
	"github.com/tradevista/admin-console/internal/service"
	"github.com/tradevista/admin-console/internal/session"
	"github.com/tradevista/admin-console/pkg/config"
	"github.com/tradevista/admin-console/pkg/logger"
	reqidmiddleware "github.com/tradevista/admin-console/pkg/middleware/requestid"
)

// Deps carries everything the route table needs.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Sessions  *session.Manager
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Trainers  *handler.TrainerHandler
	Students  *handler.StudentHandler
	Courses   *handler.CourseHandler
	Offers    *handler.OfferHandler
	Signals   *handler.SignalHandler
	Audit     *service.AuditService
	Metrics   *service.MetricsService
}

// New builds the gin engine with the full route surface.
func New(d Deps) *gin.Engine {
	if d.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))

	r.LoadHTMLGlob(d.Config.TemplateGlob)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, "/dashboard")
	})

	auth := r.Group("/auth", middleware.RedirectIfAuthenticated(d.Sessions))
	{
		auth.GET("/login", d.Auth.ShowLogin)
		auth.POST("/login", d.Auth.Login)
		auth.GET("/forgot-password", d.Auth.ShowForgotPassword)
		auth.POST("/forgot-password", d.Auth.ForgotPassword)
		auth.GET("/verify-otp", d.Auth.ShowVerifyOTP)
		auth.POST("/verify-otp", d.Auth.VerifyOTP)
	}

	protected := r.Group("/", middleware.RequireSession(d.Sessions))
	{
		protected.GET("/dashboard", d.Dashboard.Show)

		protected.GET("/auth/update-password", d.Auth.ShowUpdatePassword)
		protected.POST("/auth/update-password",
			middleware.Audit(d.Audit, models.AuditActionPasswordChange, "account"),
			d.Auth.UpdatePassword)
		protected.POST("/logout", d.Auth.Logout)

		protected.GET("/trainer", d.Trainers.List)
		protected.POST("/trainer",
			middleware.Audit(d.Audit, models.AuditActionTrainerCreate, "trainer"),
			d.Trainers.Create)
		protected.POST("/trainer/:id/delete",
			middleware.Audit(d.Audit, models.AuditActionTrainerDelete, "trainer"),
			d.Trainers.Delete)
		protected.GET("/trainer/export", d.Trainers.Export)

		protected.GET("/user", d.Students.List)
		protected.POST("/user/:id/delete",
			middleware.Audit(d.Audit, models.AuditActionStudentDelete, "student"),
			d.Students.Delete)
		protected.GET("/user/export", d.Students.Export)

		protected.GET("/courses", d.Courses.List)
		protected.POST("/courses/:id/delete",
			middleware.Audit(d.Audit, models.AuditActionCourseDelete, "course"),
			d.Courses.Delete)

		protected.GET("/offer", d.Offers.Show)
		protected.POST("/offer",
			middleware.Audit(d.Audit, models.AuditActionOfferCreate, "offer"),
			d.Offers.Create)

		protected.GET("/signal-send", d.Signals.Show)
		protected.POST("/signal-send",
			middleware.Audit(d.Audit, models.AuditActionSignalSend, "signal"),
			d.Signals.Send)
	}

	return r
}
