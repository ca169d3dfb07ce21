package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/tradevista/admin-console/internal/backend"
	"github.com/tradevista/admin-console/internal/handler"
	"github.com/tradevista/admin-console/internal/repository"
	"github.com/tradevista/admin-console/internal/router"
	"github.com/tradevista/admin-console/internal/service"
	"github.com/tradevista/admin-console/internal/session"
	"github.com/tradevista/admin-console/pkg/cache"
	"github.com/tradevista/admin-console/pkg/config"
	"github.com/tradevista/admin-console/pkg/database"
	"github.com/tradevista/admin-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	var store session.Store
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, sessions held in memory", "error", err)
		store = session.NewMemoryStore()
	} else {
		store = session.NewRedisStore(redisClient)
	}
	sessions := session.NewManager(store, cfg.Session, logr)

	var auditRepo *repository.AuditRepository
	if cfg.Audit.Enabled {
		db, err := database.Connect(cfg.Audit.Database)
		if err != nil {
			logr.Sugar().Fatalw("audit trail enabled but database unreachable", "error", err)
		}
		auditRepo = repository.NewAuditRepository(db)
	}
	var auditSvc *service.AuditService
	if auditRepo != nil {
		auditSvc = service.NewAuditService(auditRepo, logr, true)
	} else {
		auditSvc = service.NewAuditService(nil, logr, false)
	}

	client := backend.New(cfg.Backend, logr)
	validate := validator.New()
	guard := service.NewGuard()

	authSvc := service.NewAuthService(client, validate, logr)
	trainerSvc := service.NewTrainerService(client, validate, logr, guard)
	studentSvc := service.NewStudentService(client, logr, guard)
	courseSvc := service.NewCourseService(client, logr, guard)
	offerSvc := service.NewOfferService(client, cfg.Uploads, validate, logr, guard)
	signalSvc := service.NewSignalService(client, cfg.Uploads, logr, guard)
	exportSvc := service.NewExportService(client, logr)
	dashboardSvc := service.NewDashboardService(client, auditSvc, logr)
	metricsSvc := service.NewMetricsService()

	r := router.New(router.Deps{
		Config:    cfg,
		Logger:    logr,
		Sessions:  sessions,
		Auth:      handler.NewAuthHandler(authSvc, sessions, auditSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc, sessions),
		Trainers:  handler.NewTrainerHandler(trainerSvc, exportSvc, sessions),
		Students:  handler.NewStudentHandler(studentSvc, exportSvc, sessions),
		Courses:   handler.NewCourseHandler(courseSvc, sessions),
		Offers:    handler.NewOfferHandler(offerSvc, sessions),
		Signals:   handler.NewSignalHandler(signalSvc, sessions),
		Audit:     auditSvc,
		Metrics:   metricsSvc,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("admin console starting", "addr", addr, "env", cfg.Env, "backend", cfg.Backend.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
