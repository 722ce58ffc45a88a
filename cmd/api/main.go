package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-admin/internal/bootstrap"
	"github.com/jwalitptl/clinic-admin/internal/config"
	"github.com/jwalitptl/clinic-admin/internal/handler/appointment"
	"github.com/jwalitptl/clinic-admin/internal/handler/auth"
	"github.com/jwalitptl/clinic-admin/internal/handler/backup"
	"github.com/jwalitptl/clinic-admin/internal/handler/bundle"
	"github.com/jwalitptl/clinic-admin/internal/handler/client"
	"github.com/jwalitptl/clinic-admin/internal/handler/company"
	"github.com/jwalitptl/clinic-admin/internal/handler/dashboard"
	"github.com/jwalitptl/clinic-admin/internal/handler/expense"
	"github.com/jwalitptl/clinic-admin/internal/handler/finance"
	"github.com/jwalitptl/clinic-admin/internal/handler/health"
	"github.com/jwalitptl/clinic-admin/internal/handler/intake"
	promhandler "github.com/jwalitptl/clinic-admin/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-admin/internal/handler/room"
	"github.com/jwalitptl/clinic-admin/internal/handler/therapist"
	"github.com/jwalitptl/clinic-admin/internal/handler/treatment"
	"github.com/jwalitptl/clinic-admin/internal/middleware"
	"github.com/jwalitptl/clinic-admin/internal/repository/document"
	"github.com/jwalitptl/clinic-admin/internal/router"
	appointmentService "github.com/jwalitptl/clinic-admin/internal/service/appointment"
	authService "github.com/jwalitptl/clinic-admin/internal/service/auth"
	backupService "github.com/jwalitptl/clinic-admin/internal/service/backup"
	bundleService "github.com/jwalitptl/clinic-admin/internal/service/bundle"
	clientService "github.com/jwalitptl/clinic-admin/internal/service/client"
	companyService "github.com/jwalitptl/clinic-admin/internal/service/company"
	dashboardService "github.com/jwalitptl/clinic-admin/internal/service/dashboard"
	expenseService "github.com/jwalitptl/clinic-admin/internal/service/expense"
	financeService "github.com/jwalitptl/clinic-admin/internal/service/finance"
	navigationService "github.com/jwalitptl/clinic-admin/internal/service/navigation"
	roomService "github.com/jwalitptl/clinic-admin/internal/service/room"
	therapistService "github.com/jwalitptl/clinic-admin/internal/service/therapist"
	treatmentService "github.com/jwalitptl/clinic-admin/internal/service/treatment"
	"github.com/jwalitptl/clinic-admin/internal/worker"
	jwtauth "github.com/jwalitptl/clinic-admin/pkg/auth"
	"github.com/jwalitptl/clinic-admin/pkg/logger"
	"github.com/jwalitptl/clinic-admin/pkg/messaging"
)

const maxBodyBytes = 1 << 20

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, err := bootstrap.NewCore(ctx, cfg, registry)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to initialize storage")
	}
	defer core.Close()

	// Initialize repositories
	store := core.Store
	therapistRepo := document.NewTherapistRepository(store)
	clientRepo := document.NewClientRepository(store)
	treatmentRepo := document.NewTreatmentRepository(store)
	roomRepo := document.NewRoomRepository(store)
	expenseRepo := document.NewExpenseRepository(store)
	packageRepo := document.NewPackageRepository(store)
	appointmentRepo := document.NewAppointmentRepository(store)
	companyRepo := document.NewCompanyRepository(store)
	adminRepo := document.NewAdminRepository(store)

	// Initialize services
	jwtSvc := jwtauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(adminRepo, therapistRepo, jwtSvc)
	therapistSvc := therapistService.NewService(therapistRepo)
	clientSvc := clientService.NewService(clientRepo, store, core.Clock)
	treatmentSvc := treatmentService.NewService(treatmentRepo)
	roomSvc := roomService.NewService(roomRepo)
	expenseSvc := expenseService.NewService(expenseRepo)
	bundleSvc := bundleService.NewService(packageRepo, store, core.Clock)
	appointmentSvc := appointmentService.NewService(appointmentRepo, store)
	companySvc := companyService.NewService(companyRepo)
	financeSvc := financeService.NewService(store, core.Clock)
	dashboardSvc := dashboardService.NewService(store, core.Intake, core.Clock)
	navigationSvc := navigationService.NewService(store)
	backupSvc := backupService.NewService(store)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	intakeLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(cfg.Intake.RateLimit),
		Burst: cfg.Intake.RateBurst,
	})

	metricsHandler := promhandler.New(cfg.Metrics.Namespace, registry, registry)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowOrigins

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		metricsHandler.Middleware(),
		router.RouterConfig{
			Mode:         cfg.Server.Mode,
			CORSConfig:   corsConfig,
			MaxBodyBytes: maxBodyBytes,
		},
		health.NewHandler(core.KV),
		metricsHandler,
		auth.NewHandler(authSvc),
		therapist.NewHandler(therapistSvc),
		client.NewHandler(clientSvc),
		treatment.NewHandler(treatmentSvc),
		room.NewHandler(roomSvc),
		expense.NewHandler(expenseSvc),
		bundle.NewHandler(bundleSvc),
		appointment.NewHandler(appointmentSvc),
		company.NewHandler(companySvc),
		finance.NewHandler(financeSvc),
		intake.NewHandler(core.Intake, intakeLimiter.RateLimit()),
		dashboard.NewHandler(dashboardSvc, navigationSvc),
		backup.NewHandler(backupSvc),
	)
	r.Setup()

	// Seed the document now so a broken seed source shows up at startup.
	if _, err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load clinic data")
	}

	if cfg.Intake.Embedded {
		intakeWorker := worker.NewIntakeWorker(
			core.Intake,
			messaging.NewBrokerAdapter(core.Broker),
			worker.IntakeWorkerConfig{
				PollInterval: cfg.Intake.PollInterval,
				Channel:      cfg.Intake.Channel,
			},
			core.Metrics,
		)
		go intakeWorker.Start(ctx)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("storage", cfg.Storage.Driver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
