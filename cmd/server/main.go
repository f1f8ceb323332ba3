package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appattachment "github.com/eujim/backend/internal/application/attachment"
	authapp "github.com/eujim/backend/internal/application/auth"
	"github.com/eujim/backend/internal/application/bulk"
	appdocument "github.com/eujim/backend/internal/application/document"
	"github.com/eujim/backend/internal/application/notification"
	"github.com/eujim/backend/internal/infrastructure/auth"
	"github.com/eujim/backend/internal/infrastructure/config"
	"github.com/eujim/backend/internal/infrastructure/docs"
	"github.com/eujim/backend/internal/infrastructure/event"
	"github.com/eujim/backend/internal/infrastructure/logger"
	"github.com/eujim/backend/internal/infrastructure/mail"
	"github.com/eujim/backend/internal/infrastructure/persistence"
	"github.com/eujim/backend/internal/infrastructure/storage"
	"github.com/eujim/backend/internal/interfaces/http/handler"
	"github.com/eujim/backend/internal/interfaces/http/middleware"
	"github.com/eujim/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting attachment records backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	attacheeRepo := persistence.NewGormAttacheeRepository(db.DB)
	evaluationRepo := persistence.NewGormEvaluationRepository(db.DB)
	adminUserRepo := persistence.NewGormAdminUserRepository(db.DB)
	trackingSequence := persistence.NewGormTrackingSequence(db.DB)

	// Object storage for uploaded applicant documents
	var fileStorage appattachment.FileStorage
	switch cfg.Storage.Driver {
	case "s3":
		s3Storage, err := storage.NewS3FileStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		fileStorage = s3Storage
	default:
		log.Warn("Using in-memory stub storage, uploads will not survive a restart")
		fileStorage = storage.NewStubFileStorage()
	}

	// Token blacklist: redis when reachable, otherwise in-memory
	var blacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := authapp.NewService(adminUserRepo, jwtService, blacklist, log)
	attacheeService := appattachment.NewService(attacheeRepo, trackingSequence, log)
	evaluationService := appattachment.NewEvaluationService(attacheeRepo, evaluationRepo)
	analyticsService := appattachment.NewAnalyticsService(attacheeRepo)
	exportService := bulk.NewExportService(attacheeRepo)
	importService := bulk.NewImportService(attacheeService, log)

	// Document rendering
	renderer := docs.NewChromedpRenderer(docs.RendererConfig{
		Timeout:    cfg.Document.RenderTimeout,
		ChromePath: cfg.Document.ChromePath,
		NoSandbox:  cfg.App.Env != "development",
		Logger:     log,
	}, cfg.Portal.OrgName)
	defer renderer.Close()
	documentService := appdocument.NewService(attacheeRepo, renderer, cfg.Portal.BaseURL, log)

	// Mail sender: real SMTP only when configured, otherwise log-only
	var sender notification.Sender
	if cfg.Mail.Enabled {
		sender = mail.NewSMTPSender(cfg.Mail, cfg.Portal.BaseURL, cfg.Portal.OrgName, log)
	} else {
		log.Warn("Mail sending disabled, notifications will only be logged")
		sender = mail.NewLogSender(log)
	}

	// Event bus and the notification subscriber
	eventBus := event.NewInMemoryEventBus(log)
	statusNotifier := notification.NewStatusNotifier(sender, log)
	eventBus.Subscribe(statusNotifier)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	attacheeService.SetEventPublisher(eventBus)
	log.Info("Event handlers registered", zap.Strings("notifier_events", statusNotifier.EventTypes()))

	// Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request id, recovery, request logging, CORS, body cap
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	jwtAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAuthHandler(authService, jwtAuth)).
		Register(handler.NewApplicationHandler(attacheeService, evaluationService, fileStorage)).
		Register(handler.NewDocumentHandler(documentService)).
		Register(handler.NewAdminApplicationHandler(attacheeService, evaluationService, analyticsService, fileStorage, jwtAuth)).
		Register(handler.NewBulkHandler(exportService, importService, jwtAuth))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
