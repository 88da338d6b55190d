// File: /main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"photoshare-api/cache"
	"photoshare-api/config"
	"photoshare-api/controllers"
	"photoshare-api/database"
	_ "photoshare-api/docs"
	"photoshare-api/jobs"
	"photoshare-api/logging"
	"photoshare-api/middleware"
	"photoshare-api/repositories"
	"photoshare-api/routes"
	"photoshare-api/services"
	"photoshare-api/telemetry"
)

type stores struct {
	users       services.UserStore
	friendships services.FriendshipStore
	photos      services.PhotoStore
	reactions   services.ReactionStore
}

// @title           PhotoShare API
// @version         1.0
// @description     Photo sharing with friendships, comments and reactions.
// @host            localhost:8000
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting PhotoShare API server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	checks := map[string]controllers.HealthCheck{}

	// Initialize persistence
	var st stores
	if cfg.Database.Driver == "memory" {
		logger.Warn("Using in-memory store; data is lost on restart")
		mem := repositories.NewMemoryStore()
		st = stores{users: mem, friendships: mem, photos: mem, reactions: mem}
	} else {
		db, err := database.Initialize(&cfg.Database, cfg.Logging.Level)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := database.Migrate(db.DB); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		if cfg.Database.Seed {
			if err := database.SeedData(db.DB); err != nil {
				logger.Warn("Failed to seed database", zap.Error(err))
			}
		}

		st = stores{
			users:       repositories.NewUserRepository(db.DB),
			friendships: repositories.NewFriendshipRepository(db.DB),
			photos:      repositories.NewPhotoRepository(db.DB),
			reactions:   repositories.NewReactionRepository(db.DB),
		}
		checks["database"] = db.Health
	}

	redisCache, err := cache.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisCache != nil {
		defer redisCache.Close()
		checks["redis"] = redisCache.Health
	}

	storage, err := services.NewFileStorage(context.Background(), &cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	var mailer services.WelcomeMailer
	if emailService := services.NewEmailService(&cfg.Email); emailService != nil {
		mailer = emailService
	}

	// Services
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	var reactionCache services.ReactionCache
	if redisCache != nil {
		reactionCache = redisCache
	}
	reactionService := services.NewReactionService(st.photos, st.reactions, st.users, reactionCache)
	userService := services.NewUserService(st.users, tokenService, storage, mailer, reactionService)
	friendService := services.NewFriendService(st.users, st.friendships, cfg.Server.PublicURL)
	photoService := services.NewPhotoService(st.photos, st.users, storage, reactionCache)

	if cfg.Jobs.StatsReconcileInterval > 0 {
		reconcileJob := jobs.NewStatsReconcileJob(reactionService, cfg.Jobs.StatsReconcileInterval)
		reconcileJob.Start()
		defer reconcileJob.Stop()
	}

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Storage.MaxUploadSize
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.ErrorHandler())

	routes.SetupRoutes(router, cfg, routes.Dependencies{
		Users:     userService,
		Friends:   friendService,
		Photos:    photoService,
		Reactions: reactionService,
		Tokens:    tokenService,
		Checks:    checks,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Server.Port)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
