package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"startup-marketplace/config"
	"startup-marketplace/database"
	routes "startup-marketplace/internal/app/http"
	"startup-marketplace/internal/app/http/middleware"
	"startup-marketplace/internal/app/jobs"
	"startup-marketplace/internal/domain/access"
	"startup-marketplace/internal/domain/plans"
	"startup-marketplace/internal/domain/startups"
	"startup-marketplace/internal/infra/cache"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config.LoadEnv()
	database.InitDB()
	database.InitRedis()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier middleware.TokenVerifier = middleware.HMACVerifier{Secret: []byte(config.JWT_SECRET)}
	if config.FIREBASE_PROJECT_ID != "" {
		fv, err := middleware.NewFirebaseVerifier(ctx, config.FIREBASE_PROJECT_ID)
		if err != nil {
			log.Fatal("Failed to set up Firebase token verification: ", err)
		}
		verifier = fv
	}

	views := cache.NewViewCounts(startups.NewViewStore(database.DB), database.Redis, config.VIEW_COUNT_CACHE_TTL, logger)
	gate := access.NewGate(plans.NewEntitlements(database.DB), views, views, logger)

	scheduler := jobs.NewScheduler(jobs.NewJobs(database.DB, logger), logger)
	if err := scheduler.Start(config.SUBSCRIPTION_EXPIRY_SCHEDULE); err != nil {
		log.Fatal("Invalid SUBSCRIPTION_EXPIRY_SCHEDULE: ", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{Verifier: verifier, Gate: gate})

	srv := &http.Server{Addr: ":" + config.PORT, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()
	slog.Info("server started", "port", config.PORT)

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	<-scheduler.Stop().Done()
	gate.Wait()
	if database.Redis != nil {
		_ = database.Redis.Close()
	}
}
