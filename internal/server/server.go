// Package server wires configuration, storage, background workers, and the
// HTTP stack into a running process.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/bistro/app/controllers"
	"github.com/shashiranjanraj/bistro/app/notifications"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/app/routes"
	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/cache"
	"github.com/shashiranjanraj/bistro/pkg/database"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/mailer"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/payment"
	"github.com/shashiranjanraj/bistro/pkg/queue"
	"github.com/shashiranjanraj/bistro/pkg/reqid"
	"github.com/shashiranjanraj/bistro/pkg/router"
)

const workerCount = 4

// Start boots the full application and blocks until SIGINT/SIGTERM, then
// shuts the HTTP server down gracefully.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	// Optional secondary log sink: application logs also land in Mongo
	// where an ops dashboard can query them.
	if uri := config.LogMongoURI(); uri != "" {
		sink, err := logger.NewMongoHandler(uri, config.MongoDB(), "appLogs")
		if err != nil {
			logger.Warn("server: mongo log sink unavailable", "error", err)
		} else {
			logger.UseHandler(logger.NewMultiHandler(
				slog.NewJSONHandler(os.Stdout, nil), sink,
			))
			defer sink.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, db, err := database.Connect(bootCtx, config.MongoURI(), config.MongoDB())
	if err != nil {
		return fmt.Errorf("server: mongo connect: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("server: mongo disconnect", "error", err)
		}
	}()

	if err := database.EnsureIndexes(bootCtx, db); err != nil {
		return fmt.Errorf("server: ensure indexes: %w", err)
	}

	// Redis is optional: without it the menu cache degrades to no-op and
	// the queue falls back to its in-process driver.
	redisCache, err := cache.Connect(bootCtx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("server: redis unavailable, running without cache", "error", err)
	} else {
		queue.SetDriver(queue.NewRedisDriver(redisCache.Client()))
	}

	sender := mailer.New(config.MailgunDomain(), config.MailgunAPIKey(), config.MailFrom())
	notifications.Setup(sender)
	queue.StartWorkers(ctx, workerCount)

	userRepo := repositories.NewUserRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	gateway := payment.NewStripeGateway(config.StripeSecret(), config.StripeCurrency())
	menuService := services.NewMenuService(menuRepo, redisCache)
	settlementService := services.NewSettlementService(paymentRepo, cartRepo, gateway, notifications.Dispatcher{})
	reportingService := services.NewReportingService(userRepo, menuRepo, paymentRepo)

	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.Logger,
	)

	routes.RegisterAPI(r, routes.Controllers{
		Health:  controllers.NewHealthController(),
		Auth:    controllers.NewAuthController(),
		User:    controllers.NewUserController(userRepo),
		Menu:    controllers.NewMenuController(menuService),
		Review:  controllers.NewReviewController(reviewRepo),
		Cart:    controllers.NewCartController(cartRepo),
		Payment: controllers.NewPaymentController(settlementService, paymentRepo),
		Stats:   controllers.NewStatsController(reportingService),
	}, userRepo)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
