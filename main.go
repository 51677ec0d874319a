package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swatrental/config"
	"swatrental/cron"
	"swatrental/database"
	"swatrental/database/repository"
	"swatrental/handlers"
	"swatrental/middleware"
	"swatrental/routes"
	"swatrental/services/booking"
	"swatrental/services/catalog"
	"swatrental/services/notification"
	"swatrental/services/payment"
	"swatrental/services/storage"
	"swatrental/services/user"
	"swatrental/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	utils.InitRedis()

	// repositories.
	var repos repository.Set
	if config.UsesMemoryStorage() {
		logger.Warn("main: using in-memory storage, data will not survive a restart")
		repos = repository.NewMemorySet()
	} else {
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		repos = repository.NewMongoSet(database.DB())
	}

	// booking events: queued through asynq, logged in-process when the queue is unreachable.
	var notifier notification.Notifier = notification.NewLogNotifier(logger)
	var worker *asynq.Server
	var queueClient *asynq.Client
	if err := cron.PingQueue(ctx); err != nil {
		logger.Warn("main: booking event queue unavailable, logging events instead", zap.Error(err))
	} else {
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		asynqNotifier, err := notification.NewAsynqNotifier(queueClient, logger)
		if err != nil {
			logger.Fatal("main: failed to build notifier", zap.Error(err))
		}
		notifier = asynqNotifier
		worker = cron.InitBookingEventWorker(ctx, notification.NewDispatcher(logger))
	}

	// services.
	userService := &user.DefaultUserService{
		Repo:      repos.Users,
		AuthCache: utils.GetAuthCacheClient(),
		TokenTTL:  time.Duration(config.AppConfig.JWTTTLHours) * time.Hour,
		Logger:    logger,
	}
	if config.AppConfig.AdminEmail != "" && config.AppConfig.AdminPassword != "" {
		if err := userService.EnsureAdmin(ctx, config.AppConfig.AdminEmail, config.AppConfig.AdminPassword); err != nil {
			logger.Error("main: failed to bootstrap admin", zap.Error(err))
		}
	}

	catalogService := catalog.NewCatalogService(repos.Cars, utils.GetCacheClient(), logger)

	bookingService := &booking.DefaultBookingService{
		Bookings: repos.Bookings,
		Cars:     repos.Cars,
		Users:    repos.Users,
		Gateways: payment.NewAdapter(config.AppConfig.Gateways(), nil),
		Receipts: storage.NewReceiptStore(config.AppConfig),
		Notifier: notifier,
		Logger:   logger,
	}

	utils.StartHealthMonitor(ctx, utils.RedisClients(), database.MongoClient)

	handlerBundle := &handlers.HandlerBundle{
		Auth:     handlers.NewAuthHandler(userService),
		Bookings: handlers.NewBookingHandler(bookingService),
		Payments: handlers.NewPaymentHandler(bookingService),
		Cars:     handlers.NewCarHandler(catalogService),
		Health:   &handlers.HealthHandler{MemoryStorage: config.UsesMemoryStorage()},
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, userService)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if err := database.Close(shutdownCtx); err != nil {
		logger.Warn("main: failed to close MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
