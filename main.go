package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vetchat/config"
	"vetchat/cron"
	"vetchat/database"
	appointmentRepo "vetchat/database/repository/appointment"
	sessionRepo "vetchat/database/repository/session"
	"vetchat/handlers"
	"vetchat/routes"
	"vetchat/services/appointment"
	"vetchat/services/bookingflow"
	"vetchat/services/chat"
	"vetchat/services/intelligence"
	"vetchat/services/session"
	"vetchat/services/tasks"
	"vetchat/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	sessions := sessionRepo.NewMongoSessionRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()

	// booking flow state.
	var (
		states       bookingflow.StateStore
		redisClients []*redis.Client
	)
	if config.UsesRedisBookingStore() {
		cache := utils.GetCacheClient()
		redisClients = append(redisClients, cache)
		states = bookingflow.NewRedisStore(cache, config.AppConfig.BookingStateTTL)
		logger.Info("Booking flows stored in Redis", zap.Duration("ttl", config.AppConfig.BookingStateTTL))
	} else {
		states = bookingflow.NewMemoryStore(config.AppConfig.BookingStateTTL)
		logger.Info("Booking flows stored in memory", zap.Duration("ttl", config.AppConfig.BookingStateTTL))
	}

	// text generation.
	var generator intelligence.Generator
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := intelligence.NewGeminiGenerator(rootCtx, config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Error("Gemini unavailable, general questions get a fallback reply", zap.Error(err))
		} else {
			generator = gemini
			defer gemini.Close()
		}
	}

	// services.
	appointmentService := &appointment.DefaultAppointmentService{Repo: appointments}
	if config.AppConfig.ReminderWorker {
		scheduler := tasks.NewAsynqReminderScheduler(cron.ReminderQueueOpt())
		defer scheduler.Close()
		appointmentService.Reminders = scheduler

		worker := cron.InitReminderWorker(appointments)
		defer worker.Shutdown()

		redisClients = append(redisClients, redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}))
	}

	sessionService := &session.DefaultSessionService{Repo: sessions}
	chatService := &chat.DefaultChatService{
		Sessions:     sessionService,
		Appointments: appointmentService,
		Generator:    generator,
		States:       states,
		Locker:       bookingflow.NewSessionLocker(),
		HistoryLimit: config.AppConfig.ChatHistoryLimit,
	}

	utils.StartHealthMonitor(rootCtx, 30*time.Second, redisClients, database.MongoClient)

	handlerBundle := handlers.NewHandlerBundle(chatService, sessionService, appointmentService, config.AppConfig.AdminJWTSecret)

	router := gin.New()
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
