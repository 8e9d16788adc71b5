// Package main runs the evaluation API server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/durianpy/events-backend/config"
	"github.com/durianpy/events-backend/internal/evaluations"
	"github.com/durianpy/events-backend/internal/events"
	"github.com/durianpy/events-backend/internal/middleware"
	"github.com/durianpy/events-backend/internal/registrations"
	"github.com/durianpy/events-backend/pkg/awsconf"
	"github.com/durianpy/events-backend/pkg/redis"
	"github.com/durianpy/events-backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	awsCfg, err := awsconf.Load(ctx, awsconf.Config{
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
	}, logger)
	if err != nil {
		logger.Fatal("aws config", zap.Error(err))
	}
	db := dynamodb.NewFromConfig(awsCfg)

	var cache *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("event cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			cache = rdb.Client
		}
	}

	eventRepo := events.NewRepository(db, cache, cfg.Tables.Events, logger)
	registrationRepo := registrations.NewRepository(db, cfg.Tables.Registrations, logger)
	evaluationRepo := evaluations.NewRepository(db, cfg.Tables.Evaluations, cfg.Tables.EvaluationQuestionIndex, cfg.Audit.CurrentActor, logger)

	evaluationService := evaluations.NewService(eventRepo, registrationRepo, evaluationRepo, logger)
	evaluationHandler := evaluations.NewHandler(evaluationService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	ev := r.Group("/evaluations")
	{
		ev.POST("", evaluationHandler.Create)
		ev.GET("", evaluationHandler.List)
		ev.GET("/questions", evaluationHandler.ListByQuestion)
		ev.GET("/:eventId/:registrationId/:question", evaluationHandler.Get)
		ev.PATCH("/:eventId/:registrationId/:question", evaluationHandler.Update)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
