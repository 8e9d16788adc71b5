// Package main runs the payment confirmation worker consuming the payment
// tracking queue.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/durianpy/events-backend/config"
	"github.com/durianpy/events-backend/internal/mailer"
	"github.com/durianpy/events-backend/internal/payments"
	"github.com/durianpy/events-backend/internal/registrations"
	"github.com/durianpy/events-backend/pkg/awsconf"
	"github.com/durianpy/events-backend/pkg/queue"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if cfg.Queue.PaymentQueueURL == "" {
		logger.Fatal("PAYMENT_QUEUE is required")
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
	registrationRepo := registrations.NewRepository(db, cfg.Tables.Registrations, logger)
	paymentQueue := queue.NewSQS(sqs.NewFromConfig(awsCfg), cfg.Queue.PaymentQueueURL, logger)
	sesMailer := mailer.NewSES(sesv2.NewFromConfig(awsCfg), cfg.Email.Sender, logger)

	processor := payments.NewProcessor(
		paymentQueue,
		registrationRepo,
		sesMailer,
		cfg.Queue.MaxMessages,
		cfg.Queue.WaitSeconds,
		logger,
	)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Run(workerCtx)
	logger.Info("worker started", zap.String("queue", cfg.Queue.PaymentQueueURL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
