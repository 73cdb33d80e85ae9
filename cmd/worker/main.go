package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/adapters/deploy"
	"github.com/khoahotran/portfolio-generator/adapters/event"
	"github.com/khoahotran/portfolio-generator/adapters/persistence"
	deployUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/deploy"
	"github.com/khoahotran/portfolio-generator/internal/config"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
	"github.com/khoahotran/portfolio-generator/pkg/tracing"
)

func main() {
	fmt.Println("Starting Portfolio Deploy Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("worker needs KAFKA_BROKERS", errors.New("no brokers configured"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewTracerProvider(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	if tp != nil {
		defer tp.Shutdown(context.Background())
	}

	// Sessions must be shared with the API server, so Redis is required here.
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()
	sessionRepo := persistence.NewRedisSessionRepo(redisClient, cfg.Session.TTL, appLogger)

	// Worker Use Case
	processDeployUC := deployUC.NewDeployUseCase(sessionRepo, nil, deploy.NewSimulatedDeployer(cfg, appLogger), cfg.Deploy.Timeout, appLogger)

	// Kafka Consumer
	deployConsumer := event.NewDeployConsumer(cfg)
	defer deployConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", cfg.Kafka.DeployTopic))

	for {
		msg, err := deployConsumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		msgLog := appLogger.With(zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)))
		job, err := event.DecodeDeployJob(msg)
		if err != nil {
			msgLog.Error("Failed to decode deploy job, skipping", err)
			commitMessage(deployConsumer, msg, msgLog)
			continue
		}

		if err := processDeployUC.ExecuteProcess(ctx, job); err != nil {
			msgLog.Error("Failed to process deploy job", err, zap.String("session_id", job.SessionID.String()))
			continue
		}

		commitMessage(deployConsumer, msg, msgLog)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
