package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/adapters/deploy"
	"github.com/khoahotran/portfolio-generator/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-generator/adapters/http"
	"github.com/khoahotran/portfolio-generator/adapters/persistence"
	"github.com/khoahotran/portfolio-generator/internal/application/service"
	deployUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/deploy"
	prefUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/preference"
	wizardUC "github.com/khoahotran/portfolio-generator/internal/application/usecase/wizard"
	"github.com/khoahotran/portfolio-generator/internal/config"
	"github.com/khoahotran/portfolio-generator/internal/domain/preference"
	"github.com/khoahotran/portfolio-generator/internal/domain/wizard"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
	"github.com/khoahotran/portfolio-generator/pkg/tracing"
)

func main() {
	fmt.Println("Start Portfolio Generator API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
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

	// Repositories
	var sessionRepo wizard.Repository
	switch cfg.Session.Driver {
	case config.SessionDriverRedis:
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		sessionRepo = persistence.NewRedisSessionRepo(redisClient, cfg.Session.TTL, appLogger)
	default:
		sessionRepo = persistence.NewMemorySessionRepo(cfg.Session.TTL)
	}

	var preferenceRepo preference.Repository
	if cfg.DB.DSN != "" {
		dbPool, err := persistence.OpenPreferencePool(ctx, cfg.DB.DSN, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Postgres", err)
		}
		defer dbPool.Close()
		preferenceRepo = persistence.NewPostgresPreferenceRepo(dbPool, appLogger)
	} else {
		appLogger.Warn("DB_DSN not set, color scheme preferences kept in memory")
		preferenceRepo = persistence.NewMemoryPreferenceRepo()
	}

	// Services
	deployer := deploy.NewSimulatedDeployer(cfg, appLogger)

	// Use Cases
	wizardUseCase := wizardUC.NewWizardUseCase(sessionRepo, cfg.Upload.MaxImageBytes, appLogger)
	deployUseCase := deployUC.NewDeployUseCase(sessionRepo, nil, deployer, cfg.Deploy.Timeout, appLogger)
	preferenceUseCase := prefUC.NewPreferenceUseCase(preferenceRepo, appLogger)

	// Deploy queue
	var queue interface {
		service.DeployQueue
		Close() error
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaQueue, err := event.NewKafkaDeployQueue(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		if cfg.Session.Driver != config.SessionDriverRedis {
			appLogger.Warn("Kafka deploy queue with in-memory sessions: the worker cannot see them")
		}
		queue = kafkaQueue
	} else {
		queue = event.NewInProcessDeployQueue(deployUseCase.ExecuteProcess, 2, 64, appLogger)
	}
	defer queue.Close()
	deployUseCase.SetQueue(queue)

	// HTTP Handlers
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Wizard:     httpAdapter.NewWizardHandler(wizardUseCase, deployUseCase, appLogger),
		Render:     httpAdapter.NewRenderHandler(wizardUseCase, appLogger),
		Preference: httpAdapter.NewPreferenceHandler(preferenceUseCase, appLogger),
		Premium:    httpAdapter.NewPremiumHandler(cfg.Premium.CheckoutURL),
	}, cfg.Tracing.ServiceName, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server forced to shutdown", err)
	}
}
