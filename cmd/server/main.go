// cmd/server/main.go
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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/unclebandit/gapgrabber-web/internal/backend"
	"github.com/unclebandit/gapgrabber-web/internal/config"
	"github.com/unclebandit/gapgrabber-web/internal/controller"
	"github.com/unclebandit/gapgrabber-web/internal/handler"
	"github.com/unclebandit/gapgrabber-web/internal/httpx"
	"github.com/unclebandit/gapgrabber-web/internal/logging"
	"github.com/unclebandit/gapgrabber-web/internal/queue"
	"github.com/unclebandit/gapgrabber-web/internal/repository"
	"github.com/unclebandit/gapgrabber-web/internal/service"
	"github.com/unclebandit/gapgrabber-web/internal/telemetry"
	"github.com/unclebandit/gapgrabber-web/internal/view"
)

const maxBodyBytes = 64 << 10

func main() {
	envErr := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if envErr != nil {
		logger.Warn("no .env file found, relying on OS environment variables")
	}
	if _, err := cfg.LoadLocation(); err != nil {
		logger.Warn("unknown display timezone, using UTC", zap.Error(err))
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:      cfg.OTelEnabled,
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTelEndpoint,
		SampleRatio:  cfg.OTelSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	q, closeQueue, err := newQueue(cfg, logger)
	if err != nil {
		return err
	}
	defer closeQueue()

	client := backend.New(cfg.APIURL, cfg.BackendTimeout, logger)
	gapService := &service.GapService{
		AppointmentRepo: &repository.AppointmentRepository{Client: client},
		CampaignRepo:    &repository.CampaignRepository{Client: client},
		MessageRepo:     &repository.MessageRepository{Client: client},
		Queue:           q,
		Logger:          logger,
		Location:        cfg.Location(),
	}

	views, err := view.New(cfg.Location(), time.Now)
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	screens := &controller.ScreenController{Adapter: gapService, Views: views, Logger: logger}
	api := handler.NewGapHandler(gapService, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpx.AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(httpx.BodyLimit(maxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/static/*", view.Static())
	r.Mount("/api/v1", api.Routes())
	screens.Routes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, "gapgrabber-web"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("api_url", cfg.APIURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

// newQueue publishes to RabbitMQ when AMQP_URL is set; otherwise events stay
// in-process and are logged by a local subscriber.
func newQueue(cfg *config.Config, logger *zap.Logger) (queue.Queue, func(), error) {
	if cfg.AMQPURL != "" {
		q, err := queue.DialAMQP(cfg.AMQPURL, cfg.AMQPQueue, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("publishing workflow events to RabbitMQ", zap.String("queue", cfg.AMQPQueue))
		return q, func() { _ = q.Close() }, nil
	}

	q := queue.NewInMemoryQueue(logger)
	if err := queue.StartWorkflowEventSubscriber(q, logger); err != nil {
		return nil, nil, err
	}
	return q, q.Wait, nil
}
