// cmd/worker/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/unclebandit/gapgrabber-web/internal/config"
	"github.com/unclebandit/gapgrabber-web/internal/logging"
	"github.com/unclebandit/gapgrabber-web/internal/model"
	"github.com/unclebandit/gapgrabber-web/internal/queue"
)

func main() {
	envErr := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.ServiceName+"-worker", cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if envErr != nil {
		logger.Warn("no .env file found, relying on OS environment variables")
	}
	if cfg.AMQPURL == "" {
		logger.Fatal("AMQP_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q, err := queue.DialAMQP(cfg.AMQPURL, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Fatal("connect", zap.Error(err))
	}
	defer q.Close()

	logger.Info("worker running, waiting for workflow events", zap.String("queue", cfg.AMQPQueue))
	if err := q.Consume(ctx, newEventHandler(logger)); err != nil {
		logger.Error("consumer stopped", zap.Error(err))
	}
}

// newEventHandler decodes and logs one delivery. Errors are logged by the
// consumer and the delivery is acked either way.
func newEventHandler(logger *zap.Logger) func(topic string, body []byte) error {
	return func(topic string, body []byte) error {
		if topic != model.EventWorkflowLaunched {
			return fmt.Errorf("unknown topic %q", topic)
		}
		var ev model.WorkflowEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("invalid event: %w", err)
		}
		if ev.WorkflowID <= 0 {
			return fmt.Errorf("event %s has no workflow id", ev.EventID)
		}
		queue.LogWorkflowEvent(logger, ev)
		return nil
	}
}
