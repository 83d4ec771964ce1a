package queue

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/unclebandit/gapgrabber-web/internal/model"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue delivers each published payload once to every subscriber of
// the topic, on its own goroutine. Handler errors are logged, not retried.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	wg       sync.WaitGroup
	logger   *zap.Logger
}

func NewInMemoryQueue(logger *zap.Logger) *InMemoryQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
		logger:   logger,
	}
}

func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]func(payload any) error(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		q.wg.Add(1)
		go func(h func(payload any) error) {
			defer q.wg.Done()
			if err := h(payload); err != nil {
				q.logger.Warn("queue handler failed", zap.String("topic", topic), zap.Error(err))
			}
		}(handler)
	}
	return nil
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Wait blocks until every dispatched handler has returned.
func (q *InMemoryQueue) Wait() {
	q.wg.Wait()
}

// StartWorkflowEventSubscriber records launched workflows in the log. It is
// the in-process stand-in for cmd/worker when no broker is configured.
func StartWorkflowEventSubscriber(q Queue, logger *zap.Logger) error {
	return q.Subscribe(model.EventWorkflowLaunched, func(payload any) error {
		ev, ok := payload.(model.WorkflowEvent)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", payload)
		}
		LogWorkflowEvent(logger, ev)
		return nil
	})
}

func LogWorkflowEvent(logger *zap.Logger, ev model.WorkflowEvent) {
	logger.Info("workflow launched",
		zap.String("event_id", ev.EventID),
		zap.Int("workflow_id", ev.WorkflowID),
		zap.Int("slot_id", ev.SlotID),
		zap.String("reason", ev.Reason),
		zap.Int("discount_percentage", ev.DiscountPercentage),
		zap.Int("wait_time_minutes", ev.WaitTimeMinutes),
		zap.Time("occurred_at", ev.OccurredAt),
	)
}
