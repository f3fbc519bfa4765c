package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus wrapped in a
// resilient publisher, and registers the metrics collector so every published
// event is counted. The dead-letter file receives events that exhaust their
// retries.
// Returns the event bus, resilient publisher, and any error encountered.
func InitializeEventSystem(deadLetterPath string) (event.Bus, *event.ResilientPublisher, error) {
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	// Ensure dead-letter directory exists
	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	eventBus := event.NewMemoryBus()
	publisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:     EventDefaultMaxRetries,
		RetryDelay:     EventDefaultRetryDelay,
		DeadLetterPath: deadLetterPath,
	})

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(eventBus); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Debug(LogMsgMetricsCollectorRegistered)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, publisher, nil
}
