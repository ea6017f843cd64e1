// Command audit tails the registry change topic and writes each mutation as a
// structured audit line. It runs alongside the registry service as the
// long-term mirror of the console's activity feed.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pittisunilkumar3/talent-spark-registry/internal/registry/events"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() {
		_ = logger.Sync()
	}()

	brokers := strings.Split(envOr("KAFKA_BROKERS", "localhost:9092"), ",")
	topic := envOr("TOPIC", "registry.events")
	groupID := envOr("GROUP_ID", "registry-audit")

	consumer := events.NewConsumer(brokers, groupID, topic, logger, logEvent(logger))

	ctx, cancel := context.WithCancel(context.Background())
	consumer.Start(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cancel()
	if err := consumer.Close(); err != nil {
		logger.Error("failed to close consumer", zap.Error(err))
	}
	logger.Info("Audit tail stopped")
}

func logEvent(logger *zap.Logger) func(context.Context, events.Event) error {
	audit := logger.Named("audit")
	return func(_ context.Context, event events.Event) error {
		fields := []zap.Field{
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
			zap.Time("occurred_at", event.OccurredAt),
		}
		if len(event.RemovedDepartments) > 0 {
			ids := make([]string, 0, len(event.RemovedDepartments))
			for _, dept := range event.RemovedDepartments {
				ids = append(ids, dept.ID)
			}
			fields = append(fields, zap.Strings("removed_department_ids", ids))
		}
		audit.Info("registry mutation", fields...)
		return nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
