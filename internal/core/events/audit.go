package events

import (
	"context"
	"log/slog"
)

// AuditHandler writes one structured log line per event.
func AuditHandler(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		attrs := []any{
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
		}
		if e, ok := event.(*EmployeeEvent); ok {
			attrs = append(attrs, "employee_id", e.EmployeeID, "actor_id", e.ActorID)
		}
		logger.InfoContext(ctx, "audit", attrs...)
		return nil
	}
}

// SubscribeAudit attaches AuditHandler to every employee event type.
func SubscribeAudit(bus *EventBus, logger *slog.Logger) {
	handler := AuditHandler(logger)
	for _, t := range EmployeeEventTypes {
		bus.Subscribe(t, handler)
	}
}
