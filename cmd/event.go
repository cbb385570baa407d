package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Inspect the employee lifecycle events and their audit output`,
}

var listEventsCmd = &cobra.Command{
	Use:   "list",
	Short: "List employee event types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range events.EmployeeEventTypes {
			fmt.Println(t)
		}
	},
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a sample employee event",
	Long:  `Publish a sample employee event through the audit subscriber to check the log output`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(args[0])
	},
}

var (
	eventEmployeeID int64
	eventEmail      string
)

func publishSampleEvent(eventType string) error {
	var event *events.EmployeeEvent
	switch eventType {
	case events.EventTypeEmployeeCreated:
		event = events.NewEmployeeCreatedEvent(eventEmployeeID, eventEmail, 0)
	case events.EventTypeEmployeeUpdated:
		event = events.NewEmployeeUpdatedEvent(eventEmployeeID, eventEmail, 0)
	case events.EventTypeEmployeeDeleted:
		event = events.NewEmployeeDeletedEvent(eventEmployeeID, eventEmail, 0)
	default:
		fmt.Fprintf(os.Stderr, "known event types: %v\n", events.EmployeeEventTypes)
		return fmt.Errorf("unknown event type %q", eventType)
	}

	lg := logger.LoggerWrapper()
	bus := events.NewEventBus(lg)
	events.SubscribeAudit(bus, lg)

	lg.Info("publishing sample event", "event_type", eventType, "event_id", event.EventID())
	return bus.PublishSync(context.Background(), event)
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventEmployeeID, "employee-id", 1, "Employee id carried by the event")
	publishEventCmd.Flags().StringVar(&eventEmail, "email", "sample@mail.com", "Employee email carried by the event")

	eventCmd.AddCommand(listEventsCmd)
	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
