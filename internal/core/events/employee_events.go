package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeCreated = "employee.created"
	EventTypeEmployeeUpdated = "employee.updated"
	EventTypeEmployeeDeleted = "employee.deleted"
)

// EmployeeEventTypes lists every lifecycle event the employee service emits.
var EmployeeEventTypes = []string{
	EventTypeEmployeeCreated,
	EventTypeEmployeeUpdated,
	EventTypeEmployeeDeleted,
}

type EmployeeEvent struct {
	BaseEvent
	EmployeeID int64  `json:"employee_id"`
	Email      string `json:"email"`
	ActorID    int64  `json:"actor_id"`
}

func newEmployeeEvent(eventType string, employeeID int64, email string, actorID int64) *EmployeeEvent {
	return &EmployeeEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"email":       email,
				"actor_id":    actorID,
			},
		},
		EmployeeID: employeeID,
		Email:      email,
		ActorID:    actorID,
	}
}

func NewEmployeeCreatedEvent(employeeID int64, email string, actorID int64) *EmployeeEvent {
	return newEmployeeEvent(EventTypeEmployeeCreated, employeeID, email, actorID)
}

func NewEmployeeUpdatedEvent(employeeID int64, email string, actorID int64) *EmployeeEvent {
	return newEmployeeEvent(EventTypeEmployeeUpdated, employeeID, email, actorID)
}

func NewEmployeeDeletedEvent(employeeID int64, email string, actorID int64) *EmployeeEvent {
	return newEmployeeEvent(EventTypeEmployeeDeleted, employeeID, email, actorID)
}
