package tasks

import (
	"encoding/json"
	"fmt"

	"swatrental/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingEvent = "booking:event"
	QueueDefault     = "default"
)

func NewBookingEventTask(event models.BookingEvent) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingEvent, b)
	opts := []asynq.Option{asynq.Queue(QueueDefault), asynq.MaxRetry(5)}

	return task, opts, nil
}

// ParseBookingEvent decodes the payload of a booking:event task.
func ParseBookingEvent(task *asynq.Task) (models.BookingEvent, error) {
	var event models.BookingEvent
	if task.Type() != TypeBookingEvent {
		return event, fmt.Errorf("unexpected task type %q", task.Type())
	}
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return event, fmt.Errorf("invalid booking event payload: %w", err)
	}
	return event, nil
}
