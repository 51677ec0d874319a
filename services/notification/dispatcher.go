package notification

import (
	"context"

	"swatrental/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher consumes booking:event tasks.
type Dispatcher struct {
	logger *zap.Logger
}

func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// HandleBookingEvent is the asynq handler for tasks.TypeBookingEvent.
// A malformed payload is skipped rather than retried.
func (d *Dispatcher) HandleBookingEvent(_ context.Context, task *asynq.Task) error {
	event, err := tasks.ParseBookingEvent(task)
	if err != nil {
		d.logger.Error("dropping booking event", zap.Error(err))
		return asynq.SkipRetry
	}

	title, body := Describe(event)
	d.logger.Info(title,
		zap.String("body", body),
		zap.String("type", string(event.Type)),
		zap.String("bookingID", event.BookingID),
		zap.String("userID", event.UserID),
		zap.Time("at", event.At),
	)
	return nil
}
