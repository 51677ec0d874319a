package notification

import (
	"context"
	"errors"
	"testing"

	"swatrental/models"
	"swatrental/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDescribeCoversEveryEvent(t *testing.T) {
	for _, typ := range []models.BookingEventType{
		models.EventBookingCreated,
		models.EventPaymentInitialized,
		models.EventPaymentConfirmed,
		models.EventReceiptUploaded,
		models.EventPaymentRejected,
		models.EventBookingCancelled,
		models.EventBookingOverridden,
		models.EventBookingDeleted,
	} {
		title, body := Describe(models.BookingEvent{Type: typ, BookingID: "0123456789abcdef"})
		assert.NotEqual(t, "Booking update", title, typ)
		assert.Contains(t, body, "01234567")
	}
}

func TestDispatcherHandlesTask(t *testing.T) {
	d := NewDispatcher(zap.NewNop())
	task, _, err := tasks.NewBookingEventTask(models.BookingEvent{Type: models.EventBookingCreated, BookingID: "b1"})
	require.NoError(t, err)
	assert.NoError(t, d.HandleBookingEvent(context.Background(), task))
}

func TestDispatcherSkipsMalformedPayload(t *testing.T) {
	d := NewDispatcher(zap.NewNop())
	err := d.HandleBookingEvent(context.Background(), asynq.NewTask(tasks.TypeBookingEvent, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestNewAsynqNotifierRequiresClient(t *testing.T) {
	_, err := NewAsynqNotifier(nil, zap.NewNop())
	assert.Error(t, err)
}
