package storage

import (
	"context"
	"strings"
)

// ReceiptStore persists bank transfer receipts and returns the reference to keep on the booking.
type ReceiptStore interface {
	Save(ctx context.Context, bookingID, receipt string) (string, error)
}

// IsDataURI reports whether receipt is an inline base64 upload rather than a URL.
func IsDataURI(receipt string) bool {
	return strings.HasPrefix(receipt, "data:") && strings.Contains(receipt, ";base64,")
}

// PassThroughStore keeps receipts exactly as submitted.
type PassThroughStore struct{}

func (PassThroughStore) Save(_ context.Context, _ string, receipt string) (string, error) {
	return receipt, nil
}
