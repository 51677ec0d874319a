// Package payment simulates the wallet and bank-transfer gateways: it builds
// the signed redirect payloads and verifies the signed callbacks. Nothing here
// touches a real payment network.
package payment

import (
	"swatrental/config"
	"swatrental/models"
)

// Request keys accepted by POST /payments/initialize.
const (
	KeyJazzCash  = "jazzcash"
	KeyEasyPaisa = "easypaisa"
	KeyBank      = "bank"
)

// Order is what a gateway needs to know about the booking being paid.
type Order struct {
	BookingID string
	Amount    float64
	CarName   string
	Email     string
	Phone     string
}

// Initialization is returned to the client so it can complete the payment.
type Initialization struct {
	PaymentMethod string               `json:"paymentMethod"`
	PaymentURL    string               `json:"paymentUrl,omitempty"`
	PaymentData   map[string]string    `json:"paymentData,omitempty"`
	Reference     string               `json:"reference"`
	BankDetails   *config.BankConfig   `json:"bankDetails,omitempty"`
	BookingID     string               `json:"bookingId,omitempty"`
	Amount        float64              `json:"amount,omitempty"`
	Instructions  string               `json:"instructions,omitempty"`
	Method        models.PaymentMethod `json:"-"`
}

// Verification is the trusted content of a callback whose signature checked out.
type Verification struct {
	Method    models.PaymentMethod
	Reference string
	// Amount in rupees.
	Amount float64
}

// Gateway starts a payment for one method.
type Gateway interface {
	Key() string
	Method() models.PaymentMethod
	Initialize(order Order) (*Initialization, error)
}

// CallbackGateway is a gateway that confirms payments through a signed callback.
type CallbackGateway interface {
	Gateway
	// Verify checks the signature and success code of callback fields.
	Verify(fields map[string]string) (*Verification, error)
	// SignCallback plays the gateway side: it returns fields with a valid signature added.
	SignCallback(fields map[string]string) map[string]string
}
