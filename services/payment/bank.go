package payment

import (
	"time"

	"swatrental/config"
	"swatrental/models"
)

const bankInstructions = "Please transfer the amount to the bank account and upload the payment receipt."

// Bank hands out static account details; an admin confirms the transfer later.
type Bank struct {
	cfg config.BankConfig
	now func() time.Time
}

func NewBank(cfg config.BankConfig, now func() time.Time) *Bank {
	return &Bank{cfg: cfg, now: now}
}

func (g *Bank) Key() string                  { return KeyBank }
func (g *Bank) Method() models.PaymentMethod { return models.MethodBankTransfer }

func (g *Bank) Initialize(order Order) (*Initialization, error) {
	details := g.cfg
	return &Initialization{
		PaymentMethod: KeyBank,
		Reference:     newReference("BANK", g.now()),
		BankDetails:   &details,
		BookingID:     order.BookingID,
		Amount:        order.Amount,
		Instructions:  bankInstructions,
		Method:        models.MethodBankTransfer,
	}, nil
}
