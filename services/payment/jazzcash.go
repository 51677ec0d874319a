package payment

import (
	"math"
	"strconv"
	"time"

	"swatrental/config"
	"swatrental/models"
	"swatrental/utils"
)

const (
	jazzCashTimeLayout   = "20060102150405"
	jazzCashExpiry       = 30 * time.Minute
	jazzCashSuccessCode  = "000"
	jazzCashHashField    = "pp_SecureHash"
	jazzCashExpiryField  = "txnExpiryDateTime"
	jazzCashRequestHash  = "secureHash"
	jazzCashRefField     = "pp_TxnRefNo"
	jazzCashAmountField  = "pp_Amount"
	jazzCashResponseCode = "pp_ResponseCode"
)

// JazzCash is the HMAC-signed wallet redirect.
type JazzCash struct {
	cfg config.JazzCashConfig
	now func() time.Time
}

func NewJazzCash(cfg config.JazzCashConfig, now func() time.Time) *JazzCash {
	return &JazzCash{cfg: cfg, now: now}
}

func (g *JazzCash) Key() string                  { return KeyJazzCash }
func (g *JazzCash) Method() models.PaymentMethod { return models.MethodJazzCash }

func (g *JazzCash) Initialize(order Order) (*Initialization, error) {
	now := g.now().UTC()
	ref := newReference("TXN", now)

	data := map[string]string{
		"amount":        formatAmount(math.Round(order.Amount * 100)),
		"billReference": order.BookingID,
		"description":   "Car Rental - " + order.CarName,
		"merchantId":    g.cfg.MerchantID,
		"returnUrl":     g.cfg.ReturnURL,
		"txnDateTime":   now.Format(jazzCashTimeLayout),
		"txnRefNumber":  ref,
	}
	data[jazzCashRequestHash] = g.sign(data)
	data[jazzCashExpiryField] = now.Add(jazzCashExpiry).Format(jazzCashTimeLayout)

	return &Initialization{
		PaymentMethod: KeyJazzCash,
		PaymentURL:    g.cfg.PaymentURL,
		PaymentData:   data,
		Reference:     ref,
		Method:        models.MethodJazzCash,
	}, nil
}

func (g *JazzCash) Verify(fields map[string]string) (*Verification, error) {
	received, ok := fields[jazzCashHashField]
	if !ok || received == "" {
		return nil, utils.NewError(utils.KindInvalidSignature, "Invalid payment signature")
	}
	if !equalHex(received, g.sign(fields, jazzCashHashField)) {
		return nil, utils.NewError(utils.KindInvalidSignature, "Invalid payment signature")
	}
	if fields[jazzCashResponseCode] != jazzCashSuccessCode {
		return nil, utils.NewError(utils.KindInvalidSignature, "Payment was not successful")
	}

	paisa, err := strconv.ParseFloat(fields[jazzCashAmountField], 64)
	if err != nil {
		return nil, utils.WrapError(utils.KindInvalidSignature, "Invalid payment amount", err)
	}
	return &Verification{
		Method:    models.MethodJazzCash,
		Reference: fields[jazzCashRefField],
		Amount:    paisa / 100,
	}, nil
}

func (g *JazzCash) SignCallback(fields map[string]string) map[string]string {
	signed := copyFields(fields)
	delete(signed, jazzCashHashField)
	signed[jazzCashHashField] = g.sign(signed, jazzCashHashField)
	return signed
}

func (g *JazzCash) sign(fields map[string]string, skip ...string) string {
	salt := g.cfg.IntegritySalt
	return hmacSHA256Hex(salt, canonicalString(salt, fields, skip...))
}
