package payment

import (
	"strconv"
	"time"

	"swatrental/config"
	"swatrental/models"
	"swatrental/utils"
)

const (
	easyPaisaSuccess       = "SUCCESS"
	easyPaisaDefaultMobile = "03001234567"
)

// EasyPaisa is the SHA-256 token wallet redirect.
type EasyPaisa struct {
	cfg config.EasyPaisaConfig
	now func() time.Time
}

func NewEasyPaisa(cfg config.EasyPaisaConfig, now func() time.Time) *EasyPaisa {
	return &EasyPaisa{cfg: cfg, now: now}
}

func (g *EasyPaisa) Key() string                  { return KeyEasyPaisa }
func (g *EasyPaisa) Method() models.PaymentMethod { return models.MethodEasyPaisa }

func (g *EasyPaisa) Initialize(order Order) (*Initialization, error) {
	orderID := newReference("ORD", g.now())
	amount := formatAmount(order.Amount)

	mobile := order.Phone
	if mobile == "" {
		mobile = easyPaisaDefaultMobile
	}

	data := map[string]string{
		"storeId":      g.cfg.StoreID,
		"amount":       amount,
		"orderId":      orderID,
		"orderRefNum":  order.BookingID,
		"returnUrl":    g.cfg.ReturnURL,
		"postBackUrl":  g.cfg.PostBackURL,
		"emailAddress": order.Email,
		"mobileNumber": mobile,
		"token":        sha256Hex(g.cfg.StoreID + amount + orderID + g.cfg.APIKey),
	}

	return &Initialization{
		PaymentMethod: KeyEasyPaisa,
		PaymentURL:    g.cfg.PaymentURL,
		PaymentData:   data,
		Reference:     orderID,
		Method:        models.MethodEasyPaisa,
	}, nil
}

// Verify checks a callback token, which also covers paymentStatus.
func (g *EasyPaisa) Verify(fields map[string]string) (*Verification, error) {
	received := fields["token"]
	if received == "" || !equalHex(received, g.callbackToken(fields)) {
		return nil, utils.NewError(utils.KindInvalidSignature, "Invalid payment signature")
	}
	if fields["paymentStatus"] != easyPaisaSuccess {
		return nil, utils.NewError(utils.KindInvalidSignature, "Payment was not successful")
	}

	amount, err := strconv.ParseFloat(fields["amount"], 64)
	if err != nil {
		return nil, utils.WrapError(utils.KindInvalidSignature, "Invalid payment amount", err)
	}
	return &Verification{
		Method:    models.MethodEasyPaisa,
		Reference: fields["orderId"],
		Amount:    amount,
	}, nil
}

func (g *EasyPaisa) SignCallback(fields map[string]string) map[string]string {
	signed := copyFields(fields)
	signed["token"] = g.callbackToken(signed)
	return signed
}

func (g *EasyPaisa) callbackToken(fields map[string]string) string {
	return sha256Hex(g.cfg.StoreID + fields["amount"] + fields["orderId"] + fields["paymentStatus"] + g.cfg.APIKey)
}
