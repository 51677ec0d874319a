package payment

import (
	"strconv"
	"strings"
	"time"

	"swatrental/config"
	"swatrental/utils"

	"github.com/google/uuid"
)

// Adapter resolves request keys to gateways.
type Adapter struct {
	jazzCash  *JazzCash
	easyPaisa *EasyPaisa
	bank      *Bank
}

// NewAdapter builds every gateway from cfg. A nil now uses time.Now.
func NewAdapter(cfg config.GatewayConfig, now func() time.Time) *Adapter {
	if now == nil {
		now = time.Now
	}
	return &Adapter{
		jazzCash:  NewJazzCash(cfg.JazzCash, now),
		easyPaisa: NewEasyPaisa(cfg.EasyPaisa, now),
		bank:      NewBank(cfg.Bank, now),
	}
}

// Gateway returns the gateway for a request key such as "jazzcash".
func (a *Adapter) Gateway(key string) (Gateway, error) {
	switch key {
	case KeyJazzCash:
		return a.jazzCash, nil
	case KeyEasyPaisa:
		return a.easyPaisa, nil
	case KeyBank:
		return a.bank, nil
	}
	return nil, utils.NewError(utils.KindUnsupportedMethod, "Invalid payment method")
}

// Callback returns the gateway that verifies callbacks for key.
func (a *Adapter) Callback(key string) (CallbackGateway, error) {
	switch key {
	case KeyJazzCash:
		return a.jazzCash, nil
	case KeyEasyPaisa:
		return a.easyPaisa, nil
	}
	return nil, utils.NewError(utils.KindUnsupportedMethod, "Invalid payment method")
}

// newReference is prefix, the Unix millisecond clock and six random hex digits.
func newReference(prefix string, now time.Time) string {
	return prefix + strconv.FormatInt(now.UnixMilli(), 10) + strings.ToUpper(uuid.New().String()[:6])
}
