package payment

import (
	"testing"
	"time"

	"swatrental/config"
	"swatrental/models"
	"swatrental/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func testConfig() config.GatewayConfig {
	return config.GatewayConfig{
		JazzCash: config.JazzCashConfig{
			MerchantID:    "MC123",
			IntegritySalt: "salt",
			ReturnURL:     "http://localhost:3000/payment/success",
			PaymentURL:    "https://sandbox.example/jazzcash",
		},
		EasyPaisa: config.EasyPaisaConfig{
			StoreID:     "S1",
			APIKey:      "key",
			ReturnURL:   "http://localhost:3000/payment/success",
			PaymentURL:  "https://sandbox.example/easypaisa",
			PostBackURL: "http://localhost:5000/api/payments/easypaisa/callback",
		},
		Bank: config.BankConfig{AccountTitle: "Swat Car Rental", BankName: "Meezan Bank", IBAN: "PK36MEZN0000000123456789"},
	}
}

func newTestAdapter() *Adapter {
	return NewAdapter(testConfig(), func() time.Time { return fixedNow })
}

func TestUnknownKeyIsUnsupported(t *testing.T) {
	a := newTestAdapter()
	for _, key := range []string{"paypal", "", "JazzCash", "cash"} {
		_, err := a.Gateway(key)
		assert.Equal(t, utils.KindUnsupportedMethod, utils.KindOf(err), key)
	}
	_, err := a.Callback(KeyBank)
	assert.Equal(t, utils.KindUnsupportedMethod, utils.KindOf(err))
}

func TestJazzCashInitialize(t *testing.T) {
	g, err := newTestAdapter().Gateway(KeyJazzCash)
	require.NoError(t, err)

	init, err := g.Initialize(Order{BookingID: "b1", Amount: 15000, CarName: "Land Cruiser V8"})
	require.NoError(t, err)

	ref := init.Reference
	assert.Regexp(t, `^TXN1741944600000[0-9A-F]{6}$`, ref)
	assert.Equal(t, ref, init.PaymentData["txnRefNumber"])
	assert.Equal(t, models.MethodJazzCash, init.Method)
	assert.Equal(t, "1500000", init.PaymentData["amount"])
	assert.Equal(t, "Car Rental - Land Cruiser V8", init.PaymentData["description"])
	assert.Equal(t, "20250314093000", init.PaymentData["txnDateTime"])
	assert.Equal(t, "20250314100000", init.PaymentData["txnExpiryDateTime"])

	canonical := "salt&1500000&b1&Car Rental - Land Cruiser V8&MC123&http://localhost:3000/payment/success&20250314093000&" + ref
	assert.Equal(t, hmacSHA256Hex("salt", canonical), init.PaymentData["secureHash"])
}

func jazzCashCallback() map[string]string {
	return map[string]string{
		"pp_Amount":        "1500000",
		"pp_TxnRefNo":      "TXN1741944600000",
		"pp_ResponseCode":  "000",
		"pp_BillReference": "b1",
	}
}

func TestJazzCashVerifySignedCallback(t *testing.T) {
	g := newTestAdapter().jazzCash
	v, err := g.Verify(g.SignCallback(jazzCashCallback()))
	require.NoError(t, err)
	assert.Equal(t, "TXN1741944600000", v.Reference)
	assert.InDelta(t, 15000, v.Amount, 0.001)
}

func TestJazzCashVerifyRejectsTampering(t *testing.T) {
	g := newTestAdapter().jazzCash

	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"amount changed after signing", func(f map[string]string) { f["pp_Amount"] = "100" }},
		{"hash missing", func(f map[string]string) { delete(f, "pp_SecureHash") }},
		{"hash garbage", func(f map[string]string) { f["pp_SecureHash"] = "deadbeef" }},
		{"extra field", func(f map[string]string) { f["pp_Extra"] = "x" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields := g.SignCallback(jazzCashCallback())
			tc.mutate(fields)
			_, err := g.Verify(fields)
			assert.Equal(t, utils.KindInvalidSignature, utils.KindOf(err))
		})
	}
}

func TestJazzCashVerifyRequiresSuccessCode(t *testing.T) {
	g := newTestAdapter().jazzCash
	fields := jazzCashCallback()
	fields["pp_ResponseCode"] = "124"
	_, err := g.Verify(g.SignCallback(fields))
	assert.Equal(t, utils.KindInvalidSignature, utils.KindOf(err))
}

func TestEasyPaisaInitialize(t *testing.T) {
	g, err := newTestAdapter().Gateway(KeyEasyPaisa)
	require.NoError(t, err)

	init, err := g.Initialize(Order{BookingID: "b1", Amount: 4500, Email: "ali@example.com"})
	require.NoError(t, err)

	assert.Regexp(t, `^ORD1741944600000[0-9A-F]{6}$`, init.Reference)
	assert.Equal(t, init.Reference, init.PaymentData["orderId"])
	assert.Equal(t, "4500", init.PaymentData["amount"])
	assert.Equal(t, "03001234567", init.PaymentData["mobileNumber"])
	assert.Equal(t, "http://localhost:5000/api/payments/easypaisa/callback", init.PaymentData["postBackUrl"])
	assert.Equal(t, sha256Hex("S1"+"4500"+init.Reference+"key"), init.PaymentData["token"])
}

func TestEasyPaisaVerify(t *testing.T) {
	g := newTestAdapter().easyPaisa
	callback := map[string]string{"amount": "4500", "orderId": "ORD1", "paymentStatus": "SUCCESS"}

	v, err := g.Verify(g.SignCallback(callback))
	require.NoError(t, err)
	assert.Equal(t, "ORD1", v.Reference)
	assert.Equal(t, models.MethodEasyPaisa, v.Method)

	forged := g.SignCallback(map[string]string{"amount": "4500", "orderId": "ORD1", "paymentStatus": "FAILED"})
	forged["paymentStatus"] = "SUCCESS"
	_, err = g.Verify(forged)
	assert.Equal(t, utils.KindInvalidSignature, utils.KindOf(err))

	failed := g.SignCallback(map[string]string{"amount": "4500", "orderId": "ORD1", "paymentStatus": "FAILED"})
	_, err = g.Verify(failed)
	assert.Equal(t, utils.KindInvalidSignature, utils.KindOf(err))
}

func TestBankInitialize(t *testing.T) {
	g, err := newTestAdapter().Gateway(KeyBank)
	require.NoError(t, err)

	init, err := g.Initialize(Order{BookingID: "b1", Amount: 9000})
	require.NoError(t, err)
	assert.Regexp(t, `^BANK1741944600000[0-9A-F]{6}$`, init.Reference)
	assert.Equal(t, models.MethodBankTransfer, init.Method)
	require.NotNil(t, init.BankDetails)
	assert.Equal(t, "Meezan Bank", init.BankDetails.BankName)
	assert.Equal(t, "b1", init.BookingID)
	assert.NotEmpty(t, init.Instructions)
}

func TestReferencesDifferWithinOneMillisecond(t *testing.T) {
	a := newTestAdapter()
	for _, key := range []string{KeyJazzCash, KeyEasyPaisa, KeyBank} {
		g, err := a.Gateway(key)
		require.NoError(t, err)

		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			init, err := g.Initialize(Order{BookingID: "b1", Amount: 9000})
			require.NoError(t, err)
			assert.False(t, seen[init.Reference], "%s reused %s", key, init.Reference)
			seen[init.Reference] = true
		}
	}
}
