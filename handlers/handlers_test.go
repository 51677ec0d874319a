package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"swatrental/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("pickupDate", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseDate("pickupDate", "2024-01-01T10:00:00+05:00")
	require.NoError(t, err)
	assert.Equal(t, 5, got.UTC().Hour())

	_, err = parseDate("pickupDate", "01/01/2024")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func callbackContext(t *testing.T, contentType, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", contentType)
	return c
}

func TestCallbackFieldsFromJSON(t *testing.T) {
	c := callbackContext(t, "application/json; charset=utf-8",
		`{"pp_Amount": 4500000, "pp_TxnRefNo": "TXN1", "paid": true, "note": null}`)

	fields, err := callbackFields(c)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"pp_Amount":   "4500000",
		"pp_TxnRefNo": "TXN1",
		"paid":        "true",
		"note":        "",
	}, fields)
}

func TestCallbackFieldsKeepNumbersVerbatim(t *testing.T) {
	c := callbackContext(t, "application/json",
		`{"pp_Amount": 12345678901234567890, "amount": 45000.50, "fee": 1e3}`)

	fields, err := callbackFields(c)
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567890", fields["pp_Amount"])
	assert.Equal(t, "45000.50", fields["amount"])
	assert.Equal(t, "1e3", fields["fee"])
}

func TestCallbackFieldsFromForm(t *testing.T) {
	c := callbackContext(t, "application/x-www-form-urlencoded", "orderId=ORD1&amount=45000.5&paymentStatus=SUCCESS")

	fields, err := callbackFields(c)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"orderId": "ORD1", "amount": "45000.5", "paymentStatus": "SUCCESS"}, fields)
}

func TestCallbackFieldsRejectsBrokenJSON(t *testing.T) {
	c := callbackContext(t, "application/json", `{"pp_Amount":`)
	_, err := callbackFields(c)
	assert.Error(t, err)
}
