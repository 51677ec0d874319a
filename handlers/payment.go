package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"swatrental/services/booking"
	"swatrental/services/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Service booking.BookingService
}

func NewPaymentHandler(svc booking.BookingService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

type initializePaymentRequest struct {
	BookingID     string `json:"bookingId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type receiptRequest struct {
	BookingID    string `json:"bookingId" binding:"required"`
	ReceiptImage string `json:"receiptImage"`
}

type bankVerifyRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// InitializePayment handles POST /payments/initialize.
func (h *PaymentHandler) InitializePayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req initializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	init, err := h.Service.InitializePayment(c.Request.Context(), actor, req.BookingID, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, init)
}

// VerifyJazzCash handles POST /payments/jazzcash/verify.
func (h *PaymentHandler) VerifyJazzCash(c *gin.Context) {
	h.verifyCallback(c, payment.KeyJazzCash)
}

// VerifyEasyPaisa serves both the verify and the server-to-server callback routes.
func (h *PaymentHandler) VerifyEasyPaisa(c *gin.Context) {
	h.verifyCallback(c, payment.KeyEasyPaisa)
}

func (h *PaymentHandler) verifyCallback(c *gin.Context, key string) {
	fields, err := callbackFields(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Service.VerifyGatewayCallback(c.Request.Context(), key, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Payment verified successfully", b)
}

// callbackFields reads a gateway callback posted as JSON or as a form.
func callbackFields(c *gin.Context) (map[string]string, error) {
	fields := make(map[string]string)

	if strings.HasPrefix(c.ContentType(), "application/json") {
		// Numbers keep their literal text; signatures cover the digits as sent.
		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		var raw map[string]interface{}
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to decode callback: %w", err)
		}
		for k, v := range raw {
			switch val := v.(type) {
			case string:
				fields[k] = val
			case nil:
				fields[k] = ""
			case json.Number:
				fields[k] = val.String()
			default:
				fields[k] = fmt.Sprint(val)
			}
		}
		return fields, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse callback form: %w", err)
	}
	for k := range c.Request.PostForm {
		fields[k] = c.Request.PostForm.Get(k)
	}
	return fields, nil
}

// UploadBankReceipt handles POST /payments/bank/receipt.
func (h *PaymentHandler) UploadBankReceipt(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req receiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Service.UploadBankReceipt(c.Request.Context(), actor, req.BookingID, req.ReceiptImage)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Receipt uploaded successfully. Payment will be verified by admin.", b)
}

// VerifyBankPayment handles PUT /payments/bank/verify/:id.
func (h *PaymentHandler) VerifyBankPayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req bankVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Service.VerifyBankPayment(c.Request.Context(), actor, c.Param("id"), *req.Approve)
	if err != nil {
		respondError(c, err)
		return
	}
	verdict := "rejected"
	if *req.Approve {
		verdict = "approved"
	}
	respondMessage(c, "Payment "+verdict+" successfully", b)
}

func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	view, err := h.Service.GetPaymentStatus(c.Request.Context(), actor, c.Param("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, view)
}
