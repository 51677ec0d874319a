package handlers

import (
	"net/http"

	"swatrental/models"
	"swatrental/services/booking"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type createBookingRequest struct {
	Car             string `json:"car"`
	PickupDate      string `json:"pickupDate" binding:"required"`
	ReturnDate      string `json:"returnDate" binding:"required"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	PaymentMethod   string `json:"paymentMethod"`
	NeedDriver      bool   `json:"needDriver"`
	Notes           string `json:"notes"`
}

type quoteRequest struct {
	Car        string `json:"car" binding:"required"`
	PickupDate string `json:"pickupDate" binding:"required"`
	ReturnDate string `json:"returnDate" binding:"required"`
	NeedDriver bool   `json:"needDriver"`
}

type updateBookingRequest struct {
	Status          *string `json:"status"`
	PaymentStatus   *string `json:"paymentStatus"`
	PaymentMethod   *string `json:"paymentMethod"`
	PickupDate      *string `json:"pickupDate"`
	ReturnDate      *string `json:"returnDate"`
	PickupLocation  *string `json:"pickupLocation"`
	DropoffLocation *string `json:"dropoffLocation"`
	NeedDriver      *bool   `json:"needDriver"`
	Notes           *string `json:"notes"`
}

func (r updateBookingRequest) toUpdate() (models.BookingUpdate, error) {
	pickup, err := parseOptionalDate("pickupDate", r.PickupDate)
	if err != nil {
		return models.BookingUpdate{}, err
	}
	ret, err := parseOptionalDate("returnDate", r.ReturnDate)
	if err != nil {
		return models.BookingUpdate{}, err
	}
	u := models.BookingUpdate{
		Status:          r.Status,
		PaymentStatus:   r.PaymentStatus,
		PickupDate:      pickup,
		ReturnDate:      ret,
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		NeedDriver:      r.NeedDriver,
		Notes:           r.Notes,
	}
	if r.PaymentMethod != nil {
		m := models.PaymentMethod(*r.PaymentMethod)
		u.PaymentMethod = &m
	}
	return u, nil
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pickup, err := parseDate("pickupDate", req.PickupDate)
	if err != nil {
		respondError(c, err)
		return
	}
	ret, err := parseDate("returnDate", req.ReturnDate)
	if err != nil {
		respondError(c, err)
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), actor, models.BookingInput{
		CarID:           req.Car,
		PickupDate:      pickup,
		ReturnDate:      ret,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PaymentMethod:   models.PaymentMethod(req.PaymentMethod),
		NeedDriver:      req.NeedDriver,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, b)
}

// QuoteBooking handles POST /bookings/quote.
func (h *BookingHandler) QuoteBooking(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pickup, err := parseDate("pickupDate", req.PickupDate)
	if err != nil {
		respondError(c, err)
		return
	}
	ret, err := parseDate("returnDate", req.ReturnDate)
	if err != nil {
		respondError(c, err)
		return
	}

	q, err := h.Service.Quote(c.Request.Context(), req.Car, pickup, ret, req.NeedDriver)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, q)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	bookings, err := h.Service.ListBookings(c.Request.Context(), actor, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, bookings, len(bookings))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	b, err := h.Service.GetBooking(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

// UpdateBooking handles PUT /bookings/:id. Owners may only cancel.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		respondError(c, err)
		return
	}

	b, err := h.Service.UpdateBooking(c.Request.Context(), actor, c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, b)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteBooking(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Booking removed", nil)
}
