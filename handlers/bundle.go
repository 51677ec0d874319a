package handlers

// HandlerBundle groups the endpoint handlers the router mounts.
type HandlerBundle struct {
	Auth     *AuthHandler
	Bookings *BookingHandler
	Payments *PaymentHandler
	Cars     *CarHandler
	Health   *HealthHandler
}
