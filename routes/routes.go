package routes

import (
	"swatrental/handlers"
	"swatrental/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and user endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", hb.Auth.Register)
		authGroup.POST("/login", hb.Auth.Login)
		authGroup.GET("/me", auth, hb.Auth.Me)
	}

	api.GET("/users", auth, middleware.AdminOnly(), hb.Auth.ListUsers)
}

// RegisterCarRoutes registers the catalog. Reads are public.
func RegisterCarRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	cars := api.Group("/cars")
	{
		cars.GET("", hb.Cars.ListCars)
		cars.GET("/:id", hb.Cars.GetCar)

		admin := cars.Group("", auth, middleware.AdminOnly())
		admin.POST("", hb.Cars.CreateCar)
		admin.PUT("/:id", hb.Cars.UpdateCar)
		admin.DELETE("/:id", hb.Cars.DeleteCar)
	}
}

// RegisterBookingRoutes registers booking endpoints. Ownership and admin checks
// happen in the service so a missing booking answers 404 before 403.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	bookings := api.Group("/bookings")
	{
		bookings.POST("/quote", hb.Bookings.QuoteBooking)

		protected := bookings.Group("", auth)
		protected.POST("", hb.Bookings.CreateBooking)
		protected.GET("", hb.Bookings.ListBookings)
		protected.GET("/:id", hb.Bookings.GetBooking)
		protected.PUT("/:id", hb.Bookings.UpdateBooking)
		protected.DELETE("/:id", hb.Bookings.DeleteBooking)
	}
}

// RegisterPaymentRoutes registers payment endpoints. Gateway callbacks are public
// and authenticated by their signature.
func RegisterPaymentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	payments := api.Group("/payments")
	{
		payments.POST("/jazzcash/verify", hb.Payments.VerifyJazzCash)
		payments.POST("/easypaisa/verify", hb.Payments.VerifyEasyPaisa)
		payments.POST("/easypaisa/callback", hb.Payments.VerifyEasyPaisa)

		protected := payments.Group("", auth)
		protected.POST("/initialize", hb.Payments.InitializePayment)
		protected.POST("/bank/receipt", hb.Payments.UploadBankReceipt)
		protected.PUT("/bank/verify/:id", hb.Payments.VerifyBankPayment)
		protected.GET("/status/:bookingId", hb.Payments.GetPaymentStatus)
	}
}

// RegisterRoutes centralizes registration of all endpoints under /api.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, users middleware.ActorResolver) {
	r.Use(middleware.CORS())

	auth := middleware.JWTAuthMiddleware(users)
	api := r.Group("/api")

	api.GET("/health", hb.Health.Health)
	RegisterAuthRoutes(api, hb, auth)
	RegisterCarRoutes(api, hb, auth)
	RegisterBookingRoutes(api, hb, auth)
	RegisterPaymentRoutes(api, hb, auth)
}
