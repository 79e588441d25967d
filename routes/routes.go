package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"resort-backend/controllers"
	"resort-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	bc *controllers.BookingController,
	rc *controllers.RoomController,
	gc *controllers.GuestController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)

			// literal segments must register before /:id
			bookings.GET("/availability", bc.FleetAvailability)
			bookings.GET("/active", bc.ActiveBookings)
			bookings.GET("/upcoming", bc.UpcomingBookings)
			bookings.GET("/past", bc.PastBookings)
			bookings.GET("/status/:status", bc.BookingsByStatus)
			bookings.GET("/room/:roomId/availability", bc.RoomAvailability)

			bookings.GET("/:id", bc.GetBookingByID)
			bookings.PUT("/:id", bc.UpdateBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)

			bookings.POST("/:id/confirm", bc.ConfirmBooking())
			bookings.POST("/:id/checkin", bc.CheckInBooking())
			bookings.POST("/:id/checkout", bc.CheckOutBooking())
			bookings.POST("/:id/cancel", bc.CancelBooking())
			bookings.POST("/:id/no-show", bc.MarkNoShow())
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoomByID)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", gc.GetGuests)
			guests.POST("", gc.CreateGuest)
			guests.GET("/:id", gc.GetGuestByID)
			guests.GET("/:id/companions", gc.GetCompanions)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", gc.DeleteGuest)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
		}
	}

	return r
}
