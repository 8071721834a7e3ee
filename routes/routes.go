package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/controllers"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/middleware"
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

// SetupRouter wires controller instances onto the HTTP surface.
func SetupRouter(
	bc *controllers.BookingController,
	rc *controllers.RoomController,
	pc *controllers.PricingController,
	sc *controllers.StaffController,
	stc *controllers.SettingsController,
	ec *controllers.EventsController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

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
			bookings.GET("", bc.GetUserBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
			bookings.PUT("/:id/checkin", bc.CheckIn)
			bookings.PUT("/:id/checkout", bc.CheckOut)
			bookings.PUT("/:id/modify", bc.ModifyBooking)
			bookings.PUT("/:id/move", bc.MoveBooking)
			bookings.GET("/:id/invoice", bc.GetInvoice)
		}

		rooms := api.Group("/rooms")
		{
			// Fixed paths must come before /:id.
			rooms.GET("/available", rc.GetAvailableRooms)
			rooms.GET("/blocked-dates", rc.GetBlockedDates)

			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeactivateRoom)
		}

		pricing := api.Group("/pricing")
		{
			pricing.GET("/rules", pc.GetRules)
			pricing.POST("/rules", pc.CreateRule)
			pricing.PUT("/rules/:id", pc.UpdateRule)
			pricing.DELETE("/rules/:id", pc.DeleteRule)
			pricing.GET("/estimate", pc.GetEstimate)
		}

		staff := api.Group("/staff")
		{
			staff.GET("/tasks", sc.GetTasks)
			staff.POST("/tasks", sc.CreateTask)
			staff.PUT("/tasks/:id/status", sc.UpdateTaskStatus)
			staff.GET("/stats", sc.GetStats)
		}

		api.GET("/settings", stc.GetSettings)
		api.PUT("/settings", stc.UpdateSettings)

		api.GET("/events", ec.Stream)
	}

	return r
}
