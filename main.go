package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/config"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/controllers"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/routes"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (sets config.DB, runs migrations and seeds)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied")

	// Event hub feeding the SSE stream
	hub := services.NewEventHub()

	// Initialize services
	availabilityService := services.NewAvailabilityService(db)
	pricingService := services.NewPricingService(db, availabilityService)
	staffService := services.NewStaffService(db, hub)
	bookingService := services.NewBookingService(db, pricingService, availabilityService, staffService, hub)
	roomService := services.NewRoomService(db)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService)
	roomController := controllers.NewRoomController(roomService, availabilityService)
	pricingController := controllers.NewPricingController(db, pricingService)
	staffController := controllers.NewStaffController(staffService)
	settingsController := controllers.NewSettingsController(db)
	eventsController := controllers.NewEventsController(hub)

	// Build router
	router := routes.SetupRouter(
		bookingController,
		roomController,
		pricingController,
		staffController,
		settingsController,
		eventsController,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts; WriteTimeout stays 0 so the SSE stream can live
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
