package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/habalhub/habal-backend/internal/database"
	"github.com/habalhub/habal-backend/internal/handlers"
	"github.com/habalhub/habal-backend/internal/middleware"
	"github.com/habalhub/habal-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, relying on environment")
	}

	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := services.InitRedis(); err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}

	if err := services.InitStorage(); err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	hub := services.NewHub()
	go hub.Run()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Locally stored uploads (avatars, driver documents)
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "/app/uploads"
	}
	r.Static("/uploads", uploadDir)

	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/profile", handlers.GetProfile(db))
				users.PUT("/profile", handlers.UpdateProfile(db))
				users.POST("/profile/avatar", handlers.UploadAvatar(db))
			}

			protected.GET("/pricing", handlers.GetPricing(db))

			rides := protected.Group("/rides")
			{
				rides.GET("/estimate", handlers.EstimateFare(db))
				rides.POST("", handlers.BookRide(db, hub))
				rides.GET("", handlers.GetMyRides(db))
				rides.GET("/:rideId", handlers.GetRide(db))
				rides.POST("/:rideId/cancel", handlers.CancelRide(db, hub))
			}

			drivers := protected.Group("/drivers")
			{
				drivers.POST("", handlers.RegisterDriver(db, hub))
				drivers.GET("/me", handlers.GetMyDriver(db))
				drivers.GET("/available", handlers.GetAvailableDrivers(db))
				drivers.POST("/availability", handlers.UpdateDriverAvailability(db))
				drivers.GET("/rides", handlers.GetDriverRides(db))
				drivers.POST("/rides/:rideId/accept", handlers.AcceptRide(db, hub))
				drivers.POST("/rides/:rideId/reject", handlers.RejectRide(db, hub))
				drivers.POST("/rides/:rideId/start", handlers.StartRide(db, hub))
				drivers.POST("/rides/:rideId/complete", handlers.CompleteRide(db, hub))
			}

			payments := protected.Group("/payments")
			{
				payments.POST("", handlers.CreatePayment(db))
				payments.GET("", handlers.GetMyPayments(db))
			}

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.GET("/stats", handlers.GetStats(db, hub))
				admin.GET("/drivers/pending", handlers.GetPendingDrivers(db))
				admin.POST("/drivers/:driverId/approve", handlers.ApproveDriver(db, hub))
				admin.POST("/drivers/:driverId/reject", handlers.RejectDriver(db, hub))
				admin.GET("/users", handlers.GetUsers(db))
				admin.GET("/users/:userId", handlers.GetUserDetail(db))
				admin.DELETE("/users/:userId", handlers.DeleteUser(db))
				admin.POST("/users/:userId/ban", handlers.BanUser(db))
				admin.PUT("/pricing", handlers.UpdatePricing(db))
				admin.GET("/payments", handlers.GetPayments(db))
				admin.PATCH("/payments/:paymentId/status", handlers.SetPaymentStatus(db, hub))
				admin.PATCH("/rides/:rideId/final-fare", handlers.SetFinalFare(db))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server:", err)
	}
}
