package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/supporta-app/supporta/internal/admin"
	"github.com/supporta-app/supporta/internal/alerts"
	"github.com/supporta-app/supporta/internal/appointments"
	"github.com/supporta-app/supporta/internal/auth"
	"github.com/supporta-app/supporta/internal/catalog"
	"github.com/supporta-app/supporta/internal/db"
	"github.com/supporta-app/supporta/internal/messaging"
	mware "github.com/supporta-app/supporta/internal/middleware"
	"github.com/supporta-app/supporta/internal/orders"
	"github.com/supporta-app/supporta/internal/reviews"
	"github.com/supporta-app/supporta/internal/user"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Initialize subsystems
	db.Init()
	alerts.Init()
	defer alerts.Close()

	e := echo.New()

	// Basic middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "supporta"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(context.Background()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Public routes
	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", auth.Signup)
	authGroup.POST("/signup/entrepreneur", auth.SignupEntrepreneur)
	authGroup.POST("/login", auth.Login)
	authGroup.POST("/password/request", auth.RequestPasswordReset)
	authGroup.POST("/password/reset", auth.ResetPassword)

	e.GET("/user/:id/profile", user.GetPublicProfile)

	// Customer-facing discovery is public
	e.GET("/catalog/products", catalog.GetAllProducts)
	e.GET("/catalog/services", catalog.GetAllServices)
	e.GET("/catalog/search", catalog.SearchListings)
	e.GET("/catalog/services/:id/slots", appointments.ListAvailableSlots)
	e.GET("/catalog/products/:id/reviews", reviews.GetProductReviews)

	// Protected routes
	api := e.Group("")
	api.Use(mware.JWTMiddleware)

	api.GET("/auth/me", auth.Me)
	api.DELETE("/auth/account", auth.DeleteAccount)

	api.PATCH("/user/profile", user.UpdateProfile)

	// Entrepreneur catalog management
	api.POST("/catalog/products", catalog.CreateProduct, mware.RequireRoles("entrepreneur"))
	api.PATCH("/catalog/products/:id", catalog.UpdateProduct, mware.RequireRoles("entrepreneur"))
	api.DELETE("/catalog/products/:id", catalog.DeleteProduct, mware.RequireRoles("entrepreneur"))
	api.GET("/catalog/products/me", catalog.GetMyProducts, mware.RequireRoles("entrepreneur"))
	api.POST("/catalog/services", catalog.CreateService, mware.RequireRoles("entrepreneur"))
	api.PATCH("/catalog/services/:id", catalog.UpdateService, mware.RequireRoles("entrepreneur"))
	api.DELETE("/catalog/services/:id", catalog.DeleteService, mware.RequireRoles("entrepreneur"))
	api.GET("/catalog/services/me", catalog.GetMyServices, mware.RequireRoles("entrepreneur"))

	// Orders
	api.POST("/orders", orders.CreateOrder, mware.RequireRoles("customer"))
	api.POST("/orders/:id/advance", orders.AdvanceOrder, mware.RequireRoles("entrepreneur"))
	api.POST("/orders/:id/cancel", orders.CancelOrder, mware.RequireRoles("customer"))
	api.GET("/orders/me", orders.GetUserOrders)

	// Appointments
	api.POST("/catalog/services/:id/book", appointments.BookAppointment, mware.RequireRoles("customer"))
	api.POST("/appointments/:id/cancel", appointments.CancelAppointment, mware.RequireRoles("customer"))
	api.GET("/appointments/me", appointments.GetMyAppointments, mware.RequireRoles("customer"))
	api.GET("/catalog/services/:id/appointments", appointments.GetServiceAppointments, mware.RequireRoles("entrepreneur"))

	// Reviews
	api.POST("/catalog/products/:id/reviews", reviews.CreateReview, mware.RequireRoles("customer"))

	// Messaging
	api.POST("/messages/:user_id", messaging.SendMessage)
	api.GET("/messages/:user_id", messaging.ListConversation)

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(mware.JWTMiddleware)
	adminGroup.Use(mware.AdminGuard)

	adminGroup.GET("/users", admin.ListUsers)
	adminGroup.POST("/users/:id/suspend", admin.SuspendUser)
	adminGroup.POST("/users/:id/activate", admin.ActivateUser)
	adminGroup.GET("/reports", admin.Reports)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := e.Start(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
