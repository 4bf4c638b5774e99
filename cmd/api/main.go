package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/smartservices-app/backend_api/internal/cache"
	"github.com/smartservices-app/backend_api/internal/config"
	"github.com/smartservices-app/backend_api/internal/db"
	"github.com/smartservices-app/backend_api/internal/handlers"
	"github.com/smartservices-app/backend_api/internal/middleware"
	"github.com/smartservices-app/backend_api/internal/models"
	"github.com/smartservices-app/backend_api/internal/services/auth"
	"github.com/smartservices-app/backend_api/internal/services/bookings"
	"github.com/smartservices-app/backend_api/internal/services/directory"
	"github.com/smartservices-app/backend_api/internal/services/push"
	"github.com/smartservices-app/backend_api/internal/services/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(&models.User{}, &models.Booking{}); err != nil {
		log.Fatal(err)
	}

	rdb := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)

	userSvc := users.NewService(gdb)
	dirSvc := directory.NewService(gdb, rdb)
	authSvc := auth.NewService(userSvc, cfg.JWTSecret, cfg.JWTExpiresMin)
	pushSvc := push.NewService(cfg.FirebaseCredFile)
	bookingSvc := bookings.NewService(gdb, userSvc, pushSvc)

	authH := handlers.NewAuthHandler(authSvc)
	userH := handlers.NewUserHandler(userSvc, dirSvc)
	bookingH := handlers.NewBookingHandler(bookingSvc)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// public
	app.Post("/auth/login", authH.Login)
	app.Post("/users", userH.Register)
	app.Get("/users", userH.List)
	app.Get("/users/role/:role", userH.ListByRole)
	app.Get("/users/:id", userH.Get)
	app.Get("/bookings", bookingH.List)
	app.Get("/bookings/user/:userId", bookingH.ListByUser)
	app.Get("/bookings/:id", bookingH.Get)

	// protected (JWT from the Authorization header)
	protected := app.Group("/",
		middleware.JWTFromHeader(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Patch("/users/:id", userH.UpdateProfile)
	protected.Patch("/users/:id/token", userH.UpdateFCMToken)
	protected.Delete("/users/:id", userH.Delete)

	protected.Post("/bookings",
		middleware.RequireRoles(string(models.RoleCustomer)),
		bookingH.Create,
	)
	protected.Patch("/bookings/:id", bookingH.Update)
	protected.Delete("/bookings/:id", bookingH.Delete)

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
