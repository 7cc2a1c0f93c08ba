package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"speedballhub/internal/app"
	"speedballhub/internal/handlers"
	"speedballhub/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close application", err)
		}
	}()

	if _, err := application.Database.Migrate(); err != nil {
		log.Er("failed to run migrations", err)
		os.Exit(1)
	}

	server := fiber.New(fiber.Config{
		AppName:               "speedballhub",
		DisableStartupMessage: true,
	})

	server.Use(cors.New(cors.Config{
		AllowOrigins:     application.Config.CorsOrigins,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type",
	}))
	server.Use(application.Middleware.RequestLogger())

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		address := fmt.Sprintf(":%d", application.Config.ServerPort)
		log.Info("Starting server", "address", address, "environment", application.Config.Environment)
		if err := server.Listen(address); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := server.Shutdown(); err != nil {
		log.Er("failed to shut down server", err)
	}
}
