package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/complymate/doorguard/app/repository"
	"github.com/complymate/doorguard/internal/pkg/cache"
	"github.com/complymate/doorguard/internal/pkg/database"
	"github.com/complymate/doorguard/internal/pkg/env"
	"github.com/complymate/doorguard/internal/pkg/jobqueue"
	"github.com/complymate/doorguard/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	jobqueue.GetManager().Stop()
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 16 * 1024 * 1024, // imports are text files, 16 MiB is plenty
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", monitor.New())

	// background workers for backfill and export archiving
	jobqueue.GetManager().Start()

	// ROUTER
	router.InstallRouter(app)

	return app
}
