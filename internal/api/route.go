package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	v1 "github.com/groomly/pet-services/notifygateway/internal/api/v1"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/v1/jobs", handler.CreateJob)
	app.Get("/v1/jobs/:id", handler.GetJob)
	app.Get("/v1/jobs", handler.GetJobs)
	app.Get("/v1/reconciliation", handler.Reconciliation)
}
