package web

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes mounts the API surface on the app.
func RegisterRoutes(app *fiber.App, handlers *APIHandlers) {
	app.Get("/health", handlers.HealthCheck)

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Patch("/:id", handlers.UpdateWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Post("/:id/toggle", handlers.ToggleWorkflow)
	w.Get("/:id/executions", handlers.GetWorkflowExecutions)

	t := app.Group("/templates")
	t.Get("/", handlers.GetTemplates)
	t.Post("/", handlers.CreateFromTemplate)

	e := app.Group("/executions")
	e.Get("/", handlers.GetExecutions)
	e.Delete("/", handlers.ClearExecutions)

	app.Post("/evaluate", handlers.Evaluate)
	app.Get("/action-types", handlers.GetActionTypes)
}
