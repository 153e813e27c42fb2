package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

// problemResponse writes an RFC 7807 problem document with the request path
// as its instance.
func problemResponse(c fiber.Ctx, status int, problemType, detail string) error {
	problem := problems.NewStatusProblem(status).
		WithInstance(c.Path()).
		WithType(problemType).
		WithDetail(detail)

	return c.Status(status).JSON(problem)
}

func badRequest(c fiber.Ctx, detail string) error {
	return problemResponse(c, fiber.StatusBadRequest, "validation_error", detail)
}

func notFound(c fiber.Ctx, detail string) error {
	return problemResponse(c, fiber.StatusNotFound, "not_found", detail)
}

func internalError(c fiber.Ctx, err error) error {
	return problemResponse(c, fiber.StatusInternalServerError, "internal_error", err.Error())
}
