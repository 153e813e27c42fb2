package web

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/medforge/ruleflow/pkg/events"
	"github.com/medforge/ruleflow/pkg/models"
	"github.com/medforge/ruleflow/pkg/persistence"
	"github.com/medforge/ruleflow/pkg/registry"
	"github.com/medforge/ruleflow/pkg/workflow"
)

type APIHandlers struct {
	repository *workflow.Repository
	engine     *workflow.Engine
	registry   *registry.Registry
	validator  *validator.Validate
}

func NewAPIHandlers(
	repository *workflow.Repository,
	engine *workflow.Engine,
	reg *registry.Registry,
	validate *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		repository: repository,
		engine:     engine,
		registry:   reg,
		validator:  validate,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.repository.HealthCheck(c.Context())

	status := "healthy"
	message := "Ruleflow API is healthy"
	httpStatus := http.StatusOK

	if !repOk {
		status = "unhealthy"
		message = "Ruleflow API is unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	workflows, err := h.repository.FetchAll(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	if status := c.Query("status"); status != "" {
		filtered := workflows[:0]

		for _, wf := range workflows {
			if string(wf.Status) == status {
				filtered = append(filtered, wf)
			}
		}

		workflows = filtered
	}

	return c.JSON(workflows)
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	wf, err := h.repository.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.JSON(wf)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.validateActionConfigs(req.Actions); err != nil {
		return badRequest(c, err.Error())
	}

	wf := &models.WorkflowDefinition{
		Name:           req.Name,
		Description:    req.Description,
		Category:       models.WorkflowCategory(req.Category),
		Status:         req.Status,
		Trigger:        req.Trigger,
		ConditionGroup: req.ConditionGroup,
		Actions:        req.Actions,
		CreatedBy:      req.CreatedBy,
	}

	created, err := h.repository.Create(c.Context(), wf)
	if err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req UpdateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	existing, err := h.repository.FetchByID(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}

	if req.Description != nil {
		existing.Description = *req.Description
	}

	if req.Category != nil {
		existing.Category = models.WorkflowCategory(*req.Category)
	}

	if req.Trigger != nil {
		existing.Trigger = *req.Trigger
	}

	if req.ConditionGroup != nil {
		existing.ConditionGroup = *req.ConditionGroup
	}

	if req.Actions != nil {
		if err := h.validateActionConfigs(req.Actions); err != nil {
			return badRequest(c, err.Error())
		}

		existing.Actions = req.Actions
	}

	updated, err := h.repository.Update(c.Context(), id, existing)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(updated)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	if err := h.repository.Delete(c.Context(), id); err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleWorkflow flips a workflow between active and paused.
func (h *APIHandlers) ToggleWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	toggled, err := h.repository.ToggleStatus(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.JSON(toggled)
}

func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	return c.JSON(models.WorkflowTemplates())
}

func (h *APIHandlers) CreateFromTemplate(c fiber.Ctx) error {
	var req CreateFromTemplateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.repository.CreateFromTemplate(c.Context(), req.TemplateIndex, req.CreatedBy)
	if err != nil {
		if persistence.IsTemplateNotFound(err) {
			return notFound(c, "Template not found")
		}

		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Evaluate runs the engine synchronously against a submitted entity event
// and returns the execution logs this call produced.
func (h *APIHandlers) Evaluate(c fiber.Ctx) error {
	var req EvaluateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	event := events.EntityEvent{
		BaseEvent:  events.NewBaseEvent(events.EntityEventReceived),
		Entity:     req.Entity,
		Event:      req.Event,
		EntityID:   req.EntityID,
		EntityData: req.EntityData,
	}

	logs, err := h.engine.Evaluate(c.Context(), event)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(EvaluateResponse{Executions: logs})
}

func (h *APIHandlers) GetExecutions(c fiber.Ctx) error {
	logs, err := h.repository.ExecutionLogs(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(logs)
}

func (h *APIHandlers) GetWorkflowExecutions(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	logs, err := h.repository.ExecutionLogsByWorkflow(c.Context(), id)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(logs)
}

func (h *APIHandlers) ClearExecutions(c fiber.Ctx) error {
	if err := h.repository.ClearExecutionLogs(c.Context()); err != nil {
		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetActionTypes lists the registered action types with their config
// schemas.
func (h *APIHandlers) GetActionTypes(c fiber.Ctx) error {
	types := h.registry.AvailableActions()
	sort.Strings(types)

	response := make([]ActionTypeResponse, 0, len(types))
	for _, actionType := range types {
		response = append(response, ActionTypeResponse{
			Type:   actionType,
			Schema: h.registry.ActionSchema(actionType),
		})
	}

	return c.JSON(response)
}

// validateActionConfigs checks registered action configs against their
// schemas. Unregistered types pass through; the executor reports them as
// skipped at run time.
func (h *APIHandlers) validateActionConfigs(actions []models.Action) error {
	for _, action := range actions {
		if !h.registry.IsRegistered(string(action.Type)) {
			continue
		}

		if err := h.registry.ValidateActionConfig(string(action.Type), action.Config); err != nil {
			return err
		}
	}

	return nil
}
