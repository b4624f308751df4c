package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/romeo-folie/Todo-api/internal/apperrors"
	"github.com/romeo-folie/Todo-api/internal/todo/dto"
	"github.com/romeo-folie/Todo-api/internal/todo/service"
)

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateTodoInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	todo, err := h.todoService.Create(c.UserContext(), input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(todo)
}

func (h *TodoHandler) List(c *fiber.Ctx) error {
	todos, err := h.todoService.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to list todos",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"todos": todos})
}

func (h *TodoHandler) Get(c *fiber.Ctx) error {
	todo, err := h.todoService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"todo": todo})
}

func (h *TodoHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateTodoInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	todo, err := h.todoService.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"todo": todo})
}

func (h *TodoHandler) Delete(c *fiber.Ctx) error {
	todo, err := h.todoService.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"todo": todo})
}

// fail maps service errors onto the HTTP surface: not-found (absent or
// malformed id alike) → empty 404, validation → 400 with detail, anything
// else (store failures included) → 400.
func (h *TodoHandler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if errors.Is(err, apperrors.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "request failed",
	})
}
