package handlers

import (
	"errors"
	"log"

	"muebleria/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SubscriptionHandler handles newsletter subscriptions.
type SubscriptionHandler struct {
	service  *services.SubscriptionService
	validate *validator.Validate
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(service *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public subscription route.
func (h *SubscriptionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/subscriptions", h.HandleSubscribe)
}

// SubscribeRequest is the request body for a newsletter subscription.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleSubscribe adds an email to the newsletter list.
func (h *SubscriptionHandler) HandleSubscribe(c *fiber.Ctx) error {
	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	subscriber, err := h.service.Subscribe(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySubscribed) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "This email is already subscribed",
			})
		}
		log.Printf("Error subscribing %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not subscribe",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Subscribed successfully",
		"subscriber": subscriber,
	})
}
