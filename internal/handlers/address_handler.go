package handlers

import (
	"log"

	"muebleria/internal/middleware"
	"muebleria/internal/models"
	"muebleria/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AddressHandler handles HTTP requests for the user's address book.
type AddressHandler struct {
	repo     repositories.AddressRepository
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(repo repositories.AddressRepository) *AddressHandler {
	return &AddressHandler{
		repo:     repo,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the address routes. All require authentication.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/addresses")
	addressRoutes.Get("/", h.HandleListAddresses)
	addressRoutes.Post("/", h.HandleCreateAddress)
	addressRoutes.Delete("/:id", h.HandleDeleteAddress)
}

// HandleListAddresses lists the user's saved addresses.
func (h *AddressHandler) HandleListAddresses(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	addresses, err := h.repo.ListByUser(userID)
	if err != nil {
		log.Printf("Error listing addresses for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve addresses",
			"error":   err.Error(),
		})
	}
	return c.JSON(addresses)
}

// HandleCreateAddress saves a new shipping address for the user.
func (h *AddressHandler) HandleCreateAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	address.ID = uuid.New().String()
	address.UserID = middleware.UserID(c)
	if err := h.validate.Struct(address); err != nil {
		return validationError(c, err)
	}
	if err := h.repo.Create(&address); err != nil {
		log.Printf("Error creating address: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create address",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleDeleteAddress removes an address from the user's address book.
func (h *AddressHandler) HandleDeleteAddress(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	addressID := c.Params("id")
	if err := h.repo.Delete(userID, addressID); err != nil {
		log.Printf("Error deleting address %s: %v", addressID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Could not delete address",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Address deleted",
	})
}
