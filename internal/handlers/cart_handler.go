package handlers

import (
	"errors"
	"log"

	"muebleria/internal/middleware"
	"muebleria/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes. All require authentication.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Post("/items/:productId/decrease", h.HandleDecreaseItem)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the user's cart with its running total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	cart, total, err := h.service.GetCart(userID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"cart":  cart,
		"total": total,
	})
}

// AddItemRequest is the request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  uint   `json:"quantity"`
}

// HandleAddItem adds a product to the cart. A missing quantity means one.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	userID := middleware.UserID(c)
	count, err := h.service.AddProduct(userID, req.ProductID, req.Quantity)
	if err != nil {
		var stockErr *services.InsufficientStockError
		if errors.As(err, &stockErr) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message":   "Insufficient stock",
				"error":     stockErr.Error(),
				"available": stockErr.Available,
			})
		}
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message":    "Product added to cart",
		"cart_items": count,
	})
}

// HandleDecreaseItem lowers a cart line's quantity by one.
func (h *CartHandler) HandleDecreaseItem(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	productID := c.Params("productId")
	count, removed, err := h.service.DecreaseProduct(userID, productID)
	if err != nil {
		log.Printf("Error decreasing product %s in cart: %v", productID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Could not decrease product quantity",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message":    "Product quantity decreased",
		"removed":    removed,
		"cart_items": count,
	})
}

// HandleRemoveItem deletes a product line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	productID := c.Params("productId")
	count, err := h.service.RemoveProduct(userID, productID)
	if err != nil {
		log.Printf("Error removing product %s from cart: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove product from cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message":    "Product removed from cart",
		"cart_items": count,
	})
}

// HandleClearCart removes every line from the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if err := h.service.ClearCart(userID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
