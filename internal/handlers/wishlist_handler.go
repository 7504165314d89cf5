package handlers

import (
	"log"
	"strings"

	"muebleria/internal/middleware"
	"muebleria/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the wishlist.
type WishlistHandler struct {
	service *services.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service: service,
	}
}

// RegisterRoutes registers the wishlist routes. All require authentication.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/items/:productId/toggle", h.HandleToggle)
}

// HandleGetWishlist returns the user's wishlist with its items.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	wishlist, err := h.service.List(userID)
	if err != nil {
		log.Printf("Error getting wishlist for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(wishlist)
}

// HandleToggle adds the product to the wishlist if absent, removes it if
// present.
func (h *WishlistHandler) HandleToggle(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	productID := c.Params("productId")
	added, err := h.service.Toggle(userID, productID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error toggling wishlist product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Wishlist updated",
		"added":   added,
	})
}
