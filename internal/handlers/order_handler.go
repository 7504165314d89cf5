package handlers

import (
	"log"
	"strings"

	"muebleria/internal/middleware"
	"muebleria/internal/repositories"
	"muebleria/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for placed orders and their summaries.
type OrderHandler struct {
	orderRepo     repositories.OrderRepository
	receipts      *services.ReceiptService
	notifications *services.NotificationService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(
	orderRepo repositories.OrderRepository,
	receipts *services.ReceiptService,
	notifications *services.NotificationService,
) *OrderHandler {
	return &OrderHandler{
		orderRepo:     orderRepo,
		receipts:      receipts,
		notifications: notifications,
	}
}

// RegisterRoutes registers the order routes. All require authentication.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Get("/:id/summary/document", h.HandleGetSummaryDocument)
	orderRoutes.Post("/:id/summary/pdf", h.HandleUploadSummaryPDF)
	orderRoutes.Get("/:id/summary/pdf", h.HandleDownloadSummaryPDF)
	orderRoutes.Post("/:id/summary/email", h.HandleSendSummaryEmail)
}

// HandleListOrders lists the user's orders, newest first.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	orders, err := h.orderRepo.GetAllByUser(userID)
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrder retrieves one of the user's orders with items and summary.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByIDForUser(c.Params("id"), middleware.UserID(c))
	if err != nil {
		return orderNotFound(c, err)
	}
	return c.JSON(order)
}

// HandleGetSummaryDocument returns the declarative document definition for
// the order's summary, ready for a pdfmake-style renderer.
func (h *OrderHandler) HandleGetSummaryDocument(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByIDForUser(c.Params("id"), middleware.UserID(c))
	if err != nil {
		return orderNotFound(c, err)
	}
	summary, err := h.receipts.EnsureSummary(order)
	if err != nil {
		log.Printf("Error ensuring summary for order %s: %v", order.Number, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build summary document",
			"error":   err.Error(),
		})
	}
	return c.JSON(h.receipts.RenderDocument(order, summary))
}

// HandleUploadSummaryPDF stores the rendered PDF for the order's summary
// and dispatches the confirmation email with it attached.
func (h *OrderHandler) HandleUploadSummaryPDF(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByIDForUser(c.Params("id"), middleware.UserID(c))
	if err != nil {
		return orderNotFound(c, err)
	}
	content := c.Body()
	if len(content) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Request body must contain the PDF content",
		})
	}

	summary, err := h.receipts.EnsureSummary(order)
	if err != nil {
		log.Printf("Error ensuring summary for order %s: %v", order.Number, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load summary",
			"error":   err.Error(),
		})
	}
	if err := h.receipts.AttachPDF(summary, content, order.Number); err != nil {
		log.Printf("Error attaching PDF to summary %s: %v", summary.Number, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store PDF",
			"error":   err.Error(),
		})
	}

	sent := h.notifications.SendSummaryEmail(order.ID, "")
	return c.JSON(fiber.Map{
		"message":    "PDF stored",
		"email_sent": sent,
	})
}

// HandleDownloadSummaryPDF returns the stored PDF bytes.
func (h *OrderHandler) HandleDownloadSummaryPDF(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByIDForUser(c.Params("id"), middleware.UserID(c))
	if err != nil {
		return orderNotFound(c, err)
	}
	summary, err := h.orderRepo.GetSummary(order.ID)
	if err != nil {
		return orderNotFound(c, err)
	}
	if !summary.HasPDF() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No PDF stored for this order yet",
		})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+summary.PDFFilename+`"`)
	return c.Send(summary.PDFContent)
}

// SendSummaryEmailRequest optionally overrides the destination address.
type SendSummaryEmailRequest struct {
	Email string `json:"email"`
}

// HandleSendSummaryEmail emails the order summary to the order's owner, or
// to an explicit destination when one is given.
func (h *OrderHandler) HandleSendSummaryEmail(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByIDForUser(c.Params("id"), middleware.UserID(c))
	if err != nil {
		return orderNotFound(c, err)
	}

	var req SendSummaryEmailRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	if sent := h.notifications.SendSummaryEmail(order.ID, req.Email); !sent {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not send summary email",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Summary email sent",
	})
}

func orderNotFound(c *fiber.Ctx, err error) error {
	if strings.Contains(err.Error(), "not found") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	}
	log.Printf("Error loading order: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not retrieve order",
		"error":   err.Error(),
	})
}
