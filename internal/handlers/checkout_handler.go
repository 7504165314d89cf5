package handlers

import (
	"errors"
	"log"

	"muebleria/internal/middleware"
	"muebleria/internal/models"
	"muebleria/internal/repositories"
	"muebleria/internal/services"
	"muebleria/pkg/mercadopago"

	"github.com/gofiber/fiber/v2"
)

// PaymentGateway is the slice of the payment provider the checkout flow
// uses: registering a preference and resolving a webhook's payment id.
type PaymentGateway interface {
	CreatePreference(req mercadopago.PreferenceRequest) (string, error)
	GetPayment(paymentID string) (*mercadopago.Payment, error)
}

// CheckoutConfig holds the handler's external-facing settings.
type CheckoutConfig struct {
	// PublicBaseURL is where the gateway redirects buyers back to.
	PublicBaseURL string
}

// CheckoutHandler drives the order creation flows: manual checkout, the
// gateway preference, the browser callbacks and the server webhook.
type CheckoutHandler struct {
	checkout    *services.CheckoutService
	cart        *services.CartService
	cartRepo    repositories.CartRepository
	userRepo    repositories.UserRepository
	addressRepo repositories.AddressRepository
	gateway     PaymentGateway
	config      CheckoutConfig
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(
	checkout *services.CheckoutService,
	cart *services.CartService,
	cartRepo repositories.CartRepository,
	userRepo repositories.UserRepository,
	addressRepo repositories.AddressRepository,
	gateway PaymentGateway,
	config CheckoutConfig,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:    checkout,
		cart:        cart,
		cartRepo:    cartRepo,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		gateway:     gateway,
		config:      config,
	}
}

// RegisterRoutes registers the authenticated checkout routes.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/orders", h.HandleCreateOrder)
	checkoutRoutes.Post("/payment", h.HandleCreatePayment)
}

// RegisterCallbackRoutes registers the gateway-facing routes. These carry
// no JWT: the browser arrives from the gateway's redirect and the webhook
// is server-to-server.
func (h *CheckoutHandler) RegisterCallbackRoutes(router fiber.Router) {
	callbackRoutes := router.Group("/checkout")
	callbackRoutes.Get("/success", h.HandlePaymentSuccess)
	callbackRoutes.Get("/failure", h.HandlePaymentFailure)
	callbackRoutes.Get("/pending", h.HandlePaymentPending)
	callbackRoutes.Post("/webhook", h.HandleWebhook)
}

// CreateOrderRequest is the request body for a manual checkout.
type CreateOrderRequest struct {
	AddressID string `json:"address_id"`
}

// HandleCreateOrder converts the user's cart into an order without going
// through the payment gateway (test payment mode).
func (h *CheckoutHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID := middleware.UserID(c)
	order, err := h.checkout.CreateOrderFromCart(userID, req.AddressID, services.CheckoutOptions{
		PaymentMethod: "Pago de prueba",
		PaymentStatus: models.PaymentStatusApproved,
		OrderStatus:   models.OrderStatusProcessing,
	})
	if err != nil {
		return checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

// HandleCreatePayment registers a payment preference with the gateway and
// returns the redirect URL. The cart id travels as the preference's
// external reference so the callbacks can recover which cart to convert.
func (h *CheckoutHandler) HandleCreatePayment(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	cart, _, err := h.cart.GetCart(userID)
	if err != nil {
		log.Printf("Error loading cart for payment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load cart",
			"error":   err.Error(),
		})
	}
	if len(cart.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cart is empty",
		})
	}

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		log.Printf("Error loading user %s for payment: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load user",
			"error":   err.Error(),
		})
	}

	payer := mercadopago.Payer{
		Name:  user.DisplayName(),
		Email: user.Email,
	}
	if address, err := h.addressRepo.FirstForUser(userID); err == nil && address != nil {
		payer.Address = mercadopago.PayerAddress{
			ZipCode:      address.PostalCode,
			StreetName:   address.Street,
			StreetNumber: address.ExteriorNumber,
		}
	}

	preference := mercadopago.PreferenceRequest{
		Payer: payer,
		BackURLs: mercadopago.BackURLs{
			Success: h.config.PublicBaseURL + "/api/v1/checkout/success",
			Failure: h.config.PublicBaseURL + "/api/v1/checkout/failure",
			Pending: h.config.PublicBaseURL + "/api/v1/checkout/pending",
		},
		ExternalReference: cart.ID,
	}
	for i := range cart.Items {
		item := &cart.Items[i]
		title := item.ProductID
		if item.Product != nil {
			title = item.Product.Name
		}
		preference.Items = append(preference.Items, mercadopago.PreferenceItem{
			Title:      title,
			Quantity:   int(item.Quantity),
			UnitPrice:  item.UnitPrice.InexactFloat64(),
			CurrencyID: "MXN",
		})
	}

	initPoint, err := h.gateway.CreatePreference(preference)
	if err != nil {
		log.Printf("Error creating payment preference: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not create payment preference",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"init_point": initPoint,
	})
}

// HandlePaymentSuccess is the browser redirect after an approved payment.
// The payment id becomes the order's payment reference, so replays of this
// URL (or the webhook racing it) converge on the same order.
func (h *CheckoutHandler) HandlePaymentSuccess(c *fiber.Ctx) error {
	paymentID := c.Query("payment_id")
	cartID := c.Query("external_reference")
	if paymentID == "" || cartID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing payment_id or external_reference",
		})
	}

	cart, err := h.cartRepo.GetByID(cartID)
	if err != nil {
		log.Printf("Error loading cart %s for payment callback: %v", cartID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Cart not found",
			"error":   err.Error(),
		})
	}

	order, err := h.checkout.CreateOrder(cart, "", services.CheckoutOptions{
		PaymentMethod:    "MercadoPago",
		PaymentReference: paymentID,
		PaymentStatus:    models.PaymentStatusApproved,
		OrderStatus:      models.OrderStatusProcessing,
	})
	if err != nil {
		return checkoutError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Payment approved",
		"order":   order,
	})
}

// HandlePaymentFailure is the browser redirect after a rejected payment.
// Nothing is created; the cart stays intact for a retry.
func (h *CheckoutHandler) HandlePaymentFailure(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Payment failed, your cart was not modified",
		"status":  c.Query("status"),
	})
}

// HandlePaymentPending is the browser redirect for an in-process payment.
func (h *CheckoutHandler) HandlePaymentPending(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Payment is pending confirmation",
		"status":  c.Query("status"),
	})
}

// webhookNotification is the gateway's notification payload. It only
// carries the payment id; the status and cart must be fetched back.
type webhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// HandleWebhook processes the gateway's server-to-server notification.
// Always answers 200 for notifications it cannot act on, so the gateway
// stops retrying them.
func (h *CheckoutHandler) HandleWebhook(c *fiber.Ctx) error {
	var notification webhookNotification
	if err := c.BodyParser(&notification); err != nil {
		log.Printf("Ignoring malformed webhook payload: %v", err)
		return c.SendStatus(fiber.StatusOK)
	}
	if notification.Type != "payment" || notification.Data.ID == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	payment, err := h.gateway.GetPayment(notification.Data.ID)
	if err != nil {
		log.Printf("Error resolving webhook payment %s: %v", notification.Data.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not resolve payment",
		})
	}
	if payment.Status != mercadopago.PaymentStatusApproved {
		log.Printf("Webhook payment %s has status %s, nothing to do", payment.ID, payment.Status)
		return c.SendStatus(fiber.StatusOK)
	}

	cart, err := h.cartRepo.GetByID(payment.ExternalReference)
	if err != nil {
		log.Printf("Webhook payment %s references unknown cart %s: %v", payment.ID, payment.ExternalReference, err)
		return c.SendStatus(fiber.StatusOK)
	}

	order, err := h.checkout.CreateOrder(cart, "", services.CheckoutOptions{
		PaymentMethod:    "MercadoPago",
		PaymentReference: payment.ID.String(),
		PaymentStatus:    models.PaymentStatusApproved,
		OrderStatus:      models.OrderStatusProcessing,
	})
	if err != nil {
		// An empty cart here usually means the success redirect already
		// converted it and this webhook lost the race without a payment
		// reference match; nothing left to do.
		if errors.Is(err, services.ErrEmptyCart) {
			return c.SendStatus(fiber.StatusOK)
		}
		log.Printf("Error converting cart %s from webhook: %v", cart.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not process payment notification",
		})
	}
	log.Printf("Webhook created/confirmed order %s for payment %s", order.Number, payment.ID)
	return c.SendStatus(fiber.StatusOK)
}

// checkoutError maps checkout pipeline failures to HTTP responses.
func checkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cart is empty",
		})
	case errors.Is(err, services.ErrMissingAddress):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A shipping address is required to place an order",
		})
	}
	var stockErr *services.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":   "Insufficient stock",
			"error":     stockErr.Error(),
			"available": stockErr.Available,
		})
	}
	log.Printf("Checkout failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not create order",
		"error":   err.Error(),
	})
}
