package services

import (
	"errors"
	"fmt"
	"log"

	"muebleria/internal/models"
	"muebleria/internal/repositories"
	"muebleria/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderEventPublisher publishes order lifecycle events after a checkout
// transaction commits.
type OrderEventPublisher interface {
	PublishOrderCreated(event rabbitmq.OrderCreatedEvent) error
}

// CheckoutOptions carries the payment fields of a checkout attempt. The
// zero value means a pending manual order.
type CheckoutOptions struct {
	PaymentMethod    string
	PaymentReference string // gateway transaction id; idempotency key when set
	PaymentStatus    string
	OrderStatus      string
}

// errDuplicatePayment aborts the checkout transaction when a concurrent
// caller already created an order for the same payment reference. It never
// escapes CreateOrder.
var errDuplicatePayment = errors.New("order already exists for payment reference")

// CheckoutService converts a mutable cart into an immutable order. The
// whole conversion (order + items + stock decrement + sales counters +
// cart clear + summary) commits as a single transaction.
type CheckoutService struct {
	db          *gorm.DB
	cartRepo    repositories.CartRepository
	addressRepo repositories.AddressRepository
	orderRepo   repositories.OrderRepository
	receipts    *ReceiptService
	events      OrderEventPublisher
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	db *gorm.DB,
	cartRepo repositories.CartRepository,
	addressRepo repositories.AddressRepository,
	orderRepo repositories.OrderRepository,
	receipts *ReceiptService,
	events OrderEventPublisher,
) *CheckoutService {
	return &CheckoutService{
		db:          db,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		orderRepo:   orderRepo,
		receipts:    receipts,
		events:      events,
	}
}

// CreateOrderFromCart resolves the user's cart and runs the checkout
// pipeline against it.
func (s *CheckoutService) CreateOrderFromCart(userID, addressID string, opts CheckoutOptions) (*models.Order, error) {
	cart, err := s.cartRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return s.CreateOrder(cart, addressID, opts)
}

// CreateOrder runs the checkout pipeline for the given cart.
//
// When opts.PaymentReference is set and an order already exists for that
// reference, the existing order is returned and nothing is mutated: the
// gateway invokes both a browser redirect and a server webhook for the
// same payment, and both must converge on one order.
//
// addressID may be empty; the user's primary address is used then (the
// gateway redirect does not carry the chosen address).
func (s *CheckoutService) CreateOrder(cart *models.Cart, addressID string, opts CheckoutOptions) (*models.Order, error) {
	if opts.PaymentReference != "" {
		existing, err := s.orderRepo.FindByPaymentReference(opts.PaymentReference)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			log.Printf("Order %s already exists for payment %s, reusing it", existing.Number, opts.PaymentReference)
			return existing, nil
		}
	}

	address, err := s.resolveAddress(cart.UserID, addressID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrMissingAddress
	}

	var created *models.Order
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		err := tx.Preload("Product").
			Where("cart_id = ?", cart.ID).
			Order("created_at ASC").
			Find(&items).Error
		if err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// Lock and validate every inventory row before any mutation so a
		// failing line never leaves a partial order behind.
		inventories := make(map[string]*models.Inventory, len(items))
		for i := range items {
			item := &items[i]
			inventory, err := lockInventory(tx, item.ProductID)
			if err != nil {
				return err
			}
			var available uint
			if inventory != nil {
				available = inventory.Stock
			}
			if item.Quantity > available {
				name := item.ProductID
				if item.Product != nil {
					name = item.Product.Name
				}
				return &InsufficientStockError{
					ProductID:   item.ProductID,
					ProductName: name,
					Available:   available,
					Requested:   item.Quantity,
				}
			}
			inventories[item.ProductID] = inventory
		}

		total := decimal.Zero
		for i := range items {
			total = total.Add(items[i].Subtotal())
		}

		order := &models.Order{
			ID:            uuid.New().String(),
			UserID:        cart.UserID,
			AddressID:     &address.ID,
			Total:         total,
			PaymentMethod: opts.PaymentMethod,
			PaymentStatus: opts.PaymentStatus,
			Status:        opts.OrderStatus,
		}
		if order.PaymentMethod == "" {
			order.PaymentMethod = "MercadoPago"
		}
		if order.PaymentStatus == "" {
			order.PaymentStatus = models.PaymentStatusPending
		}
		if order.Status == "" {
			order.Status = models.OrderStatusPending
		}
		if opts.PaymentReference != "" {
			ref := opts.PaymentReference
			order.PaymentReference = &ref
		}

		if err := s.insertOrder(tx, order, opts.PaymentReference); err != nil {
			if errors.Is(err, errDuplicatePayment) {
				existing, lookupErr := s.orderRepo.FindByPaymentReference(opts.PaymentReference)
				if lookupErr == nil && existing != nil {
					created = existing
				}
			}
			return err
		}

		for i := range items {
			item := &items[i]
			orderItem := models.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  item.Subtotal(),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			order.Items = append(order.Items, orderItem)

			if inventory := inventories[item.ProductID]; inventory != nil {
				// Clamped at zero; the validation above makes underflow
				// impossible for rows that were locked here.
				if item.Quantity >= inventory.Stock {
					inventory.Stock = 0
				} else {
					inventory.Stock -= item.Quantity
				}
				err := tx.Model(&models.Inventory{}).
					Where("id = ?", inventory.ID).
					Update("stock", inventory.Stock).Error
				if err != nil {
					return fmt.Errorf("failed to decrement stock: %w", err)
				}
			}

			err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("sales", gorm.Expr("sales + ?", item.Quantity)).Error
			if err != nil {
				return fmt.Errorf("failed to update product sales: %w", err)
			}
		}

		if err := tx.Delete(&models.CartItem{}, "cart_id = ?", cart.ID).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		// Summary creation is an explicit step of the pipeline, inside the
		// same transaction as the order it derives from.
		summary, err := s.receipts.EnsureSummaryTx(tx, order)
		if err != nil {
			return err
		}
		order.Summary = summary

		created = order
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, errDuplicatePayment) && created != nil {
			return created, nil
		}
		return nil, txErr
	}

	s.publishOrderCreated(created)
	return created, nil
}

// resolveAddress returns the requested address when it belongs to the user,
// or the user's primary address when no id was given.
func (s *CheckoutService) resolveAddress(userID, addressID string) (*models.Address, error) {
	if addressID != "" {
		return s.addressRepo.Resolve(userID, addressID)
	}
	return s.addressRepo.FirstForUser(userID)
}

// insertOrder creates the order row, regenerating the order number on
// collision. A duplicate-key error with a payment reference set is treated
// as a concurrent checkout for the same payment.
//
// Each attempt runs under a savepoint: on postgres a constraint violation
// aborts the whole transaction, so the failed insert must be rolled back
// to the savepoint before the next attempt can execute.
func (s *CheckoutService) insertOrder(tx *gorm.DB, order *models.Order, paymentReference string) error {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		order.Number = generateNumber(orderNumberPrefix)
		if err := tx.SavePoint("new_order").Error; err != nil {
			return fmt.Errorf("failed to set savepoint: %w", err)
		}
		err := tx.Create(order).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if rbErr := tx.RollbackTo("new_order").Error; rbErr != nil {
			return fmt.Errorf("failed to roll back to savepoint: %w", rbErr)
		}
		if paymentReference != "" {
			existing, lookupErr := s.orderRepo.FindByPaymentReference(paymentReference)
			if lookupErr == nil && existing != nil {
				return errDuplicatePayment
			}
		}
		// Otherwise the generated order number collided; try another.
	}
	return fmt.Errorf("could not allocate a unique order number after %d attempts", maxNumberAttempts)
}

// publishOrderCreated emits the order.created event. Failures are logged
// and ignored: notification is best-effort and never affects the order.
func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.events == nil {
		log.Println("Event publisher is not configured, skipping order.created event")
		return
	}
	event := rabbitmq.OrderCreatedEvent{
		OrderID: order.ID,
		Number:  order.Number,
		UserID:  order.UserID,
		Total:   order.Total.StringFixed(2),
		Status:  order.Status,
	}
	if err := s.events.PublishOrderCreated(event); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.Number, err)
	} else {
		log.Printf("Published order created event for order %s", order.Number)
	}
}

// lockInventory reads a product's inventory row under a row-level lock so
// concurrent checkouts touching the same product serialize their
// read-check-decrement sequence. Returns nil when the product has no
// inventory record.
func lockInventory(tx *gorm.DB, productID string) (*models.Inventory, error) {
	var inventory models.Inventory
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inventory, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock inventory for product %s: %w", productID, err)
	}
	return &inventory, nil
}
