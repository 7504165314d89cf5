package services

import (
	"errors"
	"fmt"
	"time"

	"muebleria/internal/models"
	"muebleria/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReceiptService derives order summaries: the receipt-like record created
// with every order, its totals, and the declarative document definition a
// downstream renderer turns into a PDF.
type ReceiptService struct {
	db        *gorm.DB
	orderRepo repositories.OrderRepository
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(db *gorm.DB, orderRepo repositories.OrderRepository) *ReceiptService {
	return &ReceiptService{
		db:        db,
		orderRepo: orderRepo,
	}
}

// EnsureSummary creates the order's summary if it does not exist yet and
// returns it. It opens its own transaction; the savepoint-based number
// retry below requires one.
func (s *ReceiptService) EnsureSummary(order *models.Order) (*models.OrderSummary, error) {
	var summary *models.OrderSummary
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		summary, txErr = s.EnsureSummaryTx(tx, order)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// EnsureSummaryTx is EnsureSummary running on the given transaction handle;
// the checkout pipeline calls it as the last step of its transaction.
func (s *ReceiptService) EnsureSummaryTx(tx *gorm.DB, order *models.Order) (*models.OrderSummary, error) {
	var existing models.OrderSummary
	err := tx.First(&existing, "order_id = ?", order.ID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up summary for order %s: %w", order.Number, err)
	}

	subtotal := sumItemSubtotals(order.Items)
	if len(order.Items) == 0 {
		subtotal = order.Total
	}

	summary := &models.OrderSummary{
		ID:       uuid.New().String(),
		OrderID:  order.ID,
		IssuedAt: time.Now(),
		Subtotal: subtotal,
		// No tax modeling: total equals subtotal.
		Total: subtotal,
	}
	// Savepoint per attempt: postgres aborts the enclosing transaction on a
	// constraint violation, so a failed insert has to be rolled back before
	// retrying with another number.
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		summary.Number = generateNumber(summaryNumberPrefix)
		if err := tx.SavePoint("new_summary").Error; err != nil {
			return nil, fmt.Errorf("failed to set savepoint: %w", err)
		}
		err := tx.Create(summary).Error
		if err == nil {
			return summary, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create summary: %w", err)
		}
		if rbErr := tx.RollbackTo("new_summary").Error; rbErr != nil {
			return nil, fmt.Errorf("failed to roll back to savepoint: %w", rbErr)
		}
	}
	return nil, fmt.Errorf("could not allocate a unique summary number after %d attempts", maxNumberAttempts)
}

// RecomputeTotals refreshes the summary's totals from the order's current
// items, for summaries built incrementally after order creation.
func (s *ReceiptService) RecomputeTotals(orderID string) (*models.OrderSummary, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	summary, err := s.orderRepo.GetSummary(orderID)
	if err != nil {
		return nil, err
	}
	summary.Subtotal = sumItemSubtotals(order.Items)
	summary.Total = summary.Subtotal
	if err := s.orderRepo.SaveSummary(summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func sumItemSubtotals(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Subtotal)
	}
	return total
}

// RenderDocument builds the declarative document definition for a summary.
// It is a pure function of the order and summary state: the same input
// always yields the same structure (the footer stamps the summary's issue
// time, not the wall clock), so it is safe to call repeatedly.
func (s *ReceiptService) RenderDocument(order *models.Order, summary *models.OrderSummary) *DocumentDefinition {
	customerName := "No especificado"
	customerEmail := "No especificado"
	customerPhone := "No especificado"
	if order.User != nil {
		customerName = order.User.DisplayName()
		customerEmail = order.User.Email
		if order.User.Profile != nil && order.User.Profile.Phone != "" {
			customerPhone = order.User.Profile.Phone
		}
	}
	shippingAddress := "No especificada"
	shippingPhone := "No especificado"
	if order.Address != nil {
		shippingAddress = order.Address.FullAddress()
		if order.Address.Phone != "" {
			shippingPhone = order.Address.Phone
		}
	}

	table := TableBlock{
		Table: Table{
			HeaderRows: 1,
			Widths:     []string{"*", "auto", "auto", "auto"},
			Body: [][]any{{
				TableCell{Text: "Producto", Style: "tableHeader"},
				TableCell{Text: "Cantidad", Style: "tableHeader"},
				TableCell{Text: "Precio Unit.", Style: "tableHeader"},
				TableCell{Text: "Subtotal", Style: "tableHeader"},
			}},
		},
		Layout: "lightHorizontalLines",
		Margin: []int{0, 0, 0, 20},
	}
	for i := range order.Items {
		item := &order.Items[i]
		name := item.ProductID
		if item.Product != nil {
			name = item.Product.Name
		}
		table.Table.Body = append(table.Table.Body, []any{
			name,
			fmt.Sprintf("%d", item.Quantity),
			formatMoney(item.UnitPrice),
			formatMoney(item.Subtotal),
		})
	}

	return &DocumentDefinition{
		PageSize:    "A4",
		PageMargins: []int{40, 60, 40, 60},
		Header: TextBlock{
			Text:      "RESUMEN DE PEDIDO",
			Alignment: "center",
			Margin:    []int{0, 20, 0, 0},
			FontSize:  18,
			Bold:      true,
		},
		Footer: TextBlock{
			Text:      "Generado el " + summary.IssuedAt.Format("02/01/2006 15:04"),
			Alignment: "center",
			Margin:    []int{0, 0, 0, 20},
			FontSize:  8,
			Color:     "#666666",
		},
		Content: []any{
			TextBlock{Text: "Pedido #" + order.Number, FontSize: 16, Bold: true, Margin: []int{0, 0, 0, 10}},
			TextBlock{Text: "Fecha: " + order.CreatedAt.Format("02/01/2006 15:04"), FontSize: 10, Margin: []int{0, 0, 0, 20}},

			TextBlock{Text: "DATOS DEL CLIENTE", FontSize: 12, Bold: true, Margin: []int{0, 20, 0, 10}},
			TextBlock{Text: []Span{{Text: "Nombre: ", Bold: true}, {Text: customerName}}, FontSize: 10, Margin: []int{0, 0, 0, 5}},
			TextBlock{Text: []Span{{Text: "Email: ", Bold: true}, {Text: customerEmail}}, FontSize: 10, Margin: []int{0, 0, 0, 5}},
			TextBlock{Text: []Span{{Text: "Teléfono: ", Bold: true}, {Text: customerPhone}}, FontSize: 10, Margin: []int{0, 0, 0, 20}},

			TextBlock{Text: "DIRECCIÓN DE ENVÍO", FontSize: 12, Bold: true, Margin: []int{0, 20, 0, 10}},
			TextBlock{Text: []Span{{Text: "Dirección: ", Bold: true}, {Text: shippingAddress}}, FontSize: 10, Margin: []int{0, 0, 0, 5}},
			TextBlock{Text: []Span{{Text: "Teléfono: ", Bold: true}, {Text: shippingPhone}}, FontSize: 10, Margin: []int{0, 0, 0, 20}},

			TextBlock{Text: "PRODUCTOS", FontSize: 12, Bold: true, Margin: []int{0, 20, 0, 10}},
			table,

			TextBlock{Text: "TOTALES", FontSize: 12, Bold: true, Margin: []int{0, 20, 0, 10}},
			TextBlock{Text: []Span{{Text: "Total: ", Bold: true}, {Text: formatMoney(summary.Total)}}, FontSize: 14, Margin: []int{0, 0, 0, 20}},

			TextBlock{Text: "NOTAS", FontSize: 12, Bold: true, Margin: []int{0, 20, 0, 10}},
			TextBlock{Text: "Este es un resumen de su pedido. Gracias por su compra.", FontSize: 10, Italics: true, Color: "#666666"},
		},
		Styles: map[string]TextStyle{
			"tableHeader": {Bold: true, FontSize: 10, Color: "black", Alignment: "center"},
		},
	}
}

// AttachPDF stores rendered PDF bytes on the summary. The renderer itself
// lives at the boundary; the service only keeps its output.
func (s *ReceiptService) AttachPDF(summary *models.OrderSummary, content []byte, orderNumber string) error {
	summary.PDFContent = content
	summary.PDFFilename = fmt.Sprintf("resumen_pedido_%s.pdf", orderNumber)
	return s.orderRepo.SaveSummary(summary)
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
