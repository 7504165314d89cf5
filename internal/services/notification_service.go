package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"time"

	"muebleria/internal/models"
	"muebleria/internal/repositories"
	"muebleria/pkg/mailer"
)

// summaryEmailTemplate renders the HTML body of the order confirmation.
var summaryEmailTemplate = template.Must(template.New("resumen_pedido").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Resumen de Pedido #{{.OrderNumber}}</h2>
  <p>Hola {{.CustomerName}},</p>
  <p>Gracias por tu compra. Este es el resumen de tu pedido del {{.OrderDate}}.</p>

  <h3>Productos</h3>
  <table border="0" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
    <tr style="border-bottom: 1px solid #ccc;">
      <th align="left">Producto</th><th>Cantidad</th><th>Precio Unit.</th><th>Subtotal</th>
    </tr>
    {{range .Items}}
    <tr>
      <td>{{.Name}}</td>
      <td align="center">{{.Quantity}}</td>
      <td align="right">{{.UnitPrice}}</td>
      <td align="right">{{.Subtotal}}</td>
    </tr>
    {{end}}
  </table>

  <p><strong>Total: {{.Total}}</strong></p>

  {{if .ShippingAddress}}
  <h3>Dirección de envío</h3>
  <p>{{.ShippingAddress}}</p>
  {{end}}

  <p style="color: #666; font-size: 12px;">Resumen #{{.SummaryNumber}} — Mueblería OPTI</p>
</body>
</html>`))

type summaryEmailContext struct {
	OrderNumber     string
	SummaryNumber   string
	CustomerName    string
	OrderDate       string
	Items           []summaryEmailItem
	Total           string
	ShippingAddress string
}

type summaryEmailItem struct {
	Name      string
	Quantity  uint
	UnitPrice string
	Subtotal  string
}

// NotificationService sends order summaries by email. Sending is
// best-effort: transport failures are logged and reported as false, never
// propagated, and never affect the order itself.
type NotificationService struct {
	orderRepo repositories.OrderRepository
	mailer    mailer.Mailer
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(orderRepo repositories.OrderRepository, m mailer.Mailer) *NotificationService {
	return &NotificationService{
		orderRepo: orderRepo,
		mailer:    m,
	}
}

// SendSummaryEmail emails the order's summary, attaching the stored PDF
// when one exists. The destination defaults to the order owner's email.
// On success the summary is stamped as sent; calling this twice simply
// re-sends and re-stamps.
func (s *NotificationService) SendSummaryEmail(orderID, destination string) bool {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		log.Printf("Cannot send summary email: %v", err)
		return false
	}
	summary, err := s.orderRepo.GetSummary(orderID)
	if err != nil {
		log.Printf("Cannot send summary email: %v", err)
		return false
	}

	if destination == "" && order.User != nil {
		destination = order.User.Email
	}
	if destination == "" {
		log.Printf("No destination email resolvable for order %s", order.Number)
		return false
	}

	body, err := renderSummaryEmail(order, summary)
	if err != nil {
		log.Printf("Failed to render summary email for order %s: %v", order.Number, err)
		return false
	}

	msg := mailer.Message{
		To:       destination,
		Subject:  fmt.Sprintf("Resumen de Pedido #%s - Mueblería OPTI", order.Number),
		HTMLBody: body,
	}
	if summary.HasPDF() {
		msg.Attachment = summary.PDFContent
		msg.AttachmentName = fmt.Sprintf("resumen_pedido_%s.pdf", order.Number)
	}

	if err := s.mailer.Send(msg); err != nil {
		log.Printf("Failed to send summary email for order %s: %v", order.Number, err)
		return false
	}

	// Stamp only after the transport confirmed the send. The flag is
	// informational; a failed stamp does not undo the send.
	now := time.Now()
	summary.SentByEmail = true
	summary.EmailSentAt = &now
	if err := s.orderRepo.SaveSummary(summary); err != nil {
		log.Printf("Failed to mark summary %s as emailed: %v", summary.Number, err)
	}

	log.Printf("Summary email for order %s sent to %s", order.Number, destination)
	return true
}

func renderSummaryEmail(order *models.Order, summary *models.OrderSummary) (string, error) {
	ctx := summaryEmailContext{
		OrderNumber:   order.Number,
		SummaryNumber: summary.Number,
		CustomerName:  order.UserID,
		OrderDate:     order.CreatedAt.Format("02/01/2006 15:04"),
		Total:         formatMoney(summary.Total),
	}
	if order.User != nil {
		ctx.CustomerName = order.User.DisplayName()
	}
	if order.Address != nil {
		ctx.ShippingAddress = order.Address.FullAddress()
	}
	for i := range order.Items {
		item := &order.Items[i]
		name := item.ProductID
		if item.Product != nil {
			name = item.Product.Name
		}
		ctx.Items = append(ctx.Items, summaryEmailItem{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: formatMoney(item.UnitPrice),
			Subtotal:  formatMoney(item.Subtotal),
		})
	}

	var buf bytes.Buffer
	if err := summaryEmailTemplate.Execute(&buf, ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}
