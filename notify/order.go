package notify

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	"github.com/AndreaGalia/olio-galia-sub004/models"
)

// Notifier fans an order event out to every configured channel. Send failures
// are logged and never bubble up to the request that recorded the order.
type Notifier struct {
	cfg      *config.Config
	mailer   *Mailer
	whatsapp *WhatsApp
}

func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{cfg: cfg, mailer: NewMailer(cfg), whatsapp: NewWhatsApp(cfg)}
}

// OrderRecorded sends the customer confirmation plus the owner alerts for a
// freshly recorded order. Intended to run in a goroutine.
func (n *Notifier) OrderRecorded(db *gorm.DB, order models.Order) {
	if order.CustomerEmail != "" {
		if err := n.mailer.Send(order.CustomerEmail, confirmationSubject(order), ConfirmationEmail(order)); err != nil {
			log.Println("❌ Failed to send order confirmation email:", err)
		}
	}

	if n.cfg.OwnerEmail != "" {
		subject := fmt.Sprintf("Nuovo ordine %s - %.2f %s", order.OrderRef, order.Total, strings.ToUpper(order.Currency))
		if err := n.mailer.Send(n.cfg.OwnerEmail, subject, OwnerAlertEmail(order)); err != nil {
			log.Println("❌ Failed to send owner alert email:", err)
		}
	}

	settings, err := models.GetWhatsAppSettings(db)
	if err != nil {
		log.Println("❌ Failed to load whatsapp settings:", err)
		return
	}
	if settings.Enabled && settings.Recipient != "" {
		if err := n.whatsapp.SendText(settings.Recipient, OrderWhatsAppText(order)); err != nil {
			log.Println("❌ Failed to send whatsapp notification:", err)
		}
	}
}

func confirmationSubject(order models.Order) string {
	return fmt.Sprintf("Conferma ordine %s - Olio Galia", order.OrderRef)
}

// ConfirmationEmail renders the customer-facing order summary.
func ConfirmationEmail(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Grazie per il tuo ordine, %s!</h2>", order.CustomerName)
	fmt.Fprintf(&b, "<p>Riferimento: <strong>%s</strong></p><ul>", order.OrderRef)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%s × %d — %.2f €</li>", item.NameIT, item.Quantity, item.UnitPrice*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "</ul><p>Subtotale: %.2f €<br>Spedizione: %.2f €<br><strong>Totale: %.2f €</strong></p>",
		order.Subtotal, order.ShippingCost, order.Total)
	b.WriteString("<p>Riceverai una email quando l'ordine sarà spedito.</p>")
	return b.String()
}

// OwnerAlertEmail renders the back-office alert for a new order.
func OwnerAlertEmail(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h3>Nuovo ordine %s</h3>", order.OrderRef)
	fmt.Fprintf(&b, "<p>%s &lt;%s&gt; — %s, %s (%s)</p><ul>",
		order.CustomerName, order.CustomerEmail, order.Address.City, order.Address.Country, order.Zone)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%s × %d</li>", item.NameIT, item.Quantity)
	}
	fmt.Fprintf(&b, "</ul><p>Totale: <strong>%.2f €</strong></p>", order.Total)
	return b.String()
}

// OrderWhatsAppText renders the short owner notification message.
func OrderWhatsAppText(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🫒 Nuovo ordine %s\n%s — %.2f €\n", order.OrderRef, order.CustomerName, order.Total)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s × %d\n", item.NameIT, item.Quantity)
	}
	return b.String()
}
