// internal/services/whatsapp.go
package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Mustazir/stillore-server/internal/models"
)

// BuildWhatsAppLink assembles a wa.me deep link that opens a chat with
// the business number, pre-filled with the order summary. Returns an
// empty string when no business number is configured.
func BuildWhatsAppLink(businessNumber string, order *models.Order, customerName string) string {
	// wa.me accepts digits only, no plus sign or separators.
	var digits strings.Builder
	for _, r := range businessNumber {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	number := digits.String()
	if number == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello! I just placed an order.\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", order.ID)
	fmt.Fprintf(&b, "Name: %s\n", customerName)
	fmt.Fprintf(&b, "Phone: %s\n\n", order.Phone)
	b.WriteString("Items:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s (%s) x%d @ $%.2f\n", item.Title, item.Size, item.Quantity, item.Price)
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n", order.TotalPrice)
	fmt.Fprintf(&b, "Delivery address: %s", order.Address)

	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(b.String()))
}
