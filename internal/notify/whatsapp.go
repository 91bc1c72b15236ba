package notify

import (
	"fmt"
	"net/url"
	"strings"

	"storefront-service/internal/models"
)

// WhatsApp formats order contents into a message payload and builds the deep
// link for the external messaging handoff. No response is awaited or parsed.
type WhatsApp struct {
	Phone     string
	StoreName string
}

// ComposeOrderMessage renders the cart contents and contact fields as the
// outgoing order message.
func (w *WhatsApp) ComposeOrderMessage(items []models.CartItem, total int64, address, city, mobile string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s! I want to order:\n", w.StoreName)
	for _, item := range items {
		fmt.Fprintf(&b, "- %s x%d (Rs. %d)\n", item.Name, item.Quantity, item.Price)
	}
	fmt.Fprintf(&b, "Total: Rs. %d\n", total)
	fmt.Fprintf(&b, "My Address: %s, %s\n", address, city)
	fmt.Fprintf(&b, "Contact: %s", mobile)
	return b.String()
}

// DeepLink builds the wa.me URL carrying text to the configured phone.
func (w *WhatsApp) DeepLink(text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", w.Phone, url.QueryEscape(text))
}
