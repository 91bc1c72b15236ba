package notify

import (
	"net/url"
	"strings"
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeOrderMessage(t *testing.T) {
	w := &WhatsApp{Phone: "923000000000", StoreName: "Test Store"}

	items := []models.CartItem{
		{Name: "Desk Lamp", Price: 500, Quantity: 2},
		{Name: "Office Chair", Price: 900, Quantity: 1},
	}
	msg := w.ComposeOrderMessage(items, 1650, "House 1", "Karachi", "03001234567")

	assert.True(t, strings.HasPrefix(msg, "Hello Test Store! I want to order:\n"))
	assert.Contains(t, msg, "- Desk Lamp x2 (Rs. 500)")
	assert.Contains(t, msg, "- Office Chair x1 (Rs. 900)")
	assert.Contains(t, msg, "Total: Rs. 1650")
	assert.Contains(t, msg, "My Address: House 1, Karachi")
	assert.Contains(t, msg, "Contact: 03001234567")
}

func TestDeepLink(t *testing.T) {
	w := &WhatsApp{Phone: "923000000000", StoreName: "Test Store"}

	link := w.DeepLink("hello world & more")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/923000000000?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "hello world & more", u.Query().Get("text"))
}
