package models

import "time"

// Category is the fixed product category enumeration.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryHome        Category = "Home"
	CategoryFashion     Category = "Fashion"
	CategoryOther       Category = "Other"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryElectronics, CategoryHome, CategoryFashion, CategoryOther:
		return true
	}
	return false
}

// Product represents a product in the catalog. Products are immutable once
// created; there is no edit operation.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Images      []string  `json:"images"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	SellerID    string    `json:"seller_id,omitempty"`
	SellerName  string    `json:"seller_name,omitempty"`
}

// CartItem is a single cart line. Re-adding a product appends a new line
// rather than merging, so each line carries its own id alongside the
// snapshotted product fields.
type CartItem struct {
	LineID    string `json:"line_id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Totals is the computed cart pricing breakdown.
// Invariant: Total = Subtotal + DeliveryCharges.
type Totals struct {
	Subtotal        int64 `json:"subtotal"`
	DeliveryCharges int64 `json:"delivery_charges"`
	Total           int64 `json:"total"`
}

// Order statuses. The core only ever assigns Pending.
const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
)

// Order is an immutable record created once checkout completes. Items is a
// value copy of the cart at placement time.
type Order struct {
	ID              string     `json:"id"`
	Items           []CartItem `json:"items"`
	Subtotal        int64      `json:"subtotal"`
	DeliveryCharges int64      `json:"delivery_charges"`
	Total           int64      `json:"total"`
	CustomerMobile  string     `json:"customer_mobile"`
	CustomerAddress string     `json:"customer_address"`
	CustomerCity    string     `json:"customer_city"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}

// User roles.
const (
	RoleAdmin    = "admin"
	RoleReseller = "reseller"
)

// User is a merchant account. At most one user is session-active at a time.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
	Balance  int64     `json:"balance"`
	Role     string    `json:"role,omitempty"`
}

// Cities is the fixed delivery city enumeration.
var Cities = []string{
	"Karachi", "Lahore", "Islamabad", "Faisalabad", "Rawalpindi",
	"Multan", "Gujranwala", "Hyderabad", "Peshawar", "Quetta",
	"Sargodha", "Sialkot", "Bahawalpur", "Sukkur", "Jhang",
}

// ValidCity reports whether city is in the delivery city enumeration.
func ValidCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}
