package service

import "errors"

// Validation and transition errors surfaced to the control surface. All are
// reported synchronously to the initiating action; none mutate state.
var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidStep     = errors.New("action not allowed in current checkout step")
	ErrAddressRequired = errors.New("delivery address is required")
	ErrUnknownCity     = errors.New("unknown delivery city")
	ErrAccountRequired = errors.New("payment account number is required")

	ErrNameRequired    = errors.New("product name is required")
	ErrPriceRequired   = errors.New("product price is required")
	ErrImageRequired   = errors.New("at least one product image is required")
	ErrInvalidCategory = errors.New("unknown product category")
	ErrProductNotFound = errors.New("product not found")

	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrNoDescriptionGenerator = errors.New("no description generator configured")
)

// Notifier signals the persistence layer that state changed. Persistence
// timing (debounce, write-on-commit) is the notifier's policy, not the
// engines'.
type Notifier interface {
	Notify()
}
