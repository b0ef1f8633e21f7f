package domain

// OrderStore persists the user's custom provider display order across
// sessions. An absent or unreadable order is the empty order.
type OrderStore interface {
	Order() []string

	SetOrder(names []string) error
}
