package model

import "time"

// Category is a user-defined transaction label, independent of the fixed
// suggested lists. Color is a hex string used by presentation layers.
type Category struct {
	CreatedAt time.Time
	ID        string
	OwnerID   string
	Name      string
	Type      TransactionType
	Color     string
}
