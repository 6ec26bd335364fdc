package models

import "time"

// Expense categories form a closed set; anything else is rejected at the
// service boundary.
const (
	CategoryRent      = "Rent"
	CategoryUtilities = "Utilities"
	CategoryGroceries = "Groceries"
)

// Categories lists the allowed expense categories in display order.
var Categories = []string{CategoryRent, CategoryUtilities, CategoryGroceries}

// ValidCategory reports whether c is one of the allowed categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// SplitTypeEqual is the only split type currently written. It is stored
// with each expense but not otherwise interpreted.
const SplitTypeEqual = "equal"

// Expense represents a single payment recorded against a room,
// attributed to one member.
type Expense struct {
	ID     string `json:"id"`
	RoomID string `json:"room_id"`

	// Category is one of the Categories set.
	Category string `json:"category"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Amount is the positive payment amount in currency units.
	Amount float64 `json:"amount"`

	// PaidBy is the ID of the member (of the same room) who paid.
	PaidBy string `json:"paid_by"`

	SplitType string `json:"split_type"`

	CreatedAt time.Time `json:"created_at"`
}
