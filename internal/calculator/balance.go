// Package calculator computes balances from a room's members and expenses.
// Everything here is pure: no storage, no I/O, no rounding until display.
package calculator

import (
	"fmt"
	"math"

	"roombudget/internal/models"
)

// settleThreshold absorbs floating-point noise from equal division.
// Balances within it count as settled; it is not a currency-rounding rule.
const settleThreshold = 0.01

// MemberBalance holds the derived figures for one member.
type MemberBalance struct {
	Paid    float64 `json:"paid"`
	Owes    float64 `json:"owes"`
	Balance float64 `json:"balance"` // Positive = overpaid, negative = owes money
}

// Balance is the aggregate result for a room.
type Balance struct {
	TotalExpenses float64 `json:"totalExpenses"`

	// PerPerson is the equal share of the total, 0 when the room has no
	// members.
	PerPerson float64 `json:"perPerson"`

	// Breakdown maps member ID to that member's figures.
	Breakdown map[string]MemberBalance `json:"breakdown"`

	// Settlement is the human-readable instruction for the two-member
	// case, nil for any other member count.
	Settlement *string `json:"settlement"`
}

// Calculate computes the room balance from the current member and expense
// sets. Expenses are split equally across all members regardless of who
// consumed what; a member's balance is what they paid minus their share.
//
// The settlement sentence is only produced for exactly two members. The
// breakdown itself is N-way and makes no assumption about the member cap.
func Calculate(members []models.Member, expenses []models.Expense) Balance {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	perPerson := 0.0
	if len(members) > 0 {
		perPerson = total / float64(len(members))
	}

	breakdown := make(map[string]MemberBalance, len(members))
	for _, m := range members {
		var paid float64
		for _, e := range expenses {
			if e.PaidBy == m.ID {
				paid += e.Amount
			}
		}
		breakdown[m.ID] = MemberBalance{
			Paid:    paid,
			Owes:    perPerson,
			Balance: paid - perPerson,
		}
	}

	var settlement *string
	if len(members) == 2 {
		m1, m2 := members[0], members[1]
		b1 := breakdown[m1.ID].Balance
		b2 := breakdown[m2.ID].Balance

		var msg string
		switch {
		case b1 > settleThreshold:
			msg = fmt.Sprintf("%s owes %s $%.2f", m2.Name, m1.Name, math.Abs(b1))
		case b2 > settleThreshold:
			msg = fmt.Sprintf("%s owes %s $%.2f", m1.Name, m2.Name, math.Abs(b2))
		default:
			msg = "All settled up!"
		}
		settlement = &msg
	}

	return Balance{
		TotalExpenses: total,
		PerPerson:     perPerson,
		Breakdown:     breakdown,
		Settlement:    settlement,
	}
}
