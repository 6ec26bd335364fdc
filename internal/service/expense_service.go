package service

import (
	"context"
	"log/slog"
	"strings"

	"roombudget/internal/calculator"
	"roombudget/internal/errs"
	"roombudget/internal/models"
	"roombudget/internal/storage"
)

// ExpenseService implements adding and deleting expenses for a room.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// AddExpenseInput carries the fields of an add-expense request.
type AddExpenseInput struct {
	Category    string
	Description string
	Amount      float64
	PaidBy      string
}

// AddExpense validates and persists a new expense, then recomputes the
// room's balance against the full current member/expense set rather than
// updating incrementally, so the returned balance reflects any concurrent
// changes observed at request time.
func (s *ExpenseService) AddExpense(ctx context.Context, roomID string, in AddExpenseInput) (*models.Expense, *calculator.Balance, error) {
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return nil, nil, err
	}

	if !models.ValidCategory(in.Category) {
		return nil, nil, errs.Validation("Category must be one of: %s", strings.Join(models.Categories, ", "))
	}

	if in.Amount <= 0 {
		return nil, nil, errs.Validation("Amount must be positive")
	}

	// paid_by must resolve to a member of this specific room; a member of
	// another room is invalid input, not a missing resource.
	if _, err := s.store.GetRoomMember(ctx, roomID, in.PaidBy); err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, nil, errs.Validation("Invalid member")
		}
		return nil, nil, err
	}

	expense := &models.Expense{
		RoomID:      roomID,
		Category:    in.Category,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		PaidBy:      in.PaidBy,
		SplitType:   models.SplitTypeEqual,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, nil, err
	}

	members, err := s.store.ListMembers(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	balance := calculator.Calculate(members, expenses)

	slog.Info("Expense added",
		"room_id", roomID,
		"expense_id", expense.ID,
		"category", expense.Category,
		"amount", expense.Amount,
	)

	return expense, &balance, nil
}

// DeleteExpense removes an expense from a room. An expense ID that exists
// under another room is treated as not found. No balance is returned; the
// caller re-fetches.
func (s *ExpenseService) DeleteExpense(ctx context.Context, roomID, expenseID string) error {
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return err
	}

	if err := s.store.DeleteExpense(ctx, roomID, expenseID); err != nil {
		return err
	}

	slog.Info("Expense deleted", "room_id", roomID, "expense_id", expenseID)
	return nil
}
