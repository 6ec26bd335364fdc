package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roombudget/internal/errs"
	"roombudget/internal/models"
)

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	if expense.SplitType == "" {
		expense.SplitType = models.SplitTypeEqual
	}

	var description any
	if expense.Description != "" {
		description = expense.Description
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, room_id, category, description, amount, paid_by, split_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.RoomID, expense.Category, description,
		expense.Amount, expense.PaidBy, expense.SplitType, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// ListExpenses retrieves a room's expenses, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, roomID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, category, description, amount, paid_by, split_type, created_at
		 FROM expenses WHERE room_id = ? ORDER BY created_at DESC, rowid DESC`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var description sql.NullString

		if err := rows.Scan(&e.ID, &e.RoomID, &e.Category, &description,
			&e.Amount, &e.PaidBy, &e.SplitType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		if description.Valid {
			e.Description = description.String
		}

		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// DeleteExpense removes an expense scoped to the given room. Deleting an
// expense that exists under a different room reports not found rather than
// deleting across rooms.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, roomID, expenseID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND room_id = ?",
		expenseID, roomID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return errs.NotFound("Expense not found")
	}

	return nil
}
