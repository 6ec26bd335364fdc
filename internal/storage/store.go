// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"roombudget/internal/models"
)

// Store defines the interface for room, member, and expense persistence.
// This abstraction allows swapping storage backends without changing the
// service layer, and lets tests substitute an isolated database per test.
//
// Implementations return *errs.Error values for domain outcomes (missing
// rows, a full room, a taken name) so callers can map them without string
// matching.
type Store interface {
	// CreateRoom persists a new room. ID and CreatedAt are populated by
	// the store if unset.
	CreateRoom(ctx context.Context, room *models.Room) error

	// GetRoom retrieves a room by its ID.
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)

	// GetRoomByCode retrieves a room by its join code (exact match; the
	// caller normalizes case).
	GetRoomByCode(ctx context.Context, code string) (*models.Room, error)

	// AddMember persists a new member. The two-member cap and the
	// case-insensitive name uniqueness check run in the same transaction
	// as the insert, so concurrent joins cannot both slip under the cap.
	AddMember(ctx context.Context, member *models.Member) error

	// ListMembers returns a room's members ordered by creation time
	// ascending (join order).
	ListMembers(ctx context.Context, roomID string) ([]models.Member, error)

	// GetRoomMember retrieves a member only if it belongs to the given
	// room.
	GetRoomMember(ctx context.Context, roomID, memberID string) (*models.Member, error)

	// CreateExpense persists a new expense. ID, CreatedAt, and SplitType
	// are populated by the store if unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpenses returns a room's expenses ordered by creation time
	// descending (newest first).
	ListExpenses(ctx context.Context, roomID string) ([]models.Expense, error)

	// DeleteExpense removes an expense scoped to the given room. An
	// expense ID that exists under another room is reported as not found.
	DeleteExpense(ctx context.Context, roomID, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
