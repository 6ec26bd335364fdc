package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roombudget/internal/errs"
	"roombudget/internal/models"
)

// maxRoomMembers is the member cap enforced at join time. The balance
// calculator does not depend on it.
const maxRoomMembers = 2

// AddMember persists a new member. The capacity and duplicate-name checks
// run inside the same transaction as the insert, so two simultaneous joins
// cannot both observe a member count below the cap.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM members WHERE room_id = ?",
		member.RoomID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	if count >= maxRoomMembers {
		return errs.Capacity("Room full")
	}

	var taken int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM members WHERE room_id = ? AND LOWER(name) = LOWER(?)",
		member.RoomID, member.Name,
	).Scan(&taken)
	if err != nil {
		return fmt.Errorf("failed to check member name: %w", err)
	}
	if taken > 0 {
		return errs.Conflict("Name taken")
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO members (id, room_id, name, created_at) VALUES (?, ?, ?, ?)",
		member.ID, member.RoomID, member.Name, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListMembers retrieves a room's members in join order. The implicit
// rowid breaks timestamp ties in insertion order, so two joins landing in
// the same clock tick cannot swap the settlement sentence's member naming.
func (s *SQLiteStore) ListMembers(ctx context.Context, roomID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, room_id, name, created_at FROM members WHERE room_id = ? ORDER BY created_at, rowid",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.RoomID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// GetRoomMember retrieves a member only if it belongs to the given room.
func (s *SQLiteStore) GetRoomMember(ctx context.Context, roomID, memberID string) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, room_id, name, created_at FROM members WHERE id = ? AND room_id = ?",
		memberID, roomID,
	).Scan(&member.ID, &member.RoomID, &member.Name, &member.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("Member not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}
