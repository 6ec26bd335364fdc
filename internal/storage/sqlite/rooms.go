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

// CreateRoom persists a new room to the database. The code uniqueness
// constraint is the final backstop against a generation race; callers
// retry with a fresh code on collision.
func (s *SQLiteStore) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO rooms (id, code, name, created_at) VALUES (?, ?, ?, ?)",
		room.ID, room.Code, room.Name, room.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict("Room code already in use")
		}
		return fmt.Errorf("failed to insert room: %w", err)
	}

	return nil
}

// GetRoom retrieves a room by ID.
func (s *SQLiteStore) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	return s.scanRoom(s.db.QueryRowContext(ctx,
		"SELECT id, code, name, created_at FROM rooms WHERE id = ?",
		roomID,
	), "Room not found")
}

// GetRoomByCode retrieves a room by its join code.
func (s *SQLiteStore) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	return s.scanRoom(s.db.QueryRowContext(ctx,
		"SELECT id, code, name, created_at FROM rooms WHERE code = ?",
		code,
	), "Invalid code")
}

func (s *SQLiteStore) scanRoom(row *sql.Row, notFoundMsg string) (*models.Room, error) {
	room := &models.Room{}
	err := row.Scan(&room.ID, &room.Code, &room.Name, &room.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("%s", notFoundMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}
