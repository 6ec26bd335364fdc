package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"roombudget/internal/calculator"
	"roombudget/internal/errs"
	"roombudget/internal/models"
	"roombudget/internal/storage"
)

// RoomService implements room creation, joining, and detail/balance reads.
type RoomService struct {
	store storage.Store
}

// NewRoomService creates a new RoomService with the given storage backend.
func NewRoomService(store storage.Store) *RoomService {
	return &RoomService{store: store}
}

// RoomDetail aggregates everything the room view needs in one response.
type RoomDetail struct {
	Room     *models.Room       `json:"room"`
	Members  []models.Member    `json:"members"`
	Expenses []models.Expense   `json:"expenses"`
	Balance  calculator.Balance `json:"balance"`
}

// CreateRoom creates a room with a freshly generated unique join code.
func (s *RoomService) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Validation("Room name is required")
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := generateCode()

		// Re-generate on collision; the unique constraint on the code
		// column backstops the window between check and insert.
		_, err := s.store.GetRoomByCode(ctx, code)
		if err == nil {
			continue
		}
		if !errs.IsKind(err, errs.KindNotFound) {
			return nil, err
		}

		room := &models.Room{Code: code, Name: name}
		if err := s.store.CreateRoom(ctx, room); err != nil {
			// Lost the insert race for this code; burn the attempt
			// and regenerate.
			if errs.IsKind(err, errs.KindConflict) {
				continue
			}
			return nil, err
		}

		slog.Info("Room created", "room_id", room.ID, "code", room.Code)
		return room, nil
	}

	return nil, fmt.Errorf("room code space exhausted after %d attempts", maxCodeAttempts)
}

// JoinRoom adds a member to the room matching the given code. Codes are
// case-insensitive on input; member names must be unique within the room.
func (s *RoomService) JoinRoom(ctx context.Context, code, memberName string) (*models.Room, *models.Member, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil, errs.Validation("Room code is required")
	}

	memberName = strings.TrimSpace(memberName)
	if memberName == "" {
		return nil, nil, errs.Validation("Member name is required")
	}

	room, err := s.store.GetRoomByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	member := &models.Member{RoomID: room.ID, Name: memberName}
	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, nil, err
	}

	slog.Info("Member joined", "room_id", room.ID, "member_id", member.ID, "name", member.Name)
	return room, member, nil
}

// GetRoomDetail returns the room, its members in join order, its expenses
// newest first, and the computed balance. Read-only.
func (s *RoomService) GetRoomDetail(ctx context.Context, roomID string) (*RoomDetail, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	members, expenses, err := s.roomState(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return &RoomDetail{
		Room:     room,
		Members:  members,
		Expenses: expenses,
		Balance:  calculator.Calculate(members, expenses),
	}, nil
}

// GetBalance returns only the computed balance for a room.
func (s *RoomService) GetBalance(ctx context.Context, roomID string) (*calculator.Balance, error) {
	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	members, expenses, err := s.roomState(ctx, roomID)
	if err != nil {
		return nil, err
	}

	balance := calculator.Calculate(members, expenses)
	return &balance, nil
}

// roomState loads the member and expense sets the calculator consumes.
// Members keep join order so the settlement sentence names them stably;
// the aggregate sums do not depend on either ordering.
func (s *RoomService) roomState(ctx context.Context, roomID string) ([]models.Member, []models.Expense, error) {
	members, err := s.store.ListMembers(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	return members, expenses, nil
}
