package service

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"roombudget/internal/errs"
	"roombudget/internal/models"
	"roombudget/internal/storage"
	"roombudget/internal/storage/sqlite"
)

// codePattern is the 32-symbol alphabet with the ambiguous glyphs 0/1/O/I
// excluded.
var codePattern = regexp.MustCompile(`^[A-HJ-NP-Z2-9]{6}$`)

func newTestServices(t *testing.T) (*RoomService, *ExpenseService) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewRoomService(store), NewExpenseService(store)
}

func TestCreateRoom(t *testing.T) {
	rooms, _ := newTestServices(t)
	ctx := context.Background()

	t.Run("creates room with valid code", func(t *testing.T) {
		room, err := rooms.CreateRoom(ctx, "  Apt 4B  ")
		if err != nil {
			t.Fatalf("CreateRoom failed: %v", err)
		}
		if room.Name != "Apt 4B" {
			t.Errorf("expected trimmed name, got %q", room.Name)
		}
		if !codePattern.MatchString(room.Code) {
			t.Errorf("code %q does not match the restricted alphabet", room.Code)
		}
		if room.ID == "" || room.CreatedAt.IsZero() {
			t.Error("expected identity and timestamp to be assigned")
		}
	})

	t.Run("codes are unique across rooms", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 25; i++ {
			room, err := rooms.CreateRoom(ctx, "Room")
			if err != nil {
				t.Fatalf("CreateRoom failed: %v", err)
			}
			if seen[room.Code] {
				t.Fatalf("duplicate code %q", room.Code)
			}
			seen[room.Code] = true
		}
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		for _, name := range []string{"", "   ", "\t\n"} {
			_, err := rooms.CreateRoom(ctx, name)
			if !errs.IsKind(err, errs.KindValidation) {
				t.Errorf("CreateRoom(%q): expected validation error, got %v", name, err)
			}
		}
	})
}

// collidingStore reports a code conflict for the first n room inserts, as
// if another request claimed each generated code between the availability
// check and the insert.
type collidingStore struct {
	storage.Store
	collisions int
}

func (s *collidingStore) CreateRoom(ctx context.Context, room *models.Room) error {
	if s.collisions > 0 {
		s.collisions--
		return errs.Conflict("Room code already in use")
	}
	return s.Store.CreateRoom(ctx, room)
}

func TestCreateRoomRetriesOnInsertCollision(t *testing.T) {
	ctx := context.Background()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	t.Run("insert race consumes a retry attempt", func(t *testing.T) {
		rooms := NewRoomService(&collidingStore{Store: store, collisions: 3})

		room, err := rooms.CreateRoom(ctx, "Apt 4B")
		if err != nil {
			t.Fatalf("CreateRoom failed after collisions: %v", err)
		}
		if !codePattern.MatchString(room.Code) {
			t.Errorf("code %q does not match the restricted alphabet", room.Code)
		}
	})

	t.Run("exhausted attempts surface an error", func(t *testing.T) {
		rooms := NewRoomService(&collidingStore{Store: store, collisions: maxCodeAttempts})

		_, err := rooms.CreateRoom(ctx, "Apt 4B")
		if err == nil {
			t.Fatal("expected error once every attempt collides")
		}
		// Exhaustion is an internal failure, not a client-visible kind.
		if _, ok := errs.As(err); ok {
			t.Errorf("expected unclassified error, got %v", err)
		}
	})
}

func TestJoinRoom(t *testing.T) {
	rooms, _ := newTestServices(t)
	ctx := context.Background()

	room, err := rooms.CreateRoom(ctx, "Apt 4B")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	t.Run("code is case-insensitive on input", func(t *testing.T) {
		joined, member, err := rooms.JoinRoom(ctx, "  "+strings.ToLower(room.Code)+" ", " Alex ")
		if err != nil {
			t.Fatalf("JoinRoom failed: %v", err)
		}
		if joined.ID != room.ID {
			t.Errorf("joined wrong room: %s", joined.ID)
		}
		if member.Name != "Alex" {
			t.Errorf("expected trimmed member name, got %q", member.Name)
		}
	})

	t.Run("duplicate name conflicts case-insensitively", func(t *testing.T) {
		_, _, err := rooms.JoinRoom(ctx, room.Code, "aLeX")
		if !errs.IsKind(err, errs.KindConflict) {
			t.Errorf("expected conflict error, got %v", err)
		}
	})

	t.Run("third join hits capacity", func(t *testing.T) {
		if _, _, err := rooms.JoinRoom(ctx, room.Code, "Sam"); err != nil {
			t.Fatalf("second join failed: %v", err)
		}
		_, _, err := rooms.JoinRoom(ctx, room.Code, "Casey")
		if !errs.IsKind(err, errs.KindCapacity) {
			t.Errorf("expected capacity error, got %v", err)
		}
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, _, err := rooms.JoinRoom(ctx, "ZZZZZZ", "Alex")
		if !errs.IsKind(err, errs.KindNotFound) {
			t.Errorf("expected not-found error, got %v", err)
		}
	})

	t.Run("missing fields are validation errors", func(t *testing.T) {
		if _, _, err := rooms.JoinRoom(ctx, "", "Alex"); !errs.IsKind(err, errs.KindValidation) {
			t.Errorf("expected validation error for empty code, got %v", err)
		}
		if _, _, err := rooms.JoinRoom(ctx, room.Code, "   "); !errs.IsKind(err, errs.KindValidation) {
			t.Errorf("expected validation error for empty name, got %v", err)
		}
	})
}

func TestGetRoomDetail(t *testing.T) {
	rooms, expenses := newTestServices(t)
	ctx := context.Background()

	room, err := rooms.CreateRoom(ctx, "Apt 4B")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	_, alex, err := rooms.JoinRoom(ctx, room.Code, "Alex")
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	_, _, err = rooms.JoinRoom(ctx, room.Code, "Sam")
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}

	older, _, err := expenses.AddExpense(ctx, room.ID, AddExpenseInput{
		Category: models.CategoryRent, Amount: 1200, PaidBy: alex.ID,
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	newer, _, err := expenses.AddExpense(ctx, room.ID, AddExpenseInput{
		Category: models.CategoryGroceries, Description: "weekly run", Amount: 80, PaidBy: alex.ID,
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	t.Run("aggregates members, expenses, and balance", func(t *testing.T) {
		detail, err := rooms.GetRoomDetail(ctx, room.ID)
		if err != nil {
			t.Fatalf("GetRoomDetail failed: %v", err)
		}

		if detail.Room.ID != room.ID {
			t.Errorf("wrong room: %s", detail.Room.ID)
		}
		if len(detail.Members) != 2 || detail.Members[0].Name != "Alex" || detail.Members[1].Name != "Sam" {
			t.Errorf("expected members in join order, got %+v", detail.Members)
		}
		if len(detail.Expenses) != 2 || detail.Expenses[0].ID != newer.ID || detail.Expenses[1].ID != older.ID {
			t.Error("expected expenses newest first")
		}
		if detail.Balance.TotalExpenses != 1280 {
			t.Errorf("expected total 1280, got %f", detail.Balance.TotalExpenses)
		}
		if detail.Balance.Settlement == nil || *detail.Balance.Settlement != "Sam owes Alex $640.00" {
			t.Errorf("unexpected settlement: %v", detail.Balance.Settlement)
		}
	})

	t.Run("unknown room is not found", func(t *testing.T) {
		if _, err := rooms.GetRoomDetail(ctx, "nonexistent"); !errs.IsKind(err, errs.KindNotFound) {
			t.Errorf("expected not-found error, got %v", err)
		}
		if _, err := rooms.GetBalance(ctx, "nonexistent"); !errs.IsKind(err, errs.KindNotFound) {
			t.Errorf("expected not-found error, got %v", err)
		}
	})

	t.Run("GetBalance matches detail balance", func(t *testing.T) {
		balance, err := rooms.GetBalance(ctx, room.ID)
		if err != nil {
			t.Fatalf("GetBalance failed: %v", err)
		}
		if balance.PerPerson != 640 {
			t.Errorf("expected perPerson 640, got %f", balance.PerPerson)
		}
	})
}
