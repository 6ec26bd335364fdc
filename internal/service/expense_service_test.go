package service

import (
	"context"
	"testing"

	"roombudget/internal/errs"
	"roombudget/internal/models"
)

// setupRoomWithMembers creates a room joined by Alex and Sam.
func setupRoomWithMembers(t *testing.T, rooms *RoomService) (roomID, alexID, samID string) {
	t.Helper()
	ctx := context.Background()

	room, err := rooms.CreateRoom(ctx, "Apt 4B")
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	_, alex, err := rooms.JoinRoom(ctx, room.Code, "Alex")
	if err != nil {
		t.Fatalf("JoinRoom(Alex) failed: %v", err)
	}
	_, sam, err := rooms.JoinRoom(ctx, room.Code, "Sam")
	if err != nil {
		t.Fatalf("JoinRoom(Sam) failed: %v", err)
	}
	return room.ID, alex.ID, sam.ID
}

func TestAddExpense(t *testing.T) {
	rooms, expenses := newTestServices(t)
	ctx := context.Background()
	roomID, alexID, _ := setupRoomWithMembers(t, rooms)

	t.Run("persists expense and returns fresh balance", func(t *testing.T) {
		expense, balance, err := expenses.AddExpense(ctx, roomID, AddExpenseInput{
			Category: models.CategoryRent,
			Amount:   1200,
			PaidBy:   alexID,
		})
		if err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		if expense.ID == "" || expense.CreatedAt.IsZero() {
			t.Error("expected identity and timestamp to be assigned")
		}
		if expense.SplitType != models.SplitTypeEqual {
			t.Errorf("expected split type %q, got %q", models.SplitTypeEqual, expense.SplitType)
		}
		if balance.TotalExpenses != 1200 || balance.PerPerson != 600 {
			t.Errorf("unexpected balance: total=%f perPerson=%f", balance.TotalExpenses, balance.PerPerson)
		}
		if balance.Settlement == nil || *balance.Settlement != "Sam owes Alex $600.00" {
			t.Errorf("unexpected settlement: %v", balance.Settlement)
		}
	})

	t.Run("unknown room is not found", func(t *testing.T) {
		_, _, err := expenses.AddExpense(ctx, "nonexistent", AddExpenseInput{
			Category: models.CategoryRent, Amount: 10, PaidBy: alexID,
		})
		if !errs.IsKind(err, errs.KindNotFound) {
			t.Errorf("expected not-found error, got %v", err)
		}
	})

	t.Run("category outside the fixed set is rejected", func(t *testing.T) {
		_, _, err := expenses.AddExpense(ctx, roomID, AddExpenseInput{
			Category: "Entertainment", Amount: 10, PaidBy: alexID,
		})
		if !errs.IsKind(err, errs.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		for _, amount := range []float64{0, -5} {
			_, _, err := expenses.AddExpense(ctx, roomID, AddExpenseInput{
				Category: models.CategoryRent, Amount: amount, PaidBy: alexID,
			})
			if !errs.IsKind(err, errs.KindValidation) {
				t.Errorf("AddExpense(amount=%f): expected validation error, got %v", amount, err)
			}
		}
	})

	t.Run("payer from another room is invalid", func(t *testing.T) {
		_, otherAlex, _ := setupRoomWithMembers(t, rooms)

		_, _, err := expenses.AddExpense(ctx, roomID, AddExpenseInput{
			Category: models.CategoryRent, Amount: 10, PaidBy: otherAlex,
		})
		if !errs.IsKind(err, errs.KindValidation) {
			t.Errorf("expected validation error for cross-room payer, got %v", err)
		}
		if err.Error() != "Invalid member" {
			t.Errorf("expected %q, got %q", "Invalid member", err.Error())
		}
	})
}

func TestDeleteExpense(t *testing.T) {
	rooms, expenses := newTestServices(t)
	ctx := context.Background()
	roomID, alexID, _ := setupRoomWithMembers(t, rooms)

	expense, _, err := expenses.AddExpense(ctx, roomID, AddExpenseInput{
		Category: models.CategoryUtilities, Amount: 90, PaidBy: alexID,
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	t.Run("delete under the wrong room is not found", func(t *testing.T) {
		otherRoomID, _, _ := setupRoomWithMembers(t, rooms)

		err := expenses.DeleteExpense(ctx, otherRoomID, expense.ID)
		if !errs.IsKind(err, errs.KindNotFound) {
			t.Errorf("expected not-found error, got %v", err)
		}

		// The expense must survive the failed cross-room delete.
		balance, err := rooms.GetBalance(ctx, roomID)
		if err != nil {
			t.Fatalf("GetBalance failed: %v", err)
		}
		if balance.TotalExpenses != 90 {
			t.Errorf("expected expense to survive, total=%f", balance.TotalExpenses)
		}
	})

	t.Run("delete clears the balance", func(t *testing.T) {
		if err := expenses.DeleteExpense(ctx, roomID, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}

		balance, err := rooms.GetBalance(ctx, roomID)
		if err != nil {
			t.Fatalf("GetBalance failed: %v", err)
		}
		if balance.TotalExpenses != 0 {
			t.Errorf("expected empty total, got %f", balance.TotalExpenses)
		}
		if balance.Settlement == nil || *balance.Settlement != "All settled up!" {
			t.Errorf("unexpected settlement: %v", balance.Settlement)
		}
	})

	t.Run("unknown room is not found", func(t *testing.T) {
		err := expenses.DeleteExpense(ctx, "nonexistent", expense.ID)
		if !errs.IsKind(err, errs.KindNotFound) {
			t.Errorf("expected not-found error, got %v", err)
		}
	})
}
