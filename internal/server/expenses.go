package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roombudget/internal/service"
)

type addExpenseRequest struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paidBy"`
}

// AddExpense handles POST /api/rooms/:roomId/expenses.
func (h *Handlers) AddExpense(c *gin.Context) {
	var req addExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Covers non-numeric amounts among other malformed payloads.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	expense, balance, err := h.expenses.AddExpense(c.Request.Context(), c.Param("roomId"), service.AddExpenseInput{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		PaidBy:      req.PaidBy,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense, "newBalance": balance})
}

// DeleteExpense handles DELETE /api/rooms/:roomId/expenses/:expenseId.
func (h *Handlers) DeleteExpense(c *gin.Context) {
	err := h.expenses.DeleteExpense(c.Request.Context(), c.Param("roomId"), c.Param("expenseId"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
