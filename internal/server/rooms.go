package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createRoomRequest struct {
	Name string `json:"name"`
}

type joinRoomRequest struct {
	Code       string `json:"code"`
	MemberName string `json:"memberName"`
}

// CreateRoom handles POST /api/rooms.
func (h *Handlers) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	room, err := h.rooms.CreateRoom(c.Request.Context(), req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// JoinRoom handles POST /api/rooms/join.
func (h *Handlers) JoinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	room, member, err := h.rooms.JoinRoom(c.Request.Context(), req.Code, req.MemberName)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"room": room, "member": member})
}

// GetRoom handles GET /api/rooms/:roomId.
func (h *Handlers) GetRoom(c *gin.Context) {
	detail, err := h.rooms.GetRoomDetail(c.Request.Context(), c.Param("roomId"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetBalance handles GET /api/rooms/:roomId/balance.
func (h *Handlers) GetBalance(c *gin.Context) {
	balance, err := h.rooms.GetBalance(c.Request.Context(), c.Param("roomId"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}
