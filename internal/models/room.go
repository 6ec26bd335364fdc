package models

import "time"

// Room represents a shared budget space two roommates can join.
type Room struct {
	// ID is the unique identifier for the room (UUID format).
	ID string `json:"id"`

	// Code is the 6-character join code, stored uppercase and unique
	// across all rooms.
	Code string `json:"code"`

	// Name is the display name of the room (e.g., "Apt 4B").
	Name string `json:"name"`

	// CreatedAt is the server-assigned creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// Member represents a person who has joined a room.
// A room holds at most two members; names are unique within a room
// (case-insensitively, after trimming).
type Member struct {
	ID     string `json:"id"`
	RoomID string `json:"room_id"`
	Name   string `json:"name"`

	CreatedAt time.Time `json:"created_at"`
}
