package models

import (
	"time"

	"github.com/google/uuid"
)

// FriendStatus represents the state of a friendship request.
type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
)

// Friendship is directional: UserID sent the request to FriendID.
type Friendship struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	FriendID  uuid.UUID    `json:"friend_id"`
	Status    FriendStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// Friend is a friendship seen from one user's side.
type Friend struct {
	FriendshipID uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"friend_id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Status       FriendStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}
