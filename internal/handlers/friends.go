package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AnshRaj112/evolve-backend/internal/middleware"
	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/store"
	"github.com/AnshRaj112/evolve-backend/pkg/utils"
)

type AddFriendRequest struct {
	FriendEmail string `json:"friendEmail"`
}

type FriendshipResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Friendship *models.Friendship `json:"friendship,omitempty"`
}

type GetFriendsResponse struct {
	Success bool            `json:"success"`
	Friends []models.Friend `json:"friends"`
}

// GetFriends lists friendships in both directions.
func GetFriends(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	friends, err := deps.Store.ListFriends(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to load friends")
		return
	}
	writeJSON(w, http.StatusOK, GetFriendsResponse{Success: true, Friends: friends})
}

// AddFriend sends a friend request by email. The friendship starts pending.
func AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req AddFriendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FriendEmail) == "" {
		writeError(w, http.StatusBadRequest, "Friend email is required")
		return
	}

	friend, err := deps.Store.GetUserByEmail(r.Context(), utils.NormalizeEmail(req.FriendEmail))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeServiceError(w, err, "Failed to add friend")
		return
	}
	if friend.ID == userID {
		writeError(w, http.StatusBadRequest, "You cannot add yourself as a friend")
		return
	}

	exists, err := deps.Store.FriendshipExists(r.Context(), userID, friend.ID)
	if err != nil {
		writeServiceError(w, err, "Failed to add friend")
		return
	}
	if exists {
		writeError(w, http.StatusBadRequest, "Friendship already exists")
		return
	}

	f := &models.Friendship{UserID: userID, FriendID: friend.ID, Status: models.FriendStatusPending}
	if err := deps.Store.CreateFriendship(r.Context(), f); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusBadRequest, "Friendship already exists")
			return
		}
		writeServiceError(w, err, "Failed to add friend")
		return
	}
	writeJSON(w, http.StatusCreated, FriendshipResponse{Success: true, Message: "Friend request sent", Friendship: f})
}
