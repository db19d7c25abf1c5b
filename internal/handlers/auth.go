package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/AnshRaj112/evolve-backend/internal/middleware"
	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/store"
	"github.com/AnshRaj112/evolve-backend/pkg/utils"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

// Signup creates an account and signs it in.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := utils.ValidateEmail(req.Email); err != nil {
		writeServiceError(w, err, "")
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		writeServiceError(w, err, "")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		deps.Logger.Error("failed to hash password", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user := &models.User{
		Email:        utils.NormalizeEmail(req.Email),
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: hash,
	}
	if err := deps.Store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		writeServiceError(w, err, "Failed to create account")
		return
	}

	token, err := deps.Sessions.CreateSession(r.Context(), user.ID)
	if err != nil {
		deps.Logger.Error("failed to create session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Account created, but sign-in failed. Please sign in.")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   token,
		User:    user,
	})
}

// Signin exchanges email and password for a session token.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := deps.Store.GetUserByEmail(r.Context(), utils.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeServiceError(w, err, "Failed to sign in")
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := deps.Sessions.CreateSession(r.Context(), user.ID)
	if err != nil {
		deps.Logger.Error("failed to create session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed in successfully",
		Token:   token,
		User:    user,
	})
}

// Signout drops the caller's session. It succeeds for unknown tokens too.
func Signout(w http.ResponseWriter, r *http.Request) {
	if err := deps.Sessions.InvalidateSession(r.Context(), middleware.SessionToken(r)); err != nil {
		writeServiceError(w, err, "Failed to sign out")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Signed out"})
}

// Me returns the authenticated user.
func Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	user, err := deps.Store.GetUserByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if err != nil {
		writeServiceError(w, err, "Failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "OK", User: user})
}
