// Package store defines the persistence contract. Every record is scoped to a
// single user; methods taking a userID never read or write another user's data.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AnshRaj112/evolve-backend/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Store is implemented by the Postgres and in-memory backends. Create methods
// assign ID and CreatedAt on the passed record.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	CreateJournalEntry(ctx context.Context, e *models.JournalEntry) error
	// ListJournalEntries returns entries newest first.
	ListJournalEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.JournalEntry, error)
	CountJournalEntries(ctx context.Context, userID uuid.UUID) (int64, error)

	CreateAffirmation(ctx context.Context, a *models.Affirmation) error
	ListAffirmations(ctx context.Context, userID uuid.UUID, limit int) ([]models.Affirmation, error)

	CreateMeditation(ctx context.Context, m *models.Meditation) error
	// UpdateMeditationAudio sets the audio of an existing meditation in place.
	UpdateMeditationAudio(ctx context.Context, userID, id uuid.UUID, dataURI string, audioURL *string) error
	ListMeditations(ctx context.Context, userID uuid.UUID, limit int) ([]models.Meditation, error)

	// UpsertGoal keeps the user's existing goal ID, replaces title,
	// description and target, and resets progress to 0.
	UpsertGoal(ctx context.Context, g *models.Goal) error
	GetGoal(ctx context.Context, userID uuid.UUID) (*models.Goal, error)
	UpdateGoalProgress(ctx context.Context, userID uuid.UUID, progress float64) (*models.Goal, error)

	CreateFriendship(ctx context.Context, f *models.Friendship) error
	// FriendshipExists checks both directions.
	FriendshipExists(ctx context.Context, a, b uuid.UUID) (bool, error)
	// ListFriends returns friendships in both directions, seen from userID.
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friend, error)
}
