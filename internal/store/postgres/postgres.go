// Package postgres implements store.Store on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/store"
)

// uniqueViolation is the SQLSTATE Postgres reports for a UNIQUE conflict.
const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, u.Email, u.FullName, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, password_hash, created_at
		FROM users WHERE `+where, arg).Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "LOWER(email) = $1", strings.ToLower(strings.TrimSpace(email)))
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getUser(ctx, "id = $1", id)
}

func (s *Store) CreateJournalEntry(ctx context.Context, e *models.JournalEntry) error {
	keywords := e.MoodKeywords
	if keywords == nil {
		keywords = []string{}
	}
	return s.db.QueryRowContext(ctx, `
		INSERT INTO journal_entries (user_id, content, sentiment, mood_keywords)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, e.UserID, e.Content, e.Sentiment, pq.StringArray(keywords)).Scan(&e.ID, &e.CreatedAt)
}

func (s *Store) ListJournalEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.JournalEntry, error) {
	query := `
		SELECT id, user_id, content, sentiment, mood_keywords, created_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		OFFSET $2`
	args := []any{userID, offset}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		var keywords pq.StringArray
		if err := rows.Scan(&e.ID, &e.UserID, &e.Content, &e.Sentiment, &keywords, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.MoodKeywords = []string(keywords)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) CountJournalEntries(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (s *Store) CreateAffirmation(ctx context.Context, a *models.Affirmation) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO affirmations (user_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, a.UserID, a.Content).Scan(&a.ID, &a.CreatedAt)
}

func (s *Store) ListAffirmations(ctx context.Context, userID uuid.UUID, limit int) ([]models.Affirmation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, content, created_at
		FROM affirmations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Affirmation{}
	for rows.Next() {
		var a models.Affirmation
		if err := rows.Scan(&a.ID, &a.UserID, &a.Content, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) CreateMeditation(ctx context.Context, m *models.Meditation) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO meditations (user_id, content, audio_data_uri, audio_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.UserID, m.Content, m.AudioDataURI, m.AudioURL).Scan(&m.ID, &m.CreatedAt)
}

func (s *Store) UpdateMeditationAudio(ctx context.Context, userID, id uuid.UUID, dataURI string, audioURL *string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE meditations
		SET audio_data_uri = $1, audio_url = COALESCE($2, audio_url)
		WHERE id = $3 AND user_id = $4
	`, dataURI, audioURL, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListMeditations(ctx context.Context, userID uuid.UUID, limit int) ([]models.Meditation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, content, audio_data_uri, audio_url, created_at
		FROM meditations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Meditation{}
	for rows.Next() {
		var m models.Meditation
		var dataURI, audioURL sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &m.Content, &dataURI, &audioURL, &m.CreatedAt); err != nil {
			return nil, err
		}
		if dataURI.Valid {
			m.AudioDataURI = &dataURI.String
		}
		if audioURL.Valid {
			m.AudioURL = &audioURL.String
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) UpsertGoal(ctx context.Context, g *models.Goal) error {
	g.Progress = 0
	return s.db.QueryRowContext(ctx, `
		INSERT INTO goals (user_id, title, description, target, progress)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (user_id) DO UPDATE
		SET title = EXCLUDED.title,
			description = EXCLUDED.description,
			target = EXCLUDED.target,
			progress = 0,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, g.UserID, g.Title, g.Description, g.Target).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (s *Store) GetGoal(ctx context.Context, userID uuid.UUID) (*models.Goal, error) {
	var g models.Goal
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, target, progress, created_at, updated_at
		FROM goals WHERE user_id = $1
	`, userID).Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Target, &g.Progress, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) UpdateGoalProgress(ctx context.Context, userID uuid.UUID, progress float64) (*models.Goal, error) {
	var g models.Goal
	err := s.db.QueryRowContext(ctx, `
		UPDATE goals SET progress = $1, updated_at = $2
		WHERE user_id = $3
		RETURNING id, user_id, title, description, target, progress, created_at, updated_at
	`, progress, time.Now(), userID).Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.Target, &g.Progress, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) CreateFriendship(ctx context.Context, f *models.Friendship) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO friends (user_id, friend_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, f.UserID, f.FriendID, string(f.Status)).Scan(&f.ID, &f.CreatedAt)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create friendship: %w", err)
	}
	return nil
}

func (s *Store) FriendshipExists(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM friends
			WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
		)
	`, a, b).Scan(&exists)
	return exists, err
}

func (s *Store) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, u.id, COALESCE(NULLIF(u.full_name, ''), u.email), u.email, f.status, f.created_at
		FROM friends f
		JOIN users u ON u.id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
		WHERE f.user_id = $1 OR f.friend_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friends := []models.Friend{}
	for rows.Next() {
		var fr models.Friend
		var status string
		if err := rows.Scan(&fr.FriendshipID, &fr.UserID, &fr.Name, &fr.Email, &status, &fr.CreatedAt); err != nil {
			return nil, err
		}
		fr.Status = models.FriendStatus(status)
		friends = append(friends, fr)
	}
	return friends, rows.Err()
}
