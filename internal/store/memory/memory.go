// Package memory is an in-process store.Store for development and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/store"
)

// Store keeps every record in maps guarded by one RWMutex. Returned values
// are copies.
type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	users        map[uuid.UUID]models.User
	journal      []models.JournalEntry
	affirmations []models.Affirmation
	meditations  []models.Meditation
	goals        map[uuid.UUID]models.Goal
	friendships  []models.Friendship
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		now:   time.Now,
		users: make(map[uuid.UUID]models.User),
		goals: make(map[uuid.UUID]models.Goal),
	}
}

// WithClock replaces the clock used for CreatedAt. Tests use it to order records.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrConflict
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = s.now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) CreateJournalEntry(_ context.Context, e *models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.New()
	e.CreatedAt = s.now().UTC()
	cp := *e
	cp.MoodKeywords = append([]string(nil), e.MoodKeywords...)
	s.journal = append(s.journal, cp)
	return nil
}

func (s *Store) ListJournalEntries(_ context.Context, userID uuid.UUID, limit, offset int) ([]models.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.JournalEntry
	for _, e := range s.journal {
		if e.UserID == userID {
			e.MoodKeywords = append([]string(nil), e.MoodKeywords...)
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (s *Store) CountJournalEntries(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.journal {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *Store) CreateAffirmation(_ context.Context, a *models.Affirmation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = uuid.New()
	a.CreatedAt = s.now().UTC()
	s.affirmations = append(s.affirmations, *a)
	return nil
}

func (s *Store) ListAffirmations(_ context.Context, userID uuid.UUID, limit int) ([]models.Affirmation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Affirmation
	for _, a := range s.affirmations {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, 0), nil
}

func (s *Store) CreateMeditation(_ context.Context, m *models.Meditation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = uuid.New()
	m.CreatedAt = s.now().UTC()
	s.meditations = append(s.meditations, *m)
	return nil
}

func (s *Store) UpdateMeditationAudio(_ context.Context, userID, id uuid.UUID, dataURI string, audioURL *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.meditations {
		m := &s.meditations[i]
		if m.ID != id || m.UserID != userID {
			continue
		}
		uri := dataURI
		m.AudioDataURI = &uri
		if audioURL != nil {
			u := *audioURL
			m.AudioURL = &u
		}
		return nil
	}
	return store.ErrNotFound
}

func (s *Store) ListMeditations(_ context.Context, userID uuid.UUID, limit int) ([]models.Meditation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Meditation
	for _, m := range s.meditations {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, 0), nil
}

func (s *Store) UpsertGoal(_ context.Context, g *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if existing, ok := s.goals[g.UserID]; ok {
		g.ID = existing.ID
		g.CreatedAt = existing.CreatedAt
	} else {
		g.ID = uuid.New()
		g.CreatedAt = now
	}
	g.Progress = 0
	g.UpdatedAt = now
	s.goals[g.UserID] = *g
	return nil
}

func (s *Store) GetGoal(_ context.Context, userID uuid.UUID) (*models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.goals[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &g, nil
}

func (s *Store) UpdateGoalProgress(_ context.Context, userID uuid.UUID, progress float64) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	g.Progress = progress
	g.UpdatedAt = s.now().UTC()
	s.goals[userID] = g
	return &g, nil
}

func (s *Store) CreateFriendship(_ context.Context, f *models.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.friendships {
		if existing.UserID == f.UserID && existing.FriendID == f.FriendID {
			return store.ErrConflict
		}
	}
	f.ID = uuid.New()
	f.CreatedAt = s.now().UTC()
	s.friendships = append(s.friendships, *f)
	return nil
}

func (s *Store) FriendshipExists(_ context.Context, a, b uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.friendships {
		if (f.UserID == a && f.FriendID == b) || (f.UserID == b && f.FriendID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListFriends(_ context.Context, userID uuid.UUID) ([]models.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Friend
	for _, f := range s.friendships {
		var other uuid.UUID
		switch userID {
		case f.UserID:
			other = f.FriendID
		case f.FriendID:
			other = f.UserID
		default:
			continue
		}
		u := s.users[other]
		out = append(out, models.Friend{
			FriendshipID: f.ID,
			UserID:       other,
			Name:         displayName(u),
			Email:        u.Email,
			Status:       f.Status,
			CreatedAt:    f.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func displayName(u models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
