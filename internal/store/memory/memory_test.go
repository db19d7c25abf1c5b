package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/store"
)

// tickingClock advances one second per call so records get distinct timestamps.
func tickingClock() func() time.Time {
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestJournalEntriesNewestFirstAndScoped(t *testing.T) {
	ctx := context.Background()
	s := New().WithClock(tickingClock())
	alice, bob := uuid.New(), uuid.New()

	for _, content := range []string{"one", "two", "three"} {
		require.NoError(t, s.CreateJournalEntry(ctx, &models.JournalEntry{UserID: alice, Content: content, Sentiment: "neutral"}))
	}
	require.NoError(t, s.CreateJournalEntry(ctx, &models.JournalEntry{UserID: bob, Content: "bob's", Sentiment: "positive"}))

	entries, err := s.ListJournalEntries(ctx, alice, 2, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "three", entries[0].Content)
	assert.Equal(t, "two", entries[1].Content)

	entries, err = s.ListJournalEntries(ctx, alice, 10, 2)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "one", entries[0].Content)

	entries, err = s.ListJournalEntries(ctx, alice, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, entries)

	n, err := s.CountJournalEntries(ctx, bob)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestJournalEntryKeywordsAreCopied(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := uuid.New()

	keywords := []string{"calm"}
	require.NoError(t, s.CreateJournalEntry(ctx, &models.JournalEntry{UserID: user, Content: "x", MoodKeywords: keywords}))
	keywords[0] = "mutated"

	entries, err := s.ListJournalEntries(ctx, user, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"calm"}, entries[0].MoodKeywords)
}

func TestUpsertGoalKeepsIDAndResetsProgress(t *testing.T) {
	ctx := context.Background()
	s := New().WithClock(tickingClock())
	user := uuid.New()

	first := &models.Goal{UserID: user, Title: "Volunteer", Description: "Local shelter", Target: models.DefaultGoalTarget}
	require.NoError(t, s.UpsertGoal(ctx, first))

	_, err := s.UpdateGoalProgress(ctx, user, 3)
	require.NoError(t, err)

	second := &models.Goal{UserID: user, Title: "Mentor", Description: "Tutor a student", Target: models.DefaultGoalTarget, Progress: 4}
	require.NoError(t, s.UpsertGoal(ctx, second))

	got, err := s.GetGoal(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, first.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Mentor", got.Title)
	assert.Zero(t, got.Progress)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestGoalNotFound(t *testing.T) {
	s := New()
	_, err := s.GetGoal(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.UpdateGoalProgress(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateMeditationAudio(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := uuid.New()

	m := &models.Meditation{UserID: user, Content: "Breathe in for four counts."}
	require.NoError(t, s.CreateMeditation(ctx, m))
	assert.Nil(t, m.AudioDataURI)

	err := s.UpdateMeditationAudio(ctx, uuid.New(), m.ID, "data:audio/wav;base64,AAAA", nil)
	assert.ErrorIs(t, err, store.ErrNotFound, "another user's meditation must not be writable")

	url := "https://res.cloudinary.com/demo/video/upload/x.wav"
	require.NoError(t, s.UpdateMeditationAudio(ctx, user, m.ID, "data:audio/wav;base64,AAAA", &url))

	list, err := s.ListMeditations(ctx, user, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].AudioDataURI)
	assert.Equal(t, "data:audio/wav;base64,AAAA", *list[0].AudioDataURI)
	require.NotNil(t, list[0].AudioURL)
	assert.Equal(t, url, *list[0].AudioURL)
}

func TestListAffirmationsLimit(t *testing.T) {
	ctx := context.Background()
	s := New().WithClock(tickingClock())
	user := uuid.New()

	for i := 0; i < 12; i++ {
		require.NoError(t, s.CreateAffirmation(ctx, &models.Affirmation{UserID: user, Content: "I am enough."}))
	}
	list, err := s.ListAffirmations(ctx, user, 10)
	require.NoError(t, err)
	assert.Len(t, list, 10)
	assert.True(t, list[0].CreatedAt.After(list[9].CreatedAt))
}

func TestUsersAndFriends(t *testing.T) {
	ctx := context.Background()
	s := New().WithClock(tickingClock())

	alice := &models.User{Email: "Alice@Example.com", FullName: "Alice"}
	bob := &models.User{Email: "bob@example.com"}
	require.NoError(t, s.CreateUser(ctx, alice))
	require.NoError(t, s.CreateUser(ctx, bob))
	assert.ErrorIs(t, s.CreateUser(ctx, &models.User{Email: "alice@example.com"}), store.ErrConflict)

	found, err := s.GetUserByEmail(ctx, " ALICE@example.com ")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	_, err = s.GetUserByEmail(ctx, "carol@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.CreateFriendship(ctx, &models.Friendship{UserID: alice.ID, FriendID: bob.ID, Status: models.FriendStatusPending}))
	assert.ErrorIs(t, s.CreateFriendship(ctx, &models.Friendship{UserID: alice.ID, FriendID: bob.ID}), store.ErrConflict)

	exists, err := s.FriendshipExists(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	friends, err := s.ListFriends(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, alice.ID, friends[0].UserID)
	assert.Equal(t, "Alice", friends[0].Name)
	assert.Equal(t, models.FriendStatusPending, friends[0].Status)

	friends, err = s.ListFriends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "bob@example.com", friends[0].Name)
}
