package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AnshRaj112/evolve-backend/internal/ai"
	"github.com/AnshRaj112/evolve-backend/internal/ai/aitest"
	"github.com/AnshRaj112/evolve-backend/internal/handlers"
	"github.com/AnshRaj112/evolve-backend/internal/middleware"
	"github.com/AnshRaj112/evolve-backend/internal/services"
	"github.com/AnshRaj112/evolve-backend/internal/store/memory"
	"github.com/AnshRaj112/evolve-backend/internal/wellbeing"
)

type testServer struct {
	t        *testing.T
	handler  http.Handler
	store    *memory.Store
	notes    *services.MemoryNotifications
	pipeline *services.JournalPipeline
}

func newTestServer(t *testing.T, limiter middleware.SubmissionLimiter) *testServer {
	return newTestServerWith(t, aitest.Failing(errors.New("offline")), limiter)
}

func newTestServerWith(t *testing.T, provider *aitest.Provider, limiter middleware.SubmissionLimiter) *testServer {
	t.Helper()
	logger := zap.NewNop()
	st := memory.New()
	sessions := services.NewMemorySessions()
	notes := services.NewMemoryNotifications()
	insights := services.NewMemoryInsightsCache(time.Hour)
	hub := services.NewNotificationHub(nil, logger)
	suite := wellbeing.NewSuite(provider, wellbeing.Options{Logger: logger})
	pipeline := services.NewJournalPipeline(services.JournalPipelineDeps{
		Store:    st,
		Suite:    suite,
		Notifier: services.NewSupportAlerts(st, notes, hub, logger),
		Insights: insights,
		Logger:   logger,
	})

	handlers.Init(handlers.Dependencies{
		Store:         st,
		Sessions:      sessions,
		Pipeline:      pipeline,
		Weekly:        suite.Weekly,
		Insights:      insights,
		Notifications: notes,
		Hub:           hub,
		Logger:        logger,
	})

	r := chi.NewRouter()
	SetupRoutes(r, Options{Sessions: sessions, SubmissionLimiter: limiter, Logger: logger})
	return &testServer{t: t, handler: r, store: st, notes: notes, pipeline: pipeline}
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var out map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func (s *testServer) signup(email string) string {
	s.t.Helper()
	rec, body := s.do("POST", "/api/auth/signup", "", map[string]string{"email": email, "password": "long enough", "full_name": strings.Split(email, "@")[0]})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return body["token"].(string)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec, _ := s.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, nil)

	rec, body := s.do("POST", "/api/auth/signup", "", map[string]string{"email": "bad", "password": "long enough"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, _ = s.do("POST", "/api/auth/signup", "", map[string]string{"email": "a@example.com", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	token := s.signup("a@example.com")

	rec, _ = s.do("POST", "/api/auth/signup", "", map[string]string{"email": "A@example.com", "password": "long enough"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = s.do("POST", "/api/auth/signin", "", map[string]string{"email": "a@example.com", "password": "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body = s.do("POST", "/api/auth/signin", "", map[string]string{"email": "A@Example.com", "password": "long enough"})
	require.Equal(t, http.StatusOK, rec.Code)
	newToken := body["token"].(string)
	assert.NotEqual(t, token, newToken)

	rec, _ = s.do("GET", "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "signing in again replaces the old session")

	rec, body = s.do("GET", "/api/auth/me", newToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "a@example.com", user["email"])
	assert.NotContains(t, user, "PasswordHash")

	rec, _ = s.do("POST", "/api/auth/signout", newToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do("GET", "/api/auth/me", newToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t, nil)
	for _, route := range []struct{ method, path string }{
		{"POST", "/api/journal"},
		{"GET", "/api/journal"},
		{"GET", "/api/affirmations"},
		{"GET", "/api/meditations"},
		{"GET", "/api/goals"},
		{"GET", "/api/friends"},
		{"GET", "/api/insights/weekly"},
		{"GET", "/api/notifications"},
		{"GET", "/ws/notifications"},
	} {
		rec, _ := s.do(route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}
}

func TestQueryTokenOnlyOpensSocket(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.signup("query@example.com")

	rec, _ := s.do("GET", "/api/journal?token="+token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A plain GET passes auth and then fails the upgrade handshake.
	rec, _ = s.do("GET", "/ws/notifications?token="+token, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJournalSubmission(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.signup("writer@example.com")

	rec, body := s.do("POST", "/api/journal", token, map[string]string{"content": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Journal content is required", body["message"])

	rec, _ = s.do("POST", "/api/journal", token, map[string]string{"content": strings.Repeat("a", 5001)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do("POST", "/api/journal", token, map[string]string{"content": "I had a terrible day"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "negative", body["sentiment"].(map[string]interface{})["sentiment"])
	assert.Equal(t, "Help Others Heal", body["goal"].(map[string]interface{})["title"])
	assert.Equal(t, false, body["audio_available"])
	assert.Contains(t, body["warnings"], services.WarnAudioUnavailable)

	rec, body = s.do("GET", "/api/journal?limit=5", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total"])
	assert.Len(t, body["entries"], 1)

	rec, body = s.do("GET", "/api/affirmations", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["affirmations"], 1)

	rec, body = s.do("GET", "/api/meditations", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	meditations := body["meditations"].([]interface{})
	require.Len(t, meditations, 1)
	assert.Nil(t, meditations[0].(map[string]interface{})["audio_data_uri"])

	rec, body = s.do("GET", "/api/goals", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 5, body["goal"].(map[string]interface{})["target"])
}

func TestJournalSubmissionRateLimit(t *testing.T) {
	s := newTestServer(t, middleware.NewKeyedLimiter(rate.Every(time.Hour), 1, 0))
	token := s.signup("fast@example.com")

	rec, _ := s.do("POST", "/api/journal", token, map[string]string{"content": "first"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = s.do("POST", "/api/journal", token, map[string]string{"content": "second"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestGoalProgress(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.signup("goal@example.com")

	rec, body := s.do("GET", "/api/goals", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, body["goal"])

	rec, _ = s.do("PUT", "/api/goals/progress", token, map[string]float64{"progress": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do("POST", "/api/journal", token, map[string]string{"content": "A wonderful walk"})
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, bad := range []float64{-1, 5.5} {
		rec, _ = s.do("PUT", "/api/goals/progress", token, map[string]float64{"progress": bad})
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
	rec, _ = s.do("PUT", "/api/goals/progress", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do("PUT", "/api/goals/progress", token, map[string]float64{"progress": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, body["goal"].(map[string]interface{})["progress"])
}

func TestRecordsCreate(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.signup("records@example.com")

	rec, _ := s.do("POST", "/api/affirmations", token, map[string]string{"content": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = s.do("POST", "/api/affirmations", token, map[string]string{"content": "I am enough."})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = s.do("POST", "/api/meditations", token, map[string]string{"content": "Breathe.", "audioDataUri": "https://example.com/a.wav"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, body := s.do("POST", "/api/meditations", token, map[string]string{"content": "Breathe.", "audioDataUri": "data:audio/wav;base64,AAAA"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "data:audio/wav;base64,AAAA", body["meditation"].(map[string]interface{})["audio_data_uri"])
}

func TestCreateMeditationAcceptsLongClip(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.signup("audio@example.com")

	// Five seconds of 24kHz mono 16-bit audio.
	wav, err := ai.EncodeWAV(&ai.Speech{PCM: make([]byte, 5*24000*2), SampleRate: 24000, Channels: 1, BitDepth: 16})
	require.NoError(t, err)
	clip := ai.WAVDataURI(wav)
	require.Greater(t, len(clip), 64*1024)

	rec, body := s.do("POST", "/api/meditations", token, map[string]string{"content": "Breathe.", "audioDataUri": clip})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, clip, body["meditation"].(map[string]interface{})["audio_data_uri"])

	rec, _ = s.do("POST", "/api/affirmations", token, map[string]string{"content": clip})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "other routes keep the small body limit")
}

func TestFriends(t *testing.T) {
	s := newTestServer(t, nil)
	alice := s.signup("alice@example.com")
	bob := s.signup("bob@example.com")

	rec, _ := s.do("POST", "/api/friends", alice, map[string]string{"friendEmail": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do("POST", "/api/friends", alice, map[string]string{"friendEmail": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do("POST", "/api/friends", alice, map[string]string{"friendEmail": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := s.do("POST", "/api/friends", alice, map[string]string{"friendEmail": "Bob@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "pending", body["friendship"].(map[string]interface{})["status"])

	rec, _ = s.do("POST", "/api/friends", bob, map[string]string{"friendEmail": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "the reverse direction already exists")

	rec, body = s.do("GET", "/api/friends", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	friends := body["friends"].([]interface{})
	require.Len(t, friends, 1)
	assert.Equal(t, "alice", friends[0].(map[string]interface{})["name"])
}

func TestWeeklyInsightsAndAlerts(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.signup("week@example.com")

	rec, body := s.do("GET", "/api/insights/weekly", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handlers.InsightsStatusInsufficientData, body["status"])
	assert.EqualValues(t, 0, body["entries"])

	var last map[string]interface{}
	for i := 0; i < 4; i++ {
		rec, last = s.do("POST", "/api/journal", token, map[string]string{"content": "Another terrible, sad day"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	weekly := last["weekly_check"].(map[string]interface{})
	assert.Equal(t, true, weekly["is_bad_week"])

	rec, body = s.do("GET", "/api/insights/weekly", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handlers.InsightsStatusOK, body["status"])
	trend := body["trend"].(map[string]interface{})
	assert.Equal(t, "challenging", trend["overall_trend"])
	assert.Equal(t, true, trend["needs_support"])
	assert.Equal(t, "fallback", body["source"])

	rec, body = s.do("GET", "/api/insights/weekly", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["cached"], "fallback reports are not cached")

	s.pipeline.Wait()

	rec, body = s.do("GET", "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notes := body["notifications"].([]interface{})
	require.NotEmpty(t, notes)
	assert.Equal(t, "self_check_in", notes[0].(map[string]interface{})["kind"])
}

func TestWeeklyInsightsCache(t *testing.T) {
	provider := &aitest.Provider{Responses: map[string]string{
		"weekly_trend": `{"overallTrend":"Challenging","insights":["Evenings are hardest."],"recommendations":["Take a short walk after work."],"needsSupport":true}`,
	}}
	s := newTestServerWith(t, provider, nil)
	token := s.signup("cache@example.com")

	for i := 0; i < 4; i++ {
		rec, _ := s.do("POST", "/api/journal", token, map[string]string{"content": "Another sad day"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	s.pipeline.Wait()

	rec, body := s.do("GET", "/api/insights/weekly", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["cached"])
	assert.Equal(t, "ai", body["source"])
	assert.Equal(t, 1, provider.Calls("weekly_trend"))

	rec, body = s.do("GET", "/api/insights/weekly", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["cached"])
	assert.EqualValues(t, 4, body["entries"])
	assert.Equal(t, "ai", body["source"])
	assert.Equal(t, "challenging", body["trend"].(map[string]interface{})["overall_trend"])
	assert.Equal(t, 1, provider.Calls("weekly_trend"))

	rec, _ = s.do("POST", "/api/journal", token, map[string]string{"content": "Still sad"})
	require.Equal(t, http.StatusCreated, rec.Code)
	s.pipeline.Wait()

	rec, body = s.do("GET", "/api/insights/weekly", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["cached"], "a new entry invalidates the report")
	assert.EqualValues(t, 5, body["entries"])
	assert.Equal(t, 2, provider.Calls("weekly_trend"))
}
