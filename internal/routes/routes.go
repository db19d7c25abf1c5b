package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AnshRaj112/evolve-backend/internal/handlers"
	"github.com/AnshRaj112/evolve-backend/internal/middleware"
	"github.com/AnshRaj112/evolve-backend/internal/services"
)

// Options configures route-level middleware. AuthLimit and SubmissionLimiter
// are optional.
type Options struct {
	Sessions          services.Sessions
	SubmissionLimiter middleware.SubmissionLimiter
	AuthLimit         func(http.Handler) http.Handler
	Logger            *zap.Logger
}

// SetupRoutes registers every route on r. handlers.Init must be called first.
func SetupRoutes(r chi.Router, opts Options) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	requireAuth := middleware.RequireAuth(opts.Sessions, opts.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.AuthLimit != nil {
				r.Use(opts.AuthLimit)
			}
			r.Post("/signup", handlers.Signup)
			r.Post("/signin", handlers.Signin)
		})
		r.Post("/signout", handlers.Signout)
		r.With(requireAuth).Get("/me", handlers.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/api/journal", handlers.GetJournals)
		if opts.SubmissionLimiter != nil {
			r.With(middleware.LimitSubmissions(opts.SubmissionLimiter, opts.Logger)).Post("/api/journal", handlers.CreateJournal)
		} else {
			r.Post("/api/journal", handlers.CreateJournal)
		}

		r.Get("/api/affirmations", handlers.GetAffirmations)
		r.Post("/api/affirmations", handlers.CreateAffirmation)

		r.Get("/api/meditations", handlers.GetMeditations)
		r.Post("/api/meditations", handlers.CreateMeditation)

		r.Get("/api/goals", handlers.GetGoal)
		r.Put("/api/goals/progress", handlers.UpdateGoalProgress)

		r.Get("/api/friends", handlers.GetFriends)
		r.Post("/api/friends", handlers.AddFriend)

		r.Get("/api/insights/weekly", handlers.GetWeeklyInsights)

		r.Get("/api/notifications", handlers.GetNotifications)
	})

	r.With(middleware.RequireSocketAuth(opts.Sessions, opts.Logger)).Get("/ws/notifications", handlers.NotificationsWebSocket)
}
