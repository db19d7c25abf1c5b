package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/AnshRaj112/evolve-backend/internal/middleware"
	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/services"
	"github.com/AnshRaj112/evolve-backend/internal/wellbeing"
)

const (
	InsightsStatusOK               = "ok"
	InsightsStatusInsufficientData = "insufficient_data"
)

type WeeklyInsightsResponse struct {
	Success  bool                `json:"success"`
	Status   string              `json:"status"`
	Entries  int                 `json:"entries"`
	Required int                 `json:"required"`
	Trend    *models.WeeklyTrend `json:"trend,omitempty"`
	Source   wellbeing.Source    `json:"source,omitempty"`
	Cached   bool                `json:"cached"`
}

// GetWeeklyInsights analyzes the caller's last seven entries. Model-produced
// reports are cached until the next submission; fallback reports are not.
func GetWeeklyInsights(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	log := deps.Logger.With(zap.String("user_id", userID.String()))

	if deps.Insights != nil {
		cached, ok, err := deps.Insights.GetInsights(r.Context(), userID)
		if err != nil {
			log.Warn("weekly insights cache read failed", zap.Error(err))
		}
		if ok {
			writeJSON(w, http.StatusOK, WeeklyInsightsResponse{
				Success:  true,
				Status:   InsightsStatusOK,
				Entries:  cached.Entries,
				Required: wellbeing.MinWeeklyEntries,
				Trend:    &cached.Trend,
				Source:   cached.Source,
				Cached:   true,
			})
			return
		}
	}

	entries, err := deps.Store.ListJournalEntries(r.Context(), userID, wellbeing.WeeklyWindow, 0)
	if err != nil {
		writeServiceError(w, err, "Failed to load weekly insights")
		return
	}
	if len(entries) < wellbeing.MinWeeklyEntries {
		writeJSON(w, http.StatusOK, WeeklyInsightsResponse{
			Success:  true,
			Status:   InsightsStatusInsufficientData,
			Entries:  len(entries),
			Required: wellbeing.MinWeeklyEntries,
		})
		return
	}

	out := deps.Weekly.AnalyzeTrend(r.Context(), services.WeekEntries(entries))
	trend := out.Value

	if deps.Insights != nil && !out.FellBack() {
		insights := services.WeeklyInsights{Trend: trend, Entries: len(entries), Source: out.Source}
		if err := deps.Insights.SetInsights(r.Context(), userID, insights); err != nil {
			log.Warn("weekly insights cache write failed", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, WeeklyInsightsResponse{
		Success:  true,
		Status:   InsightsStatusOK,
		Entries:  len(entries),
		Required: wellbeing.MinWeeklyEntries,
		Trend:    &trend,
		Source:   out.Source,
	})
}
