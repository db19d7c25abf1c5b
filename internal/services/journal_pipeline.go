package services

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AnshRaj112/evolve-backend/internal/models"
	"github.com/AnshRaj112/evolve-backend/internal/store"
	"github.com/AnshRaj112/evolve-backend/internal/wellbeing"
)

// Warnings attached to a submission whose secondary writes failed.
const (
	WarnAffirmationNotSaved = "affirmation_not_saved"
	WarnMeditationNotSaved  = "meditation_not_saved"
	WarnGoalNotSaved        = "goal_not_saved"
	WarnAudioNotSaved       = "audio_not_saved"
	WarnAudioUnavailable    = "audio_unavailable"
	WarnAudioNotArchived    = "audio_not_archived"
	WarnWeeklyCheckFailed   = "weekly_check_failed"
)

// supportAlertTimeout bounds a support alert dispatched after the response.
const supportAlertTimeout = 30 * time.Second

// SubmissionResult is everything produced for one journal entry. Affirmation,
// Meditation and Goal carry a zero ID when their write failed.
type SubmissionResult struct {
	JournalEntry   models.JournalEntry         `json:"journal_entry"`
	Sentiment      models.SentimentResult      `json:"sentiment"`
	Affirmation    models.Affirmation          `json:"affirmation"`
	Meditation     models.Meditation           `json:"meditation"`
	Goal           models.Goal                 `json:"goal"`
	Suggestion     models.SocialSuggestion     `json:"suggestion"`
	AudioAvailable bool                        `json:"audio_available"`
	WeeklyCheck    *models.WeeklySummary       `json:"weekly_check,omitempty"`
	Warnings       []string                    `json:"warnings,omitempty"`
	Sources        map[string]wellbeing.Source `json:"sources"`
}

// JournalPipelineDeps wires the pipeline. Notifier, Archive and Insights are optional.
type JournalPipelineDeps struct {
	Store    store.Store
	Suite    *wellbeing.Suite
	Notifier Notifier
	Archive  AudioArchive
	Insights InsightsCache
	Logger   *zap.Logger
}

// JournalPipeline turns a journal submission into an entry plus its
// affirmation, meditation (with audio), goal and weekly check.
type JournalPipeline struct {
	store    store.Store
	suite    *wellbeing.Suite
	notifier Notifier
	archive  AudioArchive
	insights InsightsCache
	logger   *zap.Logger

	alerts sync.WaitGroup
}

func NewJournalPipeline(deps JournalPipelineDeps) *JournalPipeline {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalPipeline{
		store:    deps.Store,
		suite:    deps.Suite,
		notifier: deps.Notifier,
		archive:  deps.Archive,
		insights: deps.Insights,
		logger:   logger.Named("journal"),
	}
}

// Wait blocks until every support alert started by Submit has finished.
func (p *JournalPipeline) Wait() {
	p.alerts.Wait()
}

// ValidateJournalContent enforces 1..MaxJournalContentLength characters with
// at least one non-space.
func ValidateJournalContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Message: "Journal content is required"}
	}
	if utf8.RuneCountInString(content) > models.MaxJournalContentLength {
		return &ValidationError{Field: "content", Message: "Journal content must be at most 5000 characters"}
	}
	return nil
}

// submission collects results from the concurrent branches.
type submission struct {
	mu     sync.Mutex
	result SubmissionResult
}

func (s *submission) warn(w string) {
	s.mu.Lock()
	s.result.Warnings = append(s.result.Warnings, w)
	s.mu.Unlock()
}

func (s *submission) source(op string, src wellbeing.Source) {
	s.mu.Lock()
	s.result.Sources[op] = src
	s.mu.Unlock()
}

// Submit runs the whole flow. Only validation and the journal entry insert
// can fail it; every later problem is logged and reported as a warning.
func (p *JournalPipeline) Submit(ctx context.Context, userID uuid.UUID, content string) (*SubmissionResult, error) {
	if err := ValidateJournalContent(content); err != nil {
		return nil, err
	}
	log := p.logger.With(zap.String("user_id", userID.String()))

	sub := &submission{result: SubmissionResult{Sources: map[string]wellbeing.Source{}}}

	analysis := p.suite.Sentiment.Analyze(ctx, content)
	sub.source("sentiment", analysis.Source)
	sentiment := analysis.Value
	sub.result.Sentiment = sentiment

	entry := models.JournalEntry{
		UserID:       userID,
		Content:      content,
		Sentiment:    sentiment.Sentiment,
		MoodKeywords: sentiment.MoodKeywords,
	}
	if err := p.store.CreateJournalEntry(ctx, &entry); err != nil {
		log.Error("failed to save journal entry", zap.Error(err))
		return nil, &PersistenceError{Op: "create journal entry", Err: err}
	}
	sub.result.JournalEntry = entry

	if p.insights != nil {
		if err := p.insights.Invalidate(ctx, userID); err != nil {
			log.Warn("failed to invalidate weekly insights cache", zap.Error(err))
		}
	}

	mood := wellbeing.MoodInput{Sentiment: sentiment.Sentiment, MoodKeywords: sentiment.MoodKeywords}
	recommendation := p.suite.Meditations.Recommend(ctx, mood)
	sub.source("meditation", recommendation.Source)

	var g errgroup.Group
	g.Go(func() error {
		p.enrich(ctx, log, sub, userID, mood)
		return nil
	})
	g.Go(func() error {
		p.voiceMeditation(ctx, log, sub, userID, recommendation.Value)
		return nil
	})
	g.Go(func() error {
		p.checkWeek(ctx, log, sub, userID)
		return nil
	})
	_ = g.Wait()

	return &sub.result, nil
}

// enrich generates the affirmation and social suggestion concurrently, then
// saves the affirmation and the goal.
func (p *JournalPipeline) enrich(ctx context.Context, log *zap.Logger, sub *submission, userID uuid.UUID, mood wellbeing.MoodInput) {
	var (
		affirmation wellbeing.Outcome[string]
		suggestion  wellbeing.Outcome[models.SocialSuggestion]
		g           errgroup.Group
	)
	g.Go(func() error {
		affirmation = p.suite.Affirmations.Generate(ctx, affirmationMood(mood))
		return nil
	})
	g.Go(func() error {
		suggestion = p.suite.Social.Suggest(ctx, mood)
		return nil
	})
	_ = g.Wait()
	sub.source("affirmation", affirmation.Source)
	sub.source("social", suggestion.Source)

	aff := models.Affirmation{UserID: userID, Content: affirmation.Value}
	if err := p.store.CreateAffirmation(ctx, &aff); err != nil {
		log.Error("failed to save affirmation", zap.Error(err))
		sub.warn(WarnAffirmationNotSaved)
	}

	goal := models.Goal{
		UserID:      userID,
		Title:       suggestion.Value.Title,
		Description: suggestion.Value.Description,
		Target:      models.DefaultGoalTarget,
	}
	if err := p.store.UpsertGoal(ctx, &goal); err != nil {
		log.Error("failed to save goal", zap.Error(err))
		sub.warn(WarnGoalNotSaved)
	}

	sub.mu.Lock()
	sub.result.Affirmation = aff
	sub.result.Suggestion = suggestion.Value
	sub.result.Goal = goal
	sub.mu.Unlock()
}

// voiceMeditation saves the meditation without audio, synthesizes it and
// attaches the audio to the saved record.
func (p *JournalPipeline) voiceMeditation(ctx context.Context, log *zap.Logger, sub *submission, userID uuid.UUID, text string) {
	med := models.Meditation{UserID: userID, Content: text}
	saved := true
	if err := p.store.CreateMeditation(ctx, &med); err != nil {
		log.Error("failed to save meditation", zap.Error(err))
		sub.warn(WarnMeditationNotSaved)
		saved = false
	}

	audio := p.suite.Audio.Synthesize(ctx, text)
	sub.source("audio", audio.Source)

	available := !audio.Value.Placeholder
	if !available {
		sub.warn(WarnAudioUnavailable)
	} else {
		dataURI := audio.Value.DataURI
		med.AudioDataURI = &dataURI

		if saved && p.archive != nil {
			url, err := p.archive.ArchiveMeditationAudio(ctx, userID, med.ID, audio.Value.WAV)
			if err != nil {
				log.Warn("failed to archive meditation audio", zap.Error(err))
				sub.warn(WarnAudioNotArchived)
			} else {
				med.AudioURL = &url
			}
		}

		if saved {
			if err := p.store.UpdateMeditationAudio(ctx, userID, med.ID, dataURI, med.AudioURL); err != nil {
				log.Error("failed to save meditation audio", zap.Error(err))
				sub.warn(WarnAudioNotSaved)
			}
		}
	}

	sub.mu.Lock()
	sub.result.Meditation = med
	sub.result.AudioAvailable = available
	sub.mu.Unlock()
}

// checkWeek looks at the latest entries, including the one just saved, and
// alerts friends in the background after a bad week.
func (p *JournalPipeline) checkWeek(ctx context.Context, log *zap.Logger, sub *submission, userID uuid.UUID) {
	entries, err := p.store.ListJournalEntries(ctx, userID, wellbeing.WeeklyWindow, 0)
	if err != nil {
		log.Error("failed to load recent entries", zap.Error(err))
		sub.warn(WarnWeeklyCheckFailed)
		return
	}
	if len(entries) < wellbeing.MinWeeklyEntries {
		return
	}

	week := p.suite.Weekly.AnalyzeWeek(ctx, WeekEntries(entries))
	sub.source("weekly", week.Source)
	summary := week.Value

	sub.mu.Lock()
	sub.result.WeeklyCheck = &summary
	sub.mu.Unlock()

	if !summary.IsBadWeek || p.notifier == nil {
		return
	}

	// The alert outlives the request; Submit does not wait for it.
	alertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), supportAlertTimeout)
	p.alerts.Add(1)
	go func() {
		defer p.alerts.Done()
		defer cancel()
		if err := p.notifier.NotifyBadWeek(alertCtx, userID, summary); err != nil {
			log.Error("failed to send support alerts", zap.Error(err))
		}
	}()
}

// affirmationMood is the mood text used to pick an affirmation: the keywords
// joined by ", ", or the bare sentiment when there are none.
func affirmationMood(mood wellbeing.MoodInput) string {
	if len(mood.MoodKeywords) > 0 {
		return strings.Join(mood.MoodKeywords, ", ")
	}
	return mood.Sentiment
}

// WeekEntries converts stored entries into analyzer input.
func WeekEntries(entries []models.JournalEntry) []models.WeekEntry {
	week := make([]models.WeekEntry, len(entries))
	for i, e := range entries {
		week[i] = models.WeekEntry{Date: e.CreatedAt, Content: e.Content, Sentiment: e.Sentiment}
	}
	return week
}
