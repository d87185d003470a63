package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
	"github.com/vodexapp/vodex-backend/internal/service/gym"
)

// gymService defines the minimal interface needed by GymHandler.
type gymService interface {
	GenerateSession(ctx context.Context, input gym.GenerateSessionInput) (*gym.GenerateSessionOutput, error)
	SubmitResult(ctx context.Context, input gym.SubmitResultInput) (*gym.SubmitResultOutput, error)
	CompleteSession(ctx context.Context, input gym.CompleteSessionInput) (*domain.SessionSummary, error)
	SessionResults(ctx context.Context, sessionID uuid.UUID) ([]*domain.PracticeResult, error)
	GetGymStats(ctx context.Context, spaceID uuid.UUID) (*domain.GymStats, error)
	GetDueCount(ctx context.Context, spaceID uuid.UUID) (int, error)
	TrackWord(ctx context.Context, input gym.TrackWordInput) (*domain.Card, error)
}

// GymHandler serves practice REST endpoints.
type GymHandler struct {
	svc gymService
	log *slog.Logger
}

// NewGymHandler creates a GymHandler.
func NewGymHandler(svc gymService, logger *slog.Logger) *GymHandler {
	return &GymHandler{svc: svc, log: logger.With("handler", "gym")}
}

type generateSessionRequest struct {
	SpaceID     uuid.UUID `json:"spaceId"`
	TargetCount int       `json:"targetCount"`
}

type exerciseResponse struct {
	VocabID      string   `json:"vocabId"`
	Word         string   `json:"word"`
	Translation  string   `json:"translation"`
	Example      string   `json:"example,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	AudioURL     string   `json:"audioUrl,omitempty"`
	PracticeType string   `json:"practiceType"`
	Prompt       string   `json:"prompt"`
	Answer       string   `json:"answer"`
	Hints        []string `json:"hints,omitempty"`
	Order        int      `json:"order"`
}

type sessionResponse struct {
	SessionID                string             `json:"sessionId"`
	SpaceID                  string             `json:"spaceId"`
	TargetCount              int                `json:"targetCount"`
	StartedAt                time.Time          `json:"startedAt"`
	EstimatedDurationMinutes int                `json:"estimatedDurationMinutes"`
	Exercises                []exerciseResponse `json:"exercises"`
}

// GenerateSession handles POST /gym/sessions.
func (h *GymHandler) GenerateSession(w http.ResponseWriter, r *http.Request) {
	var req generateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.GenerateSession(r.Context(), gym.GenerateSessionInput{
		SpaceID:     req.SpaceID,
		TargetCount: req.TargetCount,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	exercises := make([]exerciseResponse, 0, len(out.Exercises))
	for _, ex := range out.Exercises {
		exercises = append(exercises, exerciseResponse{
			VocabID:      ex.VocabID.String(),
			Word:         ex.Word,
			Translation:  ex.Translation,
			Example:      ex.Example,
			ImageURL:     ex.ImageURL,
			AudioURL:     ex.AudioURL,
			PracticeType: ex.PracticeType.String(),
			Prompt:       ex.Prompt,
			Answer:       ex.Answer,
			Hints:        ex.Hints,
			Order:        ex.Order,
		})
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID:                out.Session.ID.String(),
		SpaceID:                  out.Session.SpaceID.String(),
		TargetCount:              out.Session.TargetCount,
		StartedAt:                out.Session.StartedAt,
		EstimatedDurationMinutes: out.EstimatedDurationMinutes,
		Exercises:                exercises,
	})
}

type submitResultRequest struct {
	SpaceID        uuid.UUID `json:"spaceId"`
	VocabID        uuid.UUID `json:"vocabId"`
	PracticeType   string    `json:"practiceType"`
	Grade          int       `json:"grade"`
	Order          int       `json:"order"`
	UserAnswer     string    `json:"userAnswer"`
	CorrectAnswer  string    `json:"correctAnswer"`
	ResponseTimeMs *int      `json:"responseTimeMs,omitempty"`
}

type cardResponse struct {
	VocabID          string    `json:"vocabId"`
	State            string    `json:"state"`
	Stability        float64   `json:"stability"`
	Difficulty       float64   `json:"difficulty"`
	Due              time.Time `json:"due"`
	Reps             int       `json:"reps"`
	Lapses           int       `json:"lapses"`
	XP               int       `json:"xp"`
	UnlockedTypes    []string  `json:"unlockedTypes"`
	LastPracticeType *string   `json:"lastPracticeType,omitempty"`
}

type submitResultResponse struct {
	Card          cardResponse `json:"card"`
	XPGained      int          `json:"xpGained"`
	NewlyUnlocked []string     `json:"newlyUnlocked"`
	NextDue       time.Time    `json:"nextDue"`
}

// SubmitResult handles POST /gym/sessions/{id}/results.
func (h *GymHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var req submitResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.SubmitResult(r.Context(), gym.SubmitResultInput{
		SessionID:     sessionID,
		SpaceID:       req.SpaceID,
		VocabID:       req.VocabID,
		PracticeType:  domain.PracticeType(req.PracticeType),
		Grade:         domain.Grade(req.Grade),
		Order:         req.Order,
		UserAnswer:    req.UserAnswer,
		CorrectAnswer: req.CorrectAnswer,
		ResponseMs:    req.ResponseTimeMs,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResultResponse{
		Card:          toCardResponse(out.Card),
		XPGained:      out.XPGained,
		NewlyUnlocked: typesToStrings(out.NewlyUnlocked),
		NextDue:       out.NextDue,
	})
}

type sessionSummaryResponse struct {
	SessionID          string         `json:"sessionId"`
	CompletedCount     int            `json:"completedCount"`
	TotalXP            int            `json:"totalXp"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
	AvgResponseTimeMs  float64        `json:"avgResponseTimeMs"`
	FinishedAt         time.Time      `json:"finishedAt"`
}

// CompleteSession handles POST /gym/sessions/{id}/complete.
func (h *GymHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	summary, err := h.svc.CompleteSession(r.Context(), gym.CompleteSessionInput{SessionID: sessionID})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionSummaryResponse{
		SessionID:      summary.SessionID.String(),
		CompletedCount: summary.CompletedCount,
		TotalXP:        summary.TotalXP,
		RatingDistribution: map[string]int{
			"again": summary.RatingDistribution.Again,
			"hard":  summary.RatingDistribution.Hard,
			"good":  summary.RatingDistribution.Good,
			"easy":  summary.RatingDistribution.Easy,
		},
		AvgResponseTimeMs: summary.AvgResponseTimeMs,
		FinishedAt:        summary.FinishedAt,
	})
}

type practiceResultResponse struct {
	VocabID        string    `json:"vocabId"`
	PracticeType   string    `json:"practiceType"`
	Grade          int       `json:"grade"`
	UserAnswer     string    `json:"userAnswer"`
	CorrectAnswer  string    `json:"correctAnswer"`
	ResponseTimeMs int       `json:"responseTimeMs"`
	XPGained       int       `json:"xpGained"`
	Order          int       `json:"order"`
	AnsweredAt     time.Time `json:"answeredAt"`
}

// SessionResults handles GET /gym/sessions/{id}/results.
func (h *GymHandler) SessionResults(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	results, err := h.svc.SessionResults(r.Context(), sessionID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]practiceResultResponse, 0, len(results))
	for _, res := range results {
		out = append(out, practiceResultResponse{
			VocabID:        res.VocabID.String(),
			PracticeType:   res.PracticeType.String(),
			Grade:          int(res.Grade),
			UserAnswer:     res.UserAnswer,
			CorrectAnswer:  res.CorrectAnswer,
			ResponseTimeMs: res.ResponseTimeMs,
			XPGained:       res.XPGained,
			Order:          res.Order,
			AnsweredAt:     res.AnsweredAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string][]practiceResultResponse{"results": out})
}

type gymStatsResponse struct {
	DueCount     int            `json:"dueCount"`
	TotalWords   int            `json:"totalWords"`
	TotalXP      int            `json:"totalXp"`
	StatusCounts map[string]int `json:"statusCounts"`
}

// Stats handles GET /gym/stats?spaceId=...
func (h *GymHandler) Stats(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(r.URL.Query().Get("spaceId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid space id")
		return
	}

	stats, err := h.svc.GetGymStats(r.Context(), spaceID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, gymStatsResponse{
		DueCount:   stats.DueCount,
		TotalWords: stats.TotalWords,
		TotalXP:    stats.TotalXP,
		StatusCounts: map[string]int{
			"new":        stats.StatusCounts.New,
			"learning":   stats.StatusCounts.Learning,
			"review":     stats.StatusCounts.Review,
			"relearning": stats.StatusCounts.Relearning,
		},
	})
}

// DueCount handles GET /gym/due?spaceId=...
func (h *GymHandler) DueCount(w http.ResponseWriter, r *http.Request) {
	spaceID, err := uuid.Parse(r.URL.Query().Get("spaceId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid space id")
		return
	}

	count, err := h.svc.GetDueCount(r.Context(), spaceID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"dueCount": count})
}

type trackWordRequest struct {
	SpaceID uuid.UUID `json:"spaceId"`
	VocabID uuid.UUID `json:"vocabId"`
}

// TrackWord handles POST /gym/words.
func (h *GymHandler) TrackWord(w http.ResponseWriter, r *http.Request) {
	var req trackWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	card, err := h.svc.TrackWord(r.Context(), gym.TrackWordInput{
		SpaceID: req.SpaceID,
		VocabID: req.VocabID,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCardResponse(card))
}

func (h *GymHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNothingDue):
		writeError(w, http.StatusNotFound, "nothing due")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func toCardResponse(card *domain.Card) cardResponse {
	var lastType *string
	if card.LastPracticeType != nil {
		s := card.LastPracticeType.String()
		lastType = &s
	}
	return cardResponse{
		VocabID:          card.VocabID.String(),
		State:            card.State.String(),
		Stability:        card.Stability,
		Difficulty:       card.Difficulty,
		Due:              card.Due,
		Reps:             card.Reps,
		Lapses:           card.Lapses,
		XP:               card.XP,
		UnlockedTypes:    typesToStrings(card.UnlockedTypes),
		LastPracticeType: lastType,
	}
}

func typesToStrings(types []domain.PracticeType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, t.String())
	}
	return out
}
