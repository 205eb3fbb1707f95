package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
	"github.com/o-kovalenko/vocab-trainer/internal/learning"
)

type (
	GenerateQuizRequest struct {
		Difficulty string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	}

	StartSessionRequest struct {
		SessionType string `json:"session_type" validate:"required,oneof=flashcard quiz review"`
	}

	SubmitSessionRequest struct {
		SessionType     string `json:"session_type" validate:"omitempty,oneof=flashcard quiz review"`
		Score           int    `json:"score" validate:"min=0"`
		TotalQuestions  int    `json:"total_questions" validate:"required,min=1"`
		DurationSeconds int    `json:"duration_seconds" validate:"min=0"`
	}

	EndSessionRequest struct {
		SessionID      string `json:"session_id" validate:"required,uuid"`
		WordsStudied   int    `json:"words_studied" validate:"min=0"`
		CorrectAnswers int    `json:"correct_answers" validate:"min=0"`
		TotalQuestions int    `json:"total_questions" validate:"min=0"`
	}

	QuizAnswerRequest struct {
		SessionID        string `json:"session_id" validate:"required,uuid"`
		WordID           int64  `json:"word_id" validate:"required,min=1"`
		IsCorrect        bool   `json:"is_correct"`
		TimeTakenSeconds int    `json:"time_taken_seconds" validate:"min=0"`
	}

	QuizHandler struct {
		generator *learning.QuizGenerator
		recorder  *learning.SessionRecorder
		tracker   *learning.ProgressTracker
		streaks   *learning.StreakEngine
		log       *slog.Logger
	}
)

func NewQuizHandler(
	generator *learning.QuizGenerator,
	recorder *learning.SessionRecorder,
	tracker *learning.ProgressTracker,
	streaks *learning.StreakEngine,
	log *slog.Logger,
) *QuizHandler {
	return &QuizHandler{
		generator: generator,
		recorder:  recorder,
		tracker:   tracker,
		streaks:   streaks,
		log:       log,
	}
}

func (h *QuizHandler) Generate(c echo.Context) error {
	var req GenerateQuizRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	question, err := h.generator.Generate(c.Request().Context(), dal.Difficulty(req.Difficulty))
	if err != nil {
		if errors.Is(err, learning.ErrInsufficientPool) {
			return c.JSON(http.StatusConflict, InsufficientPoolBody)
		}
		h.log.ErrorContext(c.Request().Context(), "failed to generate quiz", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"word":           toViewWords([]dal.Word{question.Word})[0],
		"choices":        question.Choices,
		"correct_index":  question.CorrectIndex,
		"target_word_id": question.TargetWordID,
	})
}

// SubmitSession records an already completed quiz in one call and folds it
// into cumulative stats.
func (h *QuizHandler) SubmitSession(c echo.Context) error {
	var req SubmitSessionRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	sessionType := dal.SessionType(req.SessionType)
	if sessionType == "" {
		sessionType = dal.SessionQuiz
	}

	id, err := h.recorder.RecordFinished(c.Request().Context(),
		sessionType, req.TotalQuestions, req.Score, req.TotalQuestions, req.DurationSeconds)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to record session", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	stats, badges, err := h.completeSession(c, req.Score)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"session_id":  id,
		"streak_days": stats.StreakDays,
		"new_badges":  badges,
	})
}

func (h *QuizHandler) StartSession(c echo.Context) error {
	var req StartSessionRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	id, err := h.recorder.Start(c.Request().Context(), dal.SessionType(req.SessionType))
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to start session", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"session_id": id})
}

func (h *QuizHandler) EndSession(c echo.Context) error {
	var req EndSessionRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	err := h.recorder.End(c.Request().Context(), req.SessionID,
		req.WordsStudied, req.CorrectAnswers, req.TotalQuestions)
	if err != nil {
		if errors.Is(err, dal.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{"Session not found or already finished"})
		}
		h.log.ErrorContext(c.Request().Context(), "failed to end session", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	stats, badges, err := h.completeSession(c, req.CorrectAnswers)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":      "ok",
		"streak_days": stats.StreakDays,
		"new_badges":  badges,
	})
}

func (h *QuizHandler) RecordAnswer(c echo.Context) error {
	var req QuizAnswerRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	ctx := c.Request().Context()
	err := h.recorder.RecordAnswer(ctx, req.SessionID, req.WordID, req.IsCorrect, req.TimeTakenSeconds)
	if err != nil {
		if errors.Is(err, dal.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{"Session not found"})
		}
		h.log.ErrorContext(ctx, "failed to record quiz answer", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	if _, err := h.tracker.RecordAnswer(ctx, req.WordID, req.IsCorrect); err != nil {
		h.log.ErrorContext(ctx, "failed to record progress", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *QuizHandler) completeSession(c echo.Context, correctAnswers int) (*dal.UserStats, []string, error) {
	ctx := c.Request().Context()

	progress, err := h.tracker.Stats(ctx)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to get progress stats", "error", err)
		return nil, nil, err
	}

	stats, badges, err := h.streaks.CompleteSession(ctx, correctAnswers, progress.WordsLearned)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to complete session", "error", err)
		return nil, nil, err
	}

	if badges == nil {
		badges = []string{}
	}
	return stats, badges, nil
}
