package api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/o-kovalenko/vocab-trainer/internal/learning"
)

type (
	RecordProgressRequest struct {
		WordID    int64 `json:"word_id" validate:"required,min=1"`
		KnowsWord bool  `json:"knows_word"`
	}

	ResetProgressRequest struct {
		WordID int64 `json:"word_id" validate:"required,min=1"`
	}

	ProgressHandler struct {
		tracker *learning.ProgressTracker
		log     *slog.Logger
	}
)

func NewProgressHandler(tracker *learning.ProgressTracker, log *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		tracker: tracker,
		log:     log,
	}
}

func (h *ProgressHandler) RecordAnswer(c echo.Context) error {
	var req RecordProgressRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	record, err := h.tracker.RecordAnswer(c.Request().Context(), req.WordID, req.KnowsWord)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to record answer", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"word_id":         record.WordID,
		"attempts":        record.Attempts,
		"correct_answers": record.CorrectAnswers,
		"mastery_level":   record.MasteryLevel,
	})
}

func (h *ProgressHandler) Stats(c echo.Context) error {
	stats, err := h.tracker.Stats(c.Request().Context())
	if err != nil {
		// store failures degrade to zero counts
		h.log.ErrorContext(c.Request().Context(), "failed to get progress stats", "error", err)
		stats = &learning.ProgressSummary{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_words_studied": stats.TotalWordsStudied,
		"words_learned":       stats.WordsLearned,
		"mastered_words":      stats.MasteredWords,
		"success_rate":        stats.SuccessRate,
	})
}

func (h *ProgressHandler) Reset(c echo.Context) error {
	var req ResetProgressRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	if err := h.tracker.Reset(c.Request().Context(), req.WordID); err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to reset progress", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "message": "progress reset"})
}
