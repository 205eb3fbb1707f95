package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
	"github.com/o-kovalenko/vocab-trainer/internal/learning"
	"github.com/o-kovalenko/vocab-trainer/pkg/cache"
)

const (
	cacheKeyTotalWords = "total_words"
	cacheKeyCategories = "categories"
)

type StatsHandler struct {
	repo     dal.WordsRepository
	recorder *learning.SessionRecorder
	cache    *cache.InMemory
	cacheTTL time.Duration
	log      *slog.Logger
}

func NewStatsHandler(repo dal.WordsRepository, recorder *learning.SessionRecorder, c *cache.InMemory, cacheTTL time.Duration, log *slog.Logger) *StatsHandler {
	return &StatsHandler{
		repo:     repo,
		recorder: recorder,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func (h *StatsHandler) Overview(c echo.Context) error {
	ctx := c.Request().Context()

	totalWords := h.totalWords(c)
	categories := h.categories(c)

	quizStats, err := h.recorder.Stats(ctx)
	if err != nil {
		// store failures degrade to zero counts
		h.log.ErrorContext(ctx, "failed to get session stats", "error", err)
		quizStats = &dal.SessionStats{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_words": totalWords,
		"categories":  categories,
		"quiz_stats": echo.Map{
			"total_sessions":           quizStats.TotalSessions,
			"average_score":            quizStats.AverageScore,
			"best_score":               quizStats.BestScore,
			"average_duration_seconds": quizStats.AverageDurationSeconds,
		},
	})
}

func (h *StatsHandler) totalWords(c echo.Context) int {
	if v, ok := h.cache.Get(cacheKeyTotalWords, h.cacheTTL); ok {
		if count, err := strconv.Atoi(v); err == nil {
			return count
		}
	}

	count, err := h.repo.CountWords(c.Request().Context(), "")
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to count words", "error", err)
		return 0
	}

	h.cache.Set(cacheKeyTotalWords, strconv.Itoa(count))
	return count
}

func (h *StatsHandler) categories(c echo.Context) []string {
	if v, ok := h.cache.Get(cacheKeyCategories, h.cacheTTL); ok {
		var categories []string
		if err := json.Unmarshal([]byte(v), &categories); err == nil {
			return categories
		}
	}

	categories, err := h.repo.ListCategories(c.Request().Context())
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to list categories", "error", err)
		return []string{}
	}
	if categories == nil {
		categories = []string{}
	}

	if raw, err := json.Marshal(categories); err == nil {
		h.cache.Set(cacheKeyCategories, string(raw))
	}
	return categories
}
