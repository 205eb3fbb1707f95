package api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

type (
	Word struct {
		ID                 int64  `json:"id"`
		Text               string `json:"text"`
		Translation        string `json:"translation"`
		Pronunciation      string `json:"pronunciation,omitempty"`
		PartOfSpeech       string `json:"part_of_speech,omitempty"`
		Definition         string `json:"definition,omitempty"`
		Example            string `json:"example,omitempty"`
		ExampleTranslation string `json:"example_translation,omitempty"`
		Difficulty         string `json:"difficulty"`
		Category           string `json:"category"`
		FrequencyRank      int    `json:"frequency_rank"`
	}

	WordsQueryParams struct {
		Difficulty string `query:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
		Category   string `query:"category"`
		Search     string `query:"search"`
		Offset     uint64 `query:"offset" validate:"min=0"`
		Limit      uint64 `query:"limit" validate:"omitempty,max=100"`
	}

	SampleQueryParams struct {
		Difficulty string `query:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
		Limit      uint64 `query:"limit" validate:"omitempty,max=50"`
	}

	WordsHandler struct {
		repo dal.WordsRepository
		log  *slog.Logger
	}
)

const defaultPageSize = 20

func NewWordsHandler(repo dal.WordsRepository, log *slog.Logger) *WordsHandler {
	return &WordsHandler{
		repo: repo,
		log:  log,
	}
}

func (h *WordsHandler) FindWords(c echo.Context) error {
	var qp WordsQueryParams
	if err := c.Bind(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	if qp.Limit == 0 {
		qp.Limit = defaultPageSize
	}

	filter := dal.WordsFilter{
		Difficulty: dal.Difficulty(qp.Difficulty),
		Category:   qp.Category,
		Search:     qp.Search,
		Offset:     qp.Offset,
		Limit:      qp.Limit,
	}
	words, total, err := h.repo.FindWords(c.Request().Context(), filter)
	if err != nil {
		// store failures degrade to an empty catalog page
		h.log.ErrorContext(c.Request().Context(), "failed to find words", "error", err)
		return c.JSON(http.StatusOK, echo.Map{"items": []Word{}, "total": 0})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": toViewWords(words),
		"total": total,
	})
}

func (h *WordsHandler) SampleWords(c echo.Context) error {
	var qp SampleQueryParams
	if err := c.Bind(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	if qp.Limit == 0 {
		qp.Limit = 10
	}

	words, err := h.repo.SampleWords(c.Request().Context(), dal.SampleFilter{
		Difficulty: dal.Difficulty(qp.Difficulty),
		Limit:      qp.Limit,
	})
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to sample words", "error", err)
		return c.JSON(http.StatusOK, echo.Map{"items": []Word{}})
	}

	return c.JSON(http.StatusOK, echo.Map{"items": toViewWords(words)})
}

func toViewWords(words []dal.Word) []Word {
	res := make([]Word, len(words))
	for i, w := range words {
		res[i] = Word{
			ID:                 w.ID,
			Text:               w.Text,
			Translation:        w.Translation,
			Pronunciation:      w.Pronunciation,
			PartOfSpeech:       w.PartOfSpeech,
			Definition:         w.Definition,
			Example:            w.Example,
			ExampleTranslation: w.ExampleTranslation,
			Difficulty:         string(w.Difficulty),
			Category:           w.Category,
			FrequencyRank:      w.FrequencyRank,
		}
	}
	return res
}
