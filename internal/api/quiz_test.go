package api

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
	"github.com/o-kovalenko/vocab-trainer/internal/learning"
)

type fixedSampler struct {
	words []dal.Word
}

func (s *fixedSampler) SampleWords(_ context.Context, filter dal.SampleFilter) ([]dal.Word, error) {
	var out []dal.Word
	seen := map[string]bool{}
	for _, w := range s.words {
		if filter.ExcludeWordID != 0 && w.ID == filter.ExcludeWordID {
			continue
		}
		if filter.ExcludeTranslation != "" && w.Translation == filter.ExcludeTranslation {
			continue
		}
		if filter.DistinctTranslation && seen[w.Translation] {
			continue
		}
		seen[w.Translation] = true
		out = append(out, w)
		if uint64(len(out)) == filter.Limit {
			break
		}
	}
	return out, nil
}

func newQuizTestHandler(words []dal.Word) *QuizHandler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	gen := learning.NewQuizGeneratorWithRand(&fixedSampler{words: words}, rand.New(rand.NewSource(1)), log)
	return NewQuizHandler(gen, nil, nil, nil, log)
}

func TestQuizHandler_Generate(t *testing.T) {
	h := newQuizTestHandler([]dal.Word{
		{ID: 1, Text: "cat", Translation: "кіт"},
		{ID: 2, Text: "dog", Translation: "пес"},
		{ID: 3, Text: "bird", Translation: "птах"},
		{ID: 4, Text: "fish", Translation: "риба"},
	})

	c, rec := newTestContext(t, http.MethodPost, "/quiz/generate", `{"difficulty":""}`)
	require.NoError(t, h.Generate(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"choices"`)
	assert.Contains(t, rec.Body.String(), `"correct_index"`)
	assert.Contains(t, rec.Body.String(), `"target_word_id":1`)
}

func TestQuizHandler_Generate_InsufficientPool(t *testing.T) {
	h := newQuizTestHandler([]dal.Word{
		{ID: 1, Text: "cat", Translation: "кіт"},
		{ID: 2, Text: "dog", Translation: "пес"},
	})

	c, rec := newTestContext(t, http.MethodPost, "/quiz/generate", `{}`)
	require.NoError(t, h.Generate(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient word pool")
}

func TestQuizHandler_Generate_DuplicateTranslationsShrinkPool(t *testing.T) {
	h := newQuizTestHandler([]dal.Word{
		{ID: 1, Text: "cat", Translation: "кіт"},
		{ID: 2, Text: "kitty", Translation: "кіт"},
		{ID: 3, Text: "dog", Translation: "пес"},
		{ID: 4, Text: "bird", Translation: "птах"},
	})

	c, rec := newTestContext(t, http.MethodPost, "/quiz/generate", `{}`)
	require.NoError(t, h.Generate(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
