package learning

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

type fakeSampler struct {
	words []dal.Word
	err   error
}

func (f *fakeSampler) SampleWords(_ context.Context, filter dal.SampleFilter) ([]dal.Word, error) {
	if f.err != nil {
		return nil, f.err
	}

	seen := make(map[string]bool)
	res := make([]dal.Word, 0, filter.Limit)
	for _, w := range f.words {
		if filter.Difficulty != "" && w.Difficulty != filter.Difficulty {
			continue
		}
		if filter.ExcludeWordID != 0 && w.ID == filter.ExcludeWordID {
			continue
		}
		if filter.ExcludeTranslation != "" && w.Translation == filter.ExcludeTranslation {
			continue
		}
		if filter.DistinctTranslation {
			if seen[w.Translation] {
				continue
			}
			seen[w.Translation] = true
		}
		res = append(res, w)
		if uint64(len(res)) == filter.Limit {
			break
		}
	}
	return res, nil
}

func poolOf(translations ...string) []dal.Word {
	words := make([]dal.Word, len(translations))
	for i, tr := range translations {
		words[i] = dal.Word{
			ID:          int64(i + 1),
			Text:        tr + "-text",
			Translation: tr,
			Difficulty:  dal.DifficultyBeginner,
		}
	}
	return words
}

func newTestGenerator(words []dal.Word, seed int64) *QuizGenerator {
	return NewQuizGeneratorWithRand(
		&fakeSampler{words: words},
		rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test source
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestQuizGenerator_Generate_PoolOfFour(t *testing.T) {
	gen := newTestGenerator(poolOf("cat", "dog", "bird", "fish"), 1)

	for seed := int64(0); seed < 20; seed++ {
		gen.rnd = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic test source

		question, err := gen.Generate(context.Background(), dal.DifficultyBeginner)
		require.NoError(t, err)

		assert.Len(t, question.Choices, 4)
		assert.Equal(t, question.Word.Translation, question.Choices[question.CorrectIndex])
		assert.Equal(t, question.Word.ID, question.TargetWordID)

		seen := make(map[string]bool)
		for _, choice := range question.Choices {
			assert.False(t, seen[choice], "choices must be pairwise distinct")
			seen[choice] = true
		}
	}
}

func TestQuizGenerator_Generate_PoolOfThree(t *testing.T) {
	gen := newTestGenerator(poolOf("cat", "dog", "bird"), 1)

	_, err := gen.Generate(context.Background(), dal.DifficultyBeginner)
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestQuizGenerator_Generate_EmptyPool(t *testing.T) {
	gen := newTestGenerator(nil, 1)

	_, err := gen.Generate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestQuizGenerator_Generate_DuplicateTranslationsShrinkPool(t *testing.T) {
	// four words, but only three distinct translations
	words := poolOf("cat", "dog", "bird")
	words = append(words, dal.Word{ID: 4, Text: "kitty", Translation: "cat", Difficulty: dal.DifficultyBeginner})
	gen := newTestGenerator(words, 1)

	_, err := gen.Generate(context.Background(), dal.DifficultyBeginner)
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestQuizGenerator_Generate_FiltersDifficulty(t *testing.T) {
	words := poolOf("cat", "dog", "bird", "fish")
	words = append(words, dal.Word{ID: 99, Text: "ubiquitous", Translation: "everywhere", Difficulty: dal.DifficultyAdvanced})
	gen := newTestGenerator(words, 3)

	question, err := gen.Generate(context.Background(), dal.DifficultyBeginner)
	require.NoError(t, err)

	assert.Equal(t, dal.DifficultyBeginner, question.Word.Difficulty)
	assert.NotContains(t, question.Choices, "everywhere")
}

func TestQuizGenerator_Generate_StoreError(t *testing.T) {
	storeErr := errors.New("store unavailable")
	gen := NewQuizGeneratorWithRand(
		&fakeSampler{err: storeErr},
		rand.New(rand.NewSource(1)), //nolint:gosec // deterministic test source
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	_, err := gen.Generate(context.Background(), "")
	assert.ErrorIs(t, err, storeErr)
}
