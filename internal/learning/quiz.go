package learning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

const quizChoices = 4

// ErrInsufficientPool is returned when the requested difficulty bucket does
// not hold enough words with distinct translations to build a full question.
var ErrInsufficientPool = errors.New("insufficient word pool")

type (
	WordSampler interface {
		SampleWords(ctx context.Context, filter dal.SampleFilter) ([]dal.Word, error)
	}

	QuizQuestion struct {
		Word         dal.Word
		Choices      []string
		CorrectIndex int
		TargetWordID int64
	}

	QuizGenerator struct {
		words WordSampler
		rnd   *rand.Rand
		log   *slog.Logger
	}
)

func NewQuizGenerator(words WordSampler, log *slog.Logger) *QuizGenerator {
	return &QuizGenerator{
		words: words,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // quiz shuffling is not security sensitive
		log:   log,
	}
}

// NewQuizGeneratorWithRand allows a seeded source for deterministic draws.
func NewQuizGeneratorWithRand(words WordSampler, rnd *rand.Rand, log *slog.Logger) *QuizGenerator {
	return &QuizGenerator{words: words, rnd: rnd, log: log}
}

// Generate builds one question: a random target word plus three distractors
// with translations distinct from each other and from the target's.
func (g *QuizGenerator) Generate(ctx context.Context, difficulty dal.Difficulty) (*QuizQuestion, error) {
	targets, err := g.words.SampleWords(ctx, dal.SampleFilter{
		Difficulty: difficulty,
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("sample target word: %w", err)
	}
	if len(targets) == 0 {
		return nil, ErrInsufficientPool
	}
	target := targets[0]

	distractors, err := g.words.SampleWords(ctx, dal.SampleFilter{
		Difficulty:          difficulty,
		Limit:               quizChoices - 1,
		ExcludeWordID:       target.ID,
		ExcludeTranslation:  target.Translation,
		DistinctTranslation: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sample distractors: %w", err)
	}
	if len(distractors) < quizChoices-1 {
		return nil, ErrInsufficientPool
	}

	choices := make([]string, 0, quizChoices)
	choices = append(choices, target.Translation)
	for _, d := range distractors[:quizChoices-1] {
		choices = append(choices, d.Translation)
	}

	g.rnd.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	correctIndex := 0
	for i, c := range choices {
		if c == target.Translation {
			correctIndex = i
			break
		}
	}

	return &QuizQuestion{
		Word:         target,
		Choices:      choices,
		CorrectIndex: correctIndex,
		TargetWordID: target.ID,
	}, nil
}
