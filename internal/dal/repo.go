package dal

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type (
	WordsFilter struct {
		Difficulty Difficulty
		Category   string
		Search     string
		Offset     uint64
		Limit      uint64
	}

	SampleFilter struct {
		Difficulty Difficulty
		Limit      uint64
		// ExcludeWordID and ExcludeTranslation constrain distractor draws:
		// the target word itself and any word sharing its translation string
		// never qualify as a distractor.
		ExcludeWordID       int64
		ExcludeTranslation  string
		DistinctTranslation bool
	}

	ProgressStats struct {
		TotalWordsStudied int
		WordsLearned      int
		MasteredWords     int
		TotalAttempts     int
		TotalCorrect      int
	}

	SessionStats struct {
		TotalSessions          int
		AverageScore           float64
		BestScore              float64
		AverageDurationSeconds float64
	}

	WordsRepository interface {
		FindWords(ctx context.Context, filter WordsFilter) ([]Word, int, error)
		FindWord(ctx context.Context, id int64) (*Word, error)
		SampleWords(ctx context.Context, filter SampleFilter) ([]Word, error)
		CountWords(ctx context.Context, difficulty Difficulty) (int, error)
		ListCategories(ctx context.Context) ([]string, error)
		UpsertWord(ctx context.Context, word Word) error
	}

	ProgressRepository interface {
		FindProgress(ctx context.Context, wordID int64) (*ProgressRecord, error)
		UpsertProgress(ctx context.Context, record ProgressRecord) error
		DeleteProgress(ctx context.Context, wordID int64) error
		GetProgressStats(ctx context.Context, learnedLevel, masteredLevel int) (*ProgressStats, error)
	}

	SessionsRepository interface {
		InsertSession(ctx context.Context, session SessionRecord) error
		FinishSession(ctx context.Context, id string, wordsStudied, correctAnswers, totalQuestions int) error
		FindSession(ctx context.Context, id string) (*SessionRecord, error)
		InsertQuizAnswer(ctx context.Context, answer QuizAnswer) error
		GetSessionStats(ctx context.Context) (*SessionStats, error)
	}

	UserStatsRepository interface {
		GetUserStats(ctx context.Context) (*UserStats, error)
		SaveUserStats(ctx context.Context, stats UserStats) error
		AddBadge(ctx context.Context, badge string) error
	}

	Repository interface {
		Transact(ctx context.Context, txFunc func(r Repository) error) error
		WordsRepository
		ProgressRepository
		SessionsRepository
		UserStatsRepository
	}
)
