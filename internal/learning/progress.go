package learning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

type (
	// ProgressStore is the store surface the tracker needs: transactional
	// access to per-word progress records.
	ProgressStore interface {
		Transact(ctx context.Context, txFunc func(r dal.Repository) error) error
		FindProgress(ctx context.Context, wordID int64) (*dal.ProgressRecord, error)
		UpsertProgress(ctx context.Context, record dal.ProgressRecord) error
		DeleteProgress(ctx context.Context, wordID int64) error
		GetProgressStats(ctx context.Context, learnedLevel, masteredLevel int) (*dal.ProgressStats, error)
	}

	ProgressSummary struct {
		TotalWordsStudied int
		WordsLearned      int
		MasteredWords     int
		SuccessRate       float64
	}

	ProgressTracker struct {
		repo          ProgressStore
		learnedLevel  int
		masteredLevel int
		now           func() time.Time
		log           *slog.Logger
	}
)

func NewProgressTracker(repo ProgressStore, learnedLevel, masteredLevel int, log *slog.Logger) *ProgressTracker {
	return &ProgressTracker{
		repo:          repo,
		learnedLevel:  learnedLevel,
		masteredLevel: masteredLevel,
		now:           time.Now,
		log:           log,
	}
}

// RecordAnswer folds one answer into the word's progress record. An unknown
// word id starts a fresh record; the mastery level is recomputed from the
// lifetime totals on every call and may drop after a miss.
func (t *ProgressTracker) RecordAnswer(ctx context.Context, wordID int64, isCorrect bool) (*dal.ProgressRecord, error) {
	var res *dal.ProgressRecord

	err := t.repo.Transact(ctx, func(r dal.Repository) error {
		now := t.now()

		record, err := r.FindProgress(ctx, wordID)
		if err != nil {
			if !errors.Is(err, dal.ErrNotFound) {
				return fmt.Errorf("find progress: %w", err)
			}
			record = &dal.ProgressRecord{WordID: wordID, FirstSeen: now}
		}

		record.Attempts++
		if isCorrect {
			record.CorrectAnswers++
		}
		record.MasteryLevel = masteryLevel(record.CorrectAnswers, record.Attempts)
		record.LastSeen = now

		if err := r.UpsertProgress(ctx, *record); err != nil {
			return fmt.Errorf("upsert progress: %w", err)
		}

		res = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Reset drops the progress record for a word; the next answer starts over.
func (t *ProgressTracker) Reset(ctx context.Context, wordID int64) error {
	if err := t.repo.DeleteProgress(ctx, wordID); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func (t *ProgressTracker) Stats(ctx context.Context) (*ProgressSummary, error) {
	stats, err := t.repo.GetProgressStats(ctx, t.learnedLevel, t.masteredLevel)
	if err != nil {
		return nil, fmt.Errorf("get progress stats: %w", err)
	}

	res := ProgressSummary{
		TotalWordsStudied: stats.TotalWordsStudied,
		WordsLearned:      stats.WordsLearned,
		MasteredWords:     stats.MasteredWords,
	}
	if stats.TotalAttempts > 0 {
		res.SuccessRate = float64(stats.TotalCorrect) / float64(stats.TotalAttempts)
	}

	return &res, nil
}

// masteryLevel maps lifetime totals to a 0-5 level; the first matching rule
// wins, checked from the highest level down.
func masteryLevel(correctAnswers, attempts int) int {
	if attempts == 0 {
		return 0
	}

	rate := float64(correctAnswers) / float64(attempts)
	switch {
	case rate >= 0.9 && attempts >= 5:
		return 5
	case rate >= 0.8 && attempts >= 3:
		return 4
	case rate >= 0.7 && attempts >= 3:
		return 3
	case rate >= 0.6 && attempts >= 2:
		return 2
	case rate >= 0.5 && attempts >= 2:
		return 1
	default:
		return 0
	}
}
