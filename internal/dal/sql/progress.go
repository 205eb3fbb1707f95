package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

func (r *Repository) FindProgress(ctx context.Context, wordID int64) (*dal.ProgressRecord, error) {
	query := dal.FindProgressQuery(wordID)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var record dal.ProgressRecord
	err = r.client.QueryRowContext(ctx, sqlQuery, args...).Scan(
		&record.WordID,
		&record.Attempts,
		&record.CorrectAnswers,
		&record.MasteryLevel,
		&record.FirstSeen,
		&record.LastSeen,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dal.ErrNotFound
		}
		return nil, fmt.Errorf("find progress: %w", err)
	}
	return &record, nil
}

func (r *Repository) UpsertProgress(ctx context.Context, record dal.ProgressRecord) error {
	query := dal.UpsertProgressQuery(record)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.client.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *Repository) DeleteProgress(ctx context.Context, wordID int64) error {
	query := dal.DeleteProgressQuery(wordID)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.client.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

func (r *Repository) GetProgressStats(ctx context.Context, learnedLevel, masteredLevel int) (*dal.ProgressStats, error) {
	query := dal.GetProgressStatsQuery(learnedLevel, masteredLevel)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		stats                                         dal.ProgressStats
		learned, mastered, totalAttempts, totalCorrect sql.NullInt64
	)
	err = r.client.QueryRowContext(ctx, sqlQuery, args...).Scan(
		&stats.TotalWordsStudied,
		&learned,
		&mastered,
		&totalAttempts,
		&totalCorrect,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dal.ProgressStats{}, nil
		}
		return nil, fmt.Errorf("get progress stats: %w", err)
	}

	stats.WordsLearned = int(learned.Int64)
	stats.MasteredWords = int(mastered.Int64)
	stats.TotalAttempts = int(totalAttempts.Int64)
	stats.TotalCorrect = int(totalCorrect.Int64)
	return &stats, nil
}
