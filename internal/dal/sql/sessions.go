package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

func (r *Repository) InsertSession(ctx context.Context, session dal.SessionRecord) error {
	query := dal.InsertSessionQuery(session)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.client.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *Repository) FinishSession(ctx context.Context, id string, wordsStudied, correctAnswers, totalQuestions int) error {
	query := dal.FinishSessionQuery(id, time.Now(), wordsStudied, correctAnswers, totalQuestions)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.client.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session rows affected: %w", err)
	}
	if affected == 0 {
		return dal.ErrNotFound
	}
	return nil
}

func (r *Repository) FindSession(ctx context.Context, id string) (*dal.SessionRecord, error) {
	query := dal.FindSessionQuery(id)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		session dal.SessionRecord
		endedAt sql.NullTime
	)
	err = r.client.QueryRowContext(ctx, sqlQuery, args...).Scan(
		&session.ID,
		&session.SessionType,
		&session.StartedAt,
		&endedAt,
		&session.WordsStudied,
		&session.CorrectAnswers,
		&session.TotalQuestions,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dal.ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	if endedAt.Valid {
		session.EndedAt = &endedAt.Time
	}
	return &session, nil
}

func (r *Repository) InsertQuizAnswer(ctx context.Context, answer dal.QuizAnswer) error {
	query := dal.InsertQuizAnswerQuery(answer)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.client.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("insert quiz answer: %w", err)
	}
	return nil
}

func (r *Repository) GetSessionStats(ctx context.Context) (*dal.SessionStats, error) {
	query := dal.GetSessionStatsQuery()

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var stats dal.SessionStats
	err = r.client.QueryRowContext(ctx, sqlQuery, args...).Scan(
		&stats.TotalSessions,
		&stats.AverageScore,
		&stats.BestScore,
		&stats.AverageDurationSeconds,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dal.SessionStats{}, nil
		}
		return nil, fmt.Errorf("get session stats: %w", err)
	}
	return &stats, nil
}
