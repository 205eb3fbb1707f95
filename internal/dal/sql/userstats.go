package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

func (r *Repository) GetUserStats(ctx context.Context) (*dal.UserStats, error) {
	query := dal.GetUserStatsQuery()

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var stats dal.UserStats
	err = r.client.QueryRowContext(ctx, sqlQuery, args...).Scan(
		&stats.WordsLearned,
		&stats.TotalPoints,
		&stats.StreakDays,
		&stats.TotalSessions,
		&stats.LastActivityDate,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user stats: %w", err)
	}

	badges, err := r.listBadges(ctx)
	if err != nil {
		return nil, err
	}
	stats.Badges = badges

	return &stats, nil
}

func (r *Repository) SaveUserStats(ctx context.Context, stats dal.UserStats) error {
	query := dal.SaveUserStatsQuery(stats)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.client.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("save user stats: %w", err)
	}
	return nil
}

func (r *Repository) AddBadge(ctx context.Context, badge string) error {
	query := dal.AddBadgeQuery(badge)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.client.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("add badge: %w", err)
	}
	return nil
}

func (r *Repository) listBadges(ctx context.Context) ([]string, error) {
	query := dal.ListBadgesQuery()

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.client.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	var badges []string
	for rows.Next() {
		var badge string
		if err := rows.Scan(&badge); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, badge)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate badges: %w", rows.Err())
	}

	return badges, nil
}
