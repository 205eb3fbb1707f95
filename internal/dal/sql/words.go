package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

func (r *Repository) UpsertWord(ctx context.Context, word dal.Word) error {
	query := dal.UpsertWordQuery(word)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	_, err = r.client.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("upsert word: %w", err)
	}
	return nil
}

func (r *Repository) FindWords(ctx context.Context, filter dal.WordsFilter) ([]dal.Word, int, error) {
	selectQuery, countQuery := dal.FindWordsQuery(filter)

	eg, ctx := errgroup.WithContext(ctx)
	res := make([]dal.Word, 0, filter.Limit)
	total := 0

	eg.Go(func() error {
		sql, args, err := selectQuery.ToSql()
		if err != nil {
			return fmt.Errorf("build select query: %w", err)
		}

		rows, err := r.client.QueryContext(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("find words: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			w, err := hydrateWord(rows)
			if err != nil {
				return fmt.Errorf("scan word: %w", err)
			}
			res = append(res, *w)
		}

		if rows.Err() != nil {
			return fmt.Errorf("iterate words: %w", rows.Err())
		}

		return nil
	})

	eg.Go(func() error {
		sql, args, err := countQuery.ToSql()
		if err != nil {
			return fmt.Errorf("build count query: %w", err)
		}

		if err := r.client.QueryRowContext(ctx, sql, args...).Scan(&total); err != nil {
			return fmt.Errorf("get total: %w", err)
		}

		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}

	return res, total, nil
}

func (r *Repository) FindWord(ctx context.Context, id int64) (*dal.Word, error) {
	query := dal.FindWordQuery(id)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	w, err := hydrateWord(r.client.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dal.ErrNotFound
		}
		return nil, fmt.Errorf("find word: %w", err)
	}
	return w, nil
}

func (r *Repository) SampleWords(ctx context.Context, filter dal.SampleFilter) ([]dal.Word, error) {
	query := dal.SampleWordsQuery(filter)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.client.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("sample words: %w", err)
	}
	defer rows.Close()

	res := make([]dal.Word, 0, filter.Limit)
	for rows.Next() {
		w, err := hydrateWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		res = append(res, *w)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate words: %w", rows.Err())
	}

	return res, nil
}

func (r *Repository) CountWords(ctx context.Context, difficulty dal.Difficulty) (int, error) {
	query := dal.CountWordsQuery(difficulty)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := r.client.QueryRowContext(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return count, nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	query := dal.ListCategoriesQuery()

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.client.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		res = append(res, category)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate categories: %w", rows.Err())
	}

	return res, nil
}

type row interface {
	Scan(dest ...any) error
}

func hydrateWord(r row) (*dal.Word, error) {
	var w dal.Word
	err := r.Scan(
		&w.ID,
		&w.Text,
		&w.Translation,
		&w.Pronunciation,
		&w.PartOfSpeech,
		&w.Definition,
		&w.Example,
		&w.ExampleTranslation,
		&w.Difficulty,
		&w.Category,
		&w.FrequencyRank,
		&w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
