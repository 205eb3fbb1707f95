package learning

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

const dateLayout = "2006-01-02"

const (
	BadgeFirstWord      = "first_word"
	BadgeApprentice     = "apprentice"
	BadgeExpert         = "expert"
	BadgeWeekStreak     = "week_streak"
	BadgeThousandPoints = "thousand_points"
)

type badgeRule struct {
	badge string
	met   func(stats dal.UserStats) bool
}

var badgeRules = []badgeRule{
	{BadgeFirstWord, func(s dal.UserStats) bool { return s.WordsLearned >= 1 }},
	{BadgeApprentice, func(s dal.UserStats) bool { return s.WordsLearned >= 10 }},
	{BadgeExpert, func(s dal.UserStats) bool { return s.WordsLearned >= 100 }},
	{BadgeWeekStreak, func(s dal.UserStats) bool { return s.StreakDays >= 7 }},
	{BadgeThousandPoints, func(s dal.UserStats) bool { return s.TotalPoints >= 1000 }},
}

type (
	StatsStore interface {
		Transact(ctx context.Context, txFunc func(r dal.Repository) error) error
		GetUserStats(ctx context.Context) (*dal.UserStats, error)
		SaveUserStats(ctx context.Context, stats dal.UserStats) error
		AddBadge(ctx context.Context, badge string) error
	}

	StreakEngine struct {
		repo             StatsStore
		pointsPerCorrect int
		now              func() time.Time
		log              *slog.Logger
	}
)

func NewStreakEngine(repo StatsStore, pointsPerCorrect int, log *slog.Logger) *StreakEngine {
	return &StreakEngine{
		repo:             repo,
		pointsPerCorrect: pointsPerCorrect,
		now:              time.Now,
		log:              log,
	}
}

// UpdateStreak advances the daily streak for today's activity and persists
// the result. Same-day repeats are no-ops.
func (e *StreakEngine) UpdateStreak(ctx context.Context) (*dal.UserStats, error) {
	var res *dal.UserStats

	err := e.repo.Transact(ctx, func(r dal.Repository) error {
		stats, err := r.GetUserStats(ctx)
		if err != nil {
			return fmt.Errorf("get user stats: %w", err)
		}

		e.advanceStreak(stats)

		if err := r.SaveUserStats(ctx, *stats); err != nil {
			return fmt.Errorf("save user stats: %w", err)
		}

		res = stats
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// AwardBadges evaluates the fixed threshold table against current stats and
// grants any unheld badge whose threshold is met. Re-evaluation with
// unchanged stats awards nothing.
func (e *StreakEngine) AwardBadges(ctx context.Context) ([]string, error) {
	var awarded []string

	err := e.repo.Transact(ctx, func(r dal.Repository) error {
		stats, err := r.GetUserStats(ctx)
		if err != nil {
			return fmt.Errorf("get user stats: %w", err)
		}

		awarded, err = e.award(ctx, r, stats)
		return err
	})
	if err != nil {
		return nil, err
	}

	return awarded, nil
}

// CompleteSession folds a finished session into cumulative stats: points for
// correct answers, session count, streak advance and badge evaluation, all in
// one transaction. wordsLearned is the current learned count from the
// progress aggregate.
func (e *StreakEngine) CompleteSession(ctx context.Context, correctAnswers, wordsLearned int) (*dal.UserStats, []string, error) {
	var (
		res     *dal.UserStats
		awarded []string
	)

	err := e.repo.Transact(ctx, func(r dal.Repository) error {
		stats, err := r.GetUserStats(ctx)
		if err != nil {
			return fmt.Errorf("get user stats: %w", err)
		}

		stats.TotalPoints += correctAnswers * e.pointsPerCorrect
		stats.TotalSessions++
		stats.WordsLearned = wordsLearned
		e.advanceStreak(stats)

		if err := r.SaveUserStats(ctx, *stats); err != nil {
			return fmt.Errorf("save user stats: %w", err)
		}

		if awarded, err = e.award(ctx, r, stats); err != nil {
			return err
		}

		res = stats
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return res, awarded, nil
}

func (e *StreakEngine) advanceStreak(stats *dal.UserStats) {
	today := e.now().Format(dateLayout)
	if stats.LastActivityDate == today {
		return
	}

	switch daysBetween(stats.LastActivityDate, today) {
	case 1:
		stats.StreakDays++
	default:
		// first activity, a gap, or a clock anomaly all restart the streak
		stats.StreakDays = 1
	}
	stats.LastActivityDate = today
}

func (e *StreakEngine) award(ctx context.Context, r dal.Repository, stats *dal.UserStats) ([]string, error) {
	var awarded []string
	for _, rule := range badgeRules {
		if slices.Contains(stats.Badges, rule.badge) || !rule.met(*stats) {
			continue
		}

		if err := r.AddBadge(ctx, rule.badge); err != nil {
			return nil, fmt.Errorf("add badge %s: %w", rule.badge, err)
		}
		stats.Badges = append(stats.Badges, rule.badge)
		awarded = append(awarded, rule.badge)
	}
	return awarded, nil
}

// daysBetween returns whole calendar days from one local date to another;
// unparsable input counts as a gap.
func daysBetween(from, to string) int {
	f, err := time.ParseInLocation(dateLayout, from, time.Local)
	if err != nil {
		return -1
	}
	t, err := time.ParseInLocation(dateLayout, to, time.Local)
	if err != nil {
		return -1
	}
	return int(t.Sub(f).Hours() / 24)
}
