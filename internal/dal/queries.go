package dal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// UpsertWordQuery builds a query to add or update a catalog word
func UpsertWordQuery(w Word) squirrel.Sqlizer {
	return squirrel.Insert("words").
		Columns("text", "translation", "pronunciation", "part_of_speech", "definition",
			"example", "example_translation", "difficulty", "category", "frequency_rank").
		Values(w.Text, w.Translation, w.Pronunciation, w.PartOfSpeech, w.Definition,
			w.Example, w.ExampleTranslation, w.Difficulty, w.Category, w.FrequencyRank).
		Suffix(`ON CONFLICT (text) DO UPDATE SET
			translation = EXCLUDED.translation,
			pronunciation = EXCLUDED.pronunciation,
			part_of_speech = EXCLUDED.part_of_speech,
			definition = EXCLUDED.definition,
			example = EXCLUDED.example,
			example_translation = EXCLUDED.example_translation,
			difficulty = EXCLUDED.difficulty,
			category = EXCLUDED.category,
			frequency_rank = EXCLUDED.frequency_rank`).
		PlaceholderFormat(squirrel.Dollar)
}

// FindWordsQuery builds select and count queries for catalog words with filters
func FindWordsQuery(filter WordsFilter) (selectQuery, countQuery squirrel.Sqlizer) {
	baseQuery := squirrel.Select().
		From("words").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Difficulty != "" {
		baseQuery = baseQuery.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}

	if filter.Category != "" {
		baseQuery = baseQuery.Where(squirrel.Eq{"category": filter.Category})
	}

	if filter.Search != "" {
		search := fmt.Sprintf("%%%s%%", strings.ToLower(filter.Search))
		baseQuery = baseQuery.Where("(LOWER(text) LIKE ? OR LOWER(translation) LIKE ?)", search, search)
	}

	selectQuery = baseQuery.
		Columns(wordColumns()...).
		OrderBy("frequency_rank", "text").
		Offset(filter.Offset).
		Limit(filter.Limit)

	countQuery = baseQuery.Columns("COUNT(*)")

	return selectQuery, countQuery
}

// FindWordQuery builds a query to find a single catalog word by id
func FindWordQuery(id int64) squirrel.Sqlizer {
	return squirrel.Select(wordColumns()...).
		From("words").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
}

// SampleWordsQuery builds a query to draw words uniformly at random
func SampleWordsQuery(filter SampleFilter) squirrel.Sqlizer {
	query := squirrel.Select(wordColumns()...).
		From("words").
		OrderBy("random()").
		Limit(filter.Limit)

	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}

	if filter.ExcludeWordID != 0 {
		query = query.Where(squirrel.NotEq{"id": filter.ExcludeWordID})
	}

	if filter.ExcludeTranslation != "" {
		query = query.Where(squirrel.NotEq{"translation": filter.ExcludeTranslation})
	}

	if filter.DistinctTranslation {
		query = query.GroupBy("translation")
	}

	return query.PlaceholderFormat(squirrel.Dollar)
}

// CountWordsQuery builds a query to count catalog words
func CountWordsQuery(difficulty Difficulty) squirrel.Sqlizer {
	query := squirrel.Select("COUNT(*)").
		From("words").
		PlaceholderFormat(squirrel.Dollar)

	if difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": difficulty})
	}

	return query
}

// ListCategoriesQuery builds a query to list distinct word categories
func ListCategoriesQuery() squirrel.Sqlizer {
	return squirrel.Select("DISTINCT category").
		From("words").
		Where(squirrel.NotEq{"category": ""}).
		OrderBy("category").
		PlaceholderFormat(squirrel.Dollar)
}

// FindProgressQuery builds a query to find a progress record by word id
func FindProgressQuery(wordID int64) squirrel.Sqlizer {
	return squirrel.Select("word_id", "attempts", "correct_answers", "mastery_level", "first_seen", "last_seen").
		From("user_progress").
		Where(squirrel.Eq{"word_id": wordID}).
		PlaceholderFormat(squirrel.Dollar)
}

// UpsertProgressQuery builds a query to insert or update a progress record
func UpsertProgressQuery(record ProgressRecord) squirrel.Sqlizer {
	return squirrel.Insert("user_progress").
		Columns("word_id", "attempts", "correct_answers", "mastery_level", "first_seen", "last_seen").
		Values(record.WordID, record.Attempts, record.CorrectAnswers, record.MasteryLevel, record.FirstSeen, record.LastSeen).
		Suffix(`ON CONFLICT (word_id) DO UPDATE SET
			attempts = EXCLUDED.attempts,
			correct_answers = EXCLUDED.correct_answers,
			mastery_level = EXCLUDED.mastery_level,
			last_seen = EXCLUDED.last_seen`).
		PlaceholderFormat(squirrel.Dollar)
}

// DeleteProgressQuery builds a query to delete a progress record
func DeleteProgressQuery(wordID int64) squirrel.Sqlizer {
	return squirrel.Delete("user_progress").
		Where(squirrel.Eq{"word_id": wordID}).
		PlaceholderFormat(squirrel.Dollar)
}

// GetProgressStatsQuery builds a query to aggregate progress statistics
func GetProgressStatsQuery(learnedLevel, masteredLevel int) squirrel.Sqlizer {
	return squirrel.Select(
		"COUNT(*) AS total_words_studied",
		fmt.Sprintf("SUM(CASE WHEN mastery_level >= %d THEN 1 ELSE 0 END) AS words_learned", learnedLevel),
		fmt.Sprintf("SUM(CASE WHEN mastery_level >= %d THEN 1 ELSE 0 END) AS mastered_words", masteredLevel),
		"SUM(attempts) AS total_attempts",
		"SUM(correct_answers) AS total_correct",
	).
		From("user_progress").
		PlaceholderFormat(squirrel.Dollar)
}

// InsertSessionQuery builds a query to insert a new learning session
func InsertSessionQuery(session SessionRecord) squirrel.Sqlizer {
	return squirrel.Insert("learning_sessions").
		Columns("id", "session_type", "started_at").
		Values(session.ID, session.SessionType, session.StartedAt).
		PlaceholderFormat(squirrel.Dollar)
}

// FinishSessionQuery builds a query to finalize an open session exactly once
func FinishSessionQuery(id string, endedAt time.Time, wordsStudied, correctAnswers, totalQuestions int) squirrel.Sqlizer {
	return squirrel.Update("learning_sessions").
		Set("ended_at", endedAt).
		Set("words_studied", wordsStudied).
		Set("correct_answers", correctAnswers).
		Set("total_questions", totalQuestions).
		Where(squirrel.Eq{"id": id}).
		Where("ended_at IS NULL").
		PlaceholderFormat(squirrel.Dollar)
}

// FindSessionQuery builds a query to find a session by id
func FindSessionQuery(id string) squirrel.Sqlizer {
	return squirrel.Select("id", "session_type", "started_at", "ended_at",
		"words_studied", "correct_answers", "total_questions").
		From("learning_sessions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
}

// InsertQuizAnswerQuery builds a query to append a quiz answer
func InsertQuizAnswerQuery(answer QuizAnswer) squirrel.Sqlizer {
	return squirrel.Insert("quiz_answers").
		Columns("session_id", "word_id", "is_correct", "time_taken_seconds", "answered_at").
		Values(answer.SessionID, answer.WordID, answer.IsCorrect, answer.TimeTakenSeconds, answer.AnsweredAt).
		PlaceholderFormat(squirrel.Dollar)
}

// GetSessionStatsQuery builds a query to aggregate finalized sessions
func GetSessionStatsQuery() squirrel.Sqlizer {
	return squirrel.Select(
		"COUNT(*) AS total_sessions",
		`COALESCE(AVG(CASE WHEN total_questions > 0
			THEN CAST(correct_answers AS REAL) / total_questions END), 0) AS average_score`,
		`COALESCE(MAX(CASE WHEN total_questions > 0
			THEN CAST(correct_answers AS REAL) / total_questions END), 0) AS best_score`,
		"COALESCE(AVG((julianday(ended_at) - julianday(started_at)) * 86400), 0) AS average_duration_seconds",
	).
		From("learning_sessions").
		Where("ended_at IS NOT NULL").
		PlaceholderFormat(squirrel.Dollar)
}

// CleanupStaleSessionsQuery builds a query to drop abandoned open sessions
func CleanupStaleSessionsQuery(startedBefore time.Time) squirrel.Sqlizer {
	return squirrel.Delete("learning_sessions").
		Where("ended_at IS NULL").
		Where(squirrel.Lt{"started_at": startedBefore}).
		PlaceholderFormat(squirrel.Dollar)
}

// GetUserStatsQuery builds a query to load the single user stats row
func GetUserStatsQuery() squirrel.Sqlizer {
	return squirrel.Select("words_learned", "total_points", "streak_days",
		"total_sessions", "COALESCE(last_activity_date, '')").
		From("user_stats").
		Where(squirrel.Eq{"id": 1}).
		PlaceholderFormat(squirrel.Dollar)
}

// SaveUserStatsQuery builds a query to upsert the single user stats row
func SaveUserStatsQuery(stats UserStats) squirrel.Sqlizer {
	return squirrel.Insert("user_stats").
		Columns("id", "words_learned", "total_points", "streak_days", "total_sessions", "last_activity_date").
		Values(1, stats.WordsLearned, stats.TotalPoints, stats.StreakDays, stats.TotalSessions, stats.LastActivityDate).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			words_learned = EXCLUDED.words_learned,
			total_points = EXCLUDED.total_points,
			streak_days = EXCLUDED.streak_days,
			total_sessions = EXCLUDED.total_sessions,
			last_activity_date = EXCLUDED.last_activity_date`).
		PlaceholderFormat(squirrel.Dollar)
}

// ListBadgesQuery builds a query to list awarded badges
func ListBadgesQuery() squirrel.Sqlizer {
	return squirrel.Select("badge").
		From("user_badges").
		OrderBy("awarded_at").
		PlaceholderFormat(squirrel.Dollar)
}

// AddBadgeQuery builds a query to award a badge; awarding is additive
func AddBadgeQuery(badge string) squirrel.Sqlizer {
	return squirrel.Insert("user_badges").
		Columns("badge").
		Values(badge).
		Suffix("ON CONFLICT DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)
}

func wordColumns() []string {
	return []string{
		"id", "text", "translation",
		"COALESCE(pronunciation, '')", "COALESCE(part_of_speech, '')",
		"COALESCE(definition, '')", "COALESCE(example, '')",
		"COALESCE(example_translation, '')",
		"difficulty", "category", "frequency_rank", "created_at",
	}
}
