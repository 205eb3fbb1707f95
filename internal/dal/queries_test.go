package dal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindWordsQuery(t *testing.T) {
	selectQuery, countQuery := FindWordsQuery(WordsFilter{
		Difficulty: DifficultyIntermediate,
		Category:   "animals",
		Search:     "Cat",
		Offset:     20,
		Limit:      10,
	})

	sql, args, err := selectQuery.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM words")
	assert.Contains(t, sql, "difficulty = $")
	assert.Contains(t, sql, "category = $")
	assert.Contains(t, sql, "LOWER(text) LIKE $")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 20")
	assert.Contains(t, args, "%cat%")

	sql, _, err = countQuery.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "COUNT(*)")
	assert.NotContains(t, sql, "LIMIT")
}

func TestSampleWordsQuery(t *testing.T) {
	sql, args, err := SampleWordsQuery(SampleFilter{
		Difficulty:          DifficultyBeginner,
		Limit:               3,
		ExcludeWordID:       7,
		ExcludeTranslation:  "cat",
		DistinctTranslation: true,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "ORDER BY random()")
	assert.Contains(t, sql, "id <> $")
	assert.Contains(t, sql, "translation <> $")
	assert.Contains(t, sql, "GROUP BY translation")
	assert.Contains(t, sql, "LIMIT 3")
	assert.Contains(t, args, int64(7))
	assert.Contains(t, args, "cat")
}

func TestSampleWordsQuery_NoFilters(t *testing.T) {
	sql, args, err := SampleWordsQuery(SampleFilter{Limit: 1}).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.NotContains(t, sql, "GROUP BY")
	assert.Empty(t, args)
}

func TestUpsertProgressQuery(t *testing.T) {
	now := time.Now()
	sql, args, err := UpsertProgressQuery(ProgressRecord{
		WordID:         42,
		Attempts:       3,
		CorrectAnswers: 2,
		MasteryLevel:   2,
		FirstSeen:      now,
		LastSeen:       now,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO user_progress")
	assert.Contains(t, sql, "ON CONFLICT (word_id) DO UPDATE")
	assert.Len(t, args, 6)
}

func TestFinishSessionQuery_GuardsOpenSessions(t *testing.T) {
	sql, _, err := FinishSessionQuery("abc", time.Now(), 10, 8, 10).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "UPDATE learning_sessions")
	assert.Contains(t, sql, "ended_at IS NULL")
}

func TestGetSessionStatsQuery_ExcludesOpenSessions(t *testing.T) {
	sql, _, err := GetSessionStatsQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "ended_at IS NOT NULL")
	assert.Contains(t, sql, "COALESCE")
}

func TestAddBadgeQuery_Idempotent(t *testing.T) {
	sql, args, err := AddBadgeQuery("first_word").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO user_badges")
	assert.Contains(t, sql, "ON CONFLICT DO NOTHING")
	assert.Equal(t, []any{"first_word"}, args)
}

func TestGetProgressStatsQuery_UsesCutoffs(t *testing.T) {
	sql, _, err := GetProgressStatsQuery(3, 4).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "mastery_level >= 3")
	assert.Contains(t, sql, "mastery_level >= 4")
}
