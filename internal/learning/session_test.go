package learning

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

type sessionStore struct {
	sessions map[string]dal.SessionRecord
	answers  []dal.QuizAnswer
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]dal.SessionRecord)}
}

func (s *sessionStore) InsertSession(_ context.Context, session dal.SessionRecord) error {
	s.sessions[session.ID] = session
	return nil
}

func (s *sessionStore) FinishSession(_ context.Context, id string, wordsStudied, correctAnswers, totalQuestions int) error {
	session, ok := s.sessions[id]
	if !ok || session.EndedAt != nil {
		return dal.ErrNotFound
	}

	now := time.Now()
	session.EndedAt = &now
	session.WordsStudied = wordsStudied
	session.CorrectAnswers = correctAnswers
	session.TotalQuestions = totalQuestions
	s.sessions[id] = session
	return nil
}

func (s *sessionStore) FindSession(_ context.Context, id string) (*dal.SessionRecord, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, dal.ErrNotFound
	}
	return &session, nil
}

func (s *sessionStore) InsertQuizAnswer(_ context.Context, answer dal.QuizAnswer) error {
	s.answers = append(s.answers, answer)
	return nil
}

func (s *sessionStore) GetSessionStats(_ context.Context) (*dal.SessionStats, error) {
	stats := dal.SessionStats{}
	var scoreSum, durationSum float64
	for _, session := range s.sessions {
		if session.EndedAt == nil {
			continue
		}
		stats.TotalSessions++
		if session.TotalQuestions > 0 {
			score := float64(session.CorrectAnswers) / float64(session.TotalQuestions)
			scoreSum += score
			if score > stats.BestScore {
				stats.BestScore = score
			}
		}
		durationSum += session.EndedAt.Sub(session.StartedAt).Seconds()
	}
	if stats.TotalSessions > 0 {
		stats.AverageScore = scoreSum / float64(stats.TotalSessions)
		stats.AverageDurationSeconds = durationSum / float64(stats.TotalSessions)
	}
	return &stats, nil
}

func newTestRecorder(store *sessionStore) *SessionRecorder {
	return NewSessionRecorder(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSessionRecorder_StartAndEnd(t *testing.T) {
	store := newSessionStore()
	recorder := newTestRecorder(store)

	id, err := recorder.Start(context.Background(), dal.SessionQuiz)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, recorder.End(context.Background(), id, 10, 8, 10))

	session := store.sessions[id]
	require.NotNil(t, session.EndedAt)
	assert.Equal(t, 10, session.WordsStudied)
	assert.Equal(t, 8, session.CorrectAnswers)
	assert.Equal(t, 10, session.TotalQuestions)
}

func TestSessionRecorder_Start_InvalidType(t *testing.T) {
	recorder := newTestRecorder(newSessionStore())

	_, err := recorder.Start(context.Background(), "cramming")
	assert.Error(t, err)
}

func TestSessionRecorder_End_Twice(t *testing.T) {
	recorder := newTestRecorder(newSessionStore())

	id, err := recorder.Start(context.Background(), dal.SessionFlashcard)
	require.NoError(t, err)

	require.NoError(t, recorder.End(context.Background(), id, 5, 5, 5))

	err = recorder.End(context.Background(), id, 5, 5, 5)
	assert.ErrorIs(t, err, dal.ErrNotFound)
}

func TestSessionRecorder_End_UnknownSession(t *testing.T) {
	recorder := newTestRecorder(newSessionStore())

	err := recorder.End(context.Background(), "no-such-session", 1, 1, 1)
	assert.ErrorIs(t, err, dal.ErrNotFound)
}

func TestSessionRecorder_RecordAnswer(t *testing.T) {
	store := newSessionStore()
	recorder := newTestRecorder(store)

	id, err := recorder.Start(context.Background(), dal.SessionQuiz)
	require.NoError(t, err)

	require.NoError(t, recorder.RecordAnswer(context.Background(), id, 42, true, 3))

	require.Len(t, store.answers, 1)
	assert.Equal(t, id, store.answers[0].SessionID)
	assert.Equal(t, int64(42), store.answers[0].WordID)
	assert.True(t, store.answers[0].IsCorrect)
	assert.Equal(t, 3, store.answers[0].TimeTakenSeconds)
}

func TestSessionRecorder_RecordAnswer_UnknownSession(t *testing.T) {
	recorder := newTestRecorder(newSessionStore())

	err := recorder.RecordAnswer(context.Background(), "no-such-session", 1, true, 1)
	assert.ErrorIs(t, err, dal.ErrNotFound)
}

func TestSessionRecorder_RecordFinished(t *testing.T) {
	store := newSessionStore()
	recorder := newTestRecorder(store)

	id, err := recorder.RecordFinished(context.Background(), dal.SessionQuiz, 10, 7, 10, 90)
	require.NoError(t, err)

	session := store.sessions[id]
	require.NotNil(t, session.EndedAt)
	assert.Equal(t, 7, session.CorrectAnswers)
	assert.InDelta(t, 90, session.EndedAt.Sub(session.StartedAt).Seconds(), 1)
}

func TestSessionRecorder_Stats_NoSessions(t *testing.T) {
	recorder := newTestRecorder(newSessionStore())

	stats, err := recorder.Stats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalSessions)
	assert.Zero(t, stats.AverageScore)
	assert.Zero(t, stats.BestScore)
	assert.Zero(t, stats.AverageDurationSeconds)
}

func TestSessionRecorder_Stats_ExcludesOpenSessions(t *testing.T) {
	store := newSessionStore()
	recorder := newTestRecorder(store)

	done, err := recorder.Start(context.Background(), dal.SessionQuiz)
	require.NoError(t, err)
	require.NoError(t, recorder.End(context.Background(), done, 10, 9, 10))

	_, err = recorder.Start(context.Background(), dal.SessionQuiz)
	require.NoError(t, err)

	stats, err := recorder.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalSessions)
	assert.InDelta(t, 0.9, stats.AverageScore, 1e-9)
	assert.InDelta(t, 0.9, stats.BestScore, 1e-9)
}
