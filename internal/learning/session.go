package learning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

type (
	SessionStore interface {
		InsertSession(ctx context.Context, session dal.SessionRecord) error
		FinishSession(ctx context.Context, id string, wordsStudied, correctAnswers, totalQuestions int) error
		FindSession(ctx context.Context, id string) (*dal.SessionRecord, error)
		InsertQuizAnswer(ctx context.Context, answer dal.QuizAnswer) error
		GetSessionStats(ctx context.Context) (*dal.SessionStats, error)
	}

	SessionRecorder struct {
		repo SessionStore
		now  func() time.Time
		log  *slog.Logger
	}
)

func NewSessionRecorder(repo SessionStore, log *slog.Logger) *SessionRecorder {
	return &SessionRecorder{repo: repo, now: time.Now, log: log}
}

func (s *SessionRecorder) Start(ctx context.Context, sessionType dal.SessionType) (string, error) {
	switch sessionType {
	case dal.SessionFlashcard, dal.SessionQuiz, dal.SessionReview:
	default:
		return "", fmt.Errorf("invalid session type: %q", sessionType)
	}

	session := dal.SessionRecord{
		ID:          uuid.NewString(),
		SessionType: sessionType,
		StartedAt:   s.now(),
	}
	if err := s.repo.InsertSession(ctx, session); err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}

	return session.ID, nil
}

// RecordFinished stores an already completed session in one call; the start
// time is derived from the reported duration.
func (s *SessionRecorder) RecordFinished(ctx context.Context, sessionType dal.SessionType, wordsStudied, correctAnswers, totalQuestions, durationSeconds int) (string, error) {
	switch sessionType {
	case dal.SessionFlashcard, dal.SessionQuiz, dal.SessionReview:
	default:
		return "", fmt.Errorf("invalid session type: %q", sessionType)
	}

	session := dal.SessionRecord{
		ID:          uuid.NewString(),
		SessionType: sessionType,
		StartedAt:   s.now().Add(-time.Duration(durationSeconds) * time.Second),
	}
	if err := s.repo.InsertSession(ctx, session); err != nil {
		return "", fmt.Errorf("record finished session: %w", err)
	}
	if err := s.repo.FinishSession(ctx, session.ID, wordsStudied, correctAnswers, totalQuestions); err != nil {
		return "", fmt.Errorf("finalize recorded session: %w", err)
	}

	return session.ID, nil
}

// End finalizes a session exactly once. A second call on the same id, or a
// call with an unknown id, returns dal.ErrNotFound.
func (s *SessionRecorder) End(ctx context.Context, id string, wordsStudied, correctAnswers, totalQuestions int) error {
	if err := s.repo.FinishSession(ctx, id, wordsStudied, correctAnswers, totalQuestions); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func (s *SessionRecorder) RecordAnswer(ctx context.Context, sessionID string, wordID int64, isCorrect bool, timeTakenSeconds int) error {
	if _, err := s.repo.FindSession(ctx, sessionID); err != nil {
		return fmt.Errorf("find session: %w", err)
	}

	answer := dal.QuizAnswer{
		SessionID:        sessionID,
		WordID:           wordID,
		IsCorrect:        isCorrect,
		TimeTakenSeconds: timeTakenSeconds,
		AnsweredAt:       s.now(),
	}
	if err := s.repo.InsertQuizAnswer(ctx, answer); err != nil {
		return fmt.Errorf("record answer: %w", err)
	}

	return nil
}

// Stats aggregates finalized sessions only; with no finalized sessions all
// fields are zero.
func (s *SessionRecorder) Stats(ctx context.Context) (*dal.SessionStats, error) {
	stats, err := s.repo.GetSessionStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("session stats: %w", err)
	}
	return stats, nil
}
