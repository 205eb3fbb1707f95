package dal

import "time"

type (
	Difficulty  string
	SessionType string
)

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"

	SessionFlashcard SessionType = "flashcard"
	SessionQuiz      SessionType = "quiz"
	SessionReview    SessionType = "review"
)

type (
	Word struct {
		ID                 int64
		Text               string
		Translation        string
		Pronunciation      string
		PartOfSpeech       string
		Definition         string
		Example            string
		ExampleTranslation string
		Difficulty         Difficulty
		Category           string
		FrequencyRank      int
		CreatedAt          time.Time
	}

	ProgressRecord struct {
		WordID         int64
		Attempts       int
		CorrectAnswers int
		MasteryLevel   int
		FirstSeen      time.Time
		LastSeen       time.Time
	}

	SessionRecord struct {
		ID             string
		SessionType    SessionType
		StartedAt      time.Time
		EndedAt        *time.Time
		WordsStudied   int
		CorrectAnswers int
		TotalQuestions int
	}

	QuizAnswer struct {
		SessionID        string
		WordID           int64
		IsCorrect        bool
		TimeTakenSeconds int
		AnsweredAt       time.Time
	}

	// UserStats is the single cumulative stats row. LastActivityDate is a
	// local calendar date in "2006-01-02" form, empty until the first session.
	UserStats struct {
		WordsLearned     int
		TotalPoints      int
		StreakDays       int
		TotalSessions    int
		LastActivityDate string
		Badges           []string
	}
)
