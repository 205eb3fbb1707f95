package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/o-kovalenko/vocab-trainer/internal/config"
	"github.com/o-kovalenko/vocab-trainer/internal/dal"
	"github.com/o-kovalenko/vocab-trainer/internal/learning"
	"github.com/o-kovalenko/vocab-trainer/pkg/cache"
)

type Dependencies struct {
	Repo   dal.Repository
	Logger *slog.Logger
}

func NewRouter(ctx context.Context, conf *config.API, deps Dependencies) http.Handler {
	e := echo.New()

	e.Use(middleware.RequestID())
	e.Use(loggingMiddleware(ctx, deps.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(conf.HTTP.RateLimit))))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: conf.HTTP.CORS.AllowOrigins,
	}))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: conf.HTTP.ProcessTimeout,
	}))
	e.Use(middleware.Secure())

	e.HTTPErrorHandler = HTTPErrorHandler(deps.Logger)
	e.Validator = NewValidator()

	tracker := learning.NewProgressTracker(deps.Repo,
		conf.Learning.LearnedMasteryLevel, conf.Learning.MasteredMasteryLevel, deps.Logger)
	generator := learning.NewQuizGenerator(deps.Repo, deps.Logger)
	recorder := learning.NewSessionRecorder(deps.Repo, deps.Logger)
	streaks := learning.NewStreakEngine(deps.Repo, conf.Learning.PointsPerCorrect, deps.Logger)

	words := NewWordsHandler(deps.Repo, deps.Logger)
	e.GET("/words", words.FindWords)
	e.GET("/words/sample", words.SampleWords)

	progress := NewProgressHandler(tracker, deps.Logger)
	e.POST("/progress", progress.RecordAnswer)
	e.GET("/progress/stats", progress.Stats)
	e.DELETE("/progress", progress.Reset)

	quiz := NewQuizHandler(generator, recorder, tracker, streaks, deps.Logger)
	e.POST("/quiz/generate", quiz.Generate)
	e.POST("/quiz/session", quiz.SubmitSession)
	e.POST("/quiz/session/start", quiz.StartSession)
	e.PUT("/quiz/session", quiz.EndSession)
	e.POST("/quiz/answer", quiz.RecordAnswer)

	stats := NewStatsHandler(deps.Repo, recorder, cache.NewInMemory(), conf.Learning.StatsCacheTTL, deps.Logger)
	e.GET("/stats", stats.Overview)

	return e
}

func loggingMiddleware(ctx context.Context, log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true, // forwards error to the global error handler, so it can decide appropriate status code
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				log.LogAttrs(ctx, slog.LevelInfo, "REQUEST",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
				)
			} else {
				log.LogAttrs(ctx, slog.LevelError, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
				)
			}
			return nil
		},
	})
}
