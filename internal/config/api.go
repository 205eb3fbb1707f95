package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type (
	DB struct {
		URL string `envconfig:"DB_URL" required:"true"`
	}

	CORS struct {
		AllowOrigins []string `envconfig:"ALLOW_ORIGINS" default:"*"`
	}

	HTTP struct {
		ProcessTimeout time.Duration `envconfig:"PROCESS_TIMEOUT" default:"10s"`
		RateLimit      float64       `envconfig:"RATE_LIMIT" default:"25"`
		CORS           CORS
	}

	Server struct {
		ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"10s"`
		Addr              string        `envconfig:"ADDR" default:":8080"`
	}

	Learning struct {
		LearnedMasteryLevel  int           `envconfig:"LEARNED_MASTERY_LEVEL" default:"3"`
		MasteredMasteryLevel int           `envconfig:"MASTERED_MASTERY_LEVEL" default:"4"`
		PointsPerCorrect     int           `envconfig:"POINTS_PER_CORRECT" default:"10"`
		StaleSessionTTL      time.Duration `envconfig:"STALE_SESSION_TTL" default:"12h"`
		StatsCacheTTL        time.Duration `envconfig:"STATS_CACHE_TTL" default:"1m"`
	}

	API struct {
		Dev      bool `envconfig:"DEV" default:"false"`
		DB       DB
		HTTP     HTTP
		Server   Server
		Learning Learning
	}
)

func NewAPI() (*API, error) {
	var res API
	if err := envconfig.Process("APP", &res); err != nil {
		return nil, fmt.Errorf("parse api environment: %w", err)
	}

	return &res, nil
}
