package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
	sqlrepo "github.com/o-kovalenko/vocab-trainer/internal/dal/sql"
)

var (
	source string
	dbURL  string
)

type catalogEntry struct {
	Text               string `json:"text"`
	Translation        string `json:"translation"`
	Pronunciation      string `json:"pronunciation"`
	PartOfSpeech       string `json:"part_of_speech"`
	Definition         string `json:"definition"`
	Example            string `json:"example"`
	ExampleTranslation string `json:"example_translation"`
	Difficulty         string `json:"difficulty"`
	Category           string `json:"category"`
	FrequencyRank      int    `json:"frequency_rank"`
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	if err := validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	db, err := sql.Open("sqlite", dbURL)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(2)
	}
	defer db.Close()

	if err = sqlrepo.InitSchema(ctx, db); err != nil {
		fmt.Printf("failed to init database schema: %v\n", err)
		os.Exit(2)
	}

	entries, err := parseCatalog(source)
	if err != nil {
		fmt.Printf("failed to parse catalog: %v\n", err)
		os.Exit(3)
	}

	imported := 0
	for _, entry := range entries {
		word, err := toWord(entry)
		if err != nil {
			fmt.Printf("skipping invalid entry %q: %v\n", entry.Text, err)
			continue
		}

		query, args, err := dal.UpsertWordQuery(word).ToSql()
		if err != nil {
			fmt.Printf("failed to build query: %v\n", err)
			os.Exit(4)
		}

		if _, err = db.ExecContext(ctx, query, args...); err != nil {
			fmt.Printf("failed to import word %q: %v\n", word.Text, err)
			os.Exit(4)
		}
		imported++
	}

	fmt.Printf("done: %d words imported\n", imported)
}

func parseCatalog(path string) ([]catalogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var entries []catalogEntry
	if err = json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	return entries, nil
}

func toWord(entry catalogEntry) (dal.Word, error) {
	text := strings.TrimSpace(strings.ToLower(entry.Text))
	translation := strings.TrimSpace(entry.Translation)
	if text == "" || translation == "" {
		return dal.Word{}, errors.New("text and translation are required")
	}

	difficulty := dal.Difficulty(entry.Difficulty)
	switch difficulty {
	case "":
		difficulty = dal.DifficultyBeginner
	case dal.DifficultyBeginner, dal.DifficultyIntermediate, dal.DifficultyAdvanced:
	default:
		return dal.Word{}, fmt.Errorf("invalid difficulty: %q", entry.Difficulty)
	}

	return dal.Word{
		Text:               text,
		Translation:        translation,
		Pronunciation:      strings.TrimSpace(entry.Pronunciation),
		PartOfSpeech:       strings.TrimSpace(entry.PartOfSpeech),
		Definition:         strings.TrimSpace(entry.Definition),
		Example:            strings.TrimSpace(entry.Example),
		ExampleTranslation: strings.TrimSpace(entry.ExampleTranslation),
		Difficulty:         difficulty,
		Category:           strings.TrimSpace(strings.ToLower(entry.Category)),
		FrequencyRank:      entry.FrequencyRank,
	}, nil
}

func validate() error {
	if source == "" {
		return errors.New("source file is required")
	}

	if dbURL == "" {
		return errors.New("database URL is required")
	}

	return nil
}

func init() {
	flag.StringVar(&source, "source", "", "source catalog file (json)")
	flag.StringVar(&dbURL, "db-url", "", "database URL")
	flag.Parse()
}
