// Package commands implements the transcrypt command tree.
package commands

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/burnoutdv/transcrypt/internal/db"
)

var (
	dbPath   string
	logLevel string

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "transcrypt",
	Short: "Speaker-labeled transcription pipeline",
	Long: `Transcrypt turns a recording into a speaker-labeled script.

The pipeline diarizes the audio, cuts one sub-file per speaker turn,
transcribes each sub-file, and stores everything in a local SQLite
database. The diarization and transcription stages talk to local
HTTP sidecars (pyannote and faster-whisper).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = setupLogger(logLevel)
	},
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", envOr("TRANSCRYPT_DB", db.DefaultDBPath), "SQLite database file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupLogger(levelName string) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// openStore opens the configured database and ensures the schema.
func openStore() (*db.Store, error) {
	store, err := db.Open(dbPath, log)
	if err != nil {
		return nil, err
	}
	store.EnsureSchema()
	return store, nil
}
