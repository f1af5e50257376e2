package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burnoutdv/transcrypt/internal/diarize"
	"github.com/burnoutdv/transcrypt/internal/media"
	"github.com/burnoutdv/transcrypt/internal/pipeline"
	"github.com/burnoutdv/transcrypt/internal/transcribe"
)

var importAudio string

var importCmd = &cobra.Command{
	Use:   "import <json-file>",
	Short: "Load a pipeline artifact dump into the database",
	Long: `Create a project from a JSON artifact dump of an earlier pipeline
run. The records keep their file order; each line is chained to its
neighbours. Both the long (speaker_id/start_ms/stop_ms) and short
(speaker/start/end) key spellings are accepted.

Examples:
  transcrypt import artifacts/Crypt004-diamond.json
  transcrypt import last_run.json --audio interview.wav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		drv := pipeline.NewDriver(
			store,
			diarize.NewPyannote("", ""),
			media.NewFFmpeg(log),
			transcribe.NewWhisper("", ""),
			pipeline.Options{},
			log,
		)

		pid, err := drv.Import(args[0], importAudio)
		if err != nil {
			return err
		}
		fmt.Printf("Imported project %d\n", pid)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importAudio, "audio", "", "Original audio file to associate with the project")

	rootCmd.AddCommand(importCmd)
}
