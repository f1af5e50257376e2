package commands

import (
	"github.com/spf13/cobra"

	"github.com/burnoutdv/transcrypt/internal/diarize"
	"github.com/burnoutdv/transcrypt/internal/media"
	"github.com/burnoutdv/transcrypt/internal/pipeline"
	"github.com/burnoutdv/transcrypt/internal/transcribe"
)

var (
	resumeLanguage    string
	resumeModel       string
	resumeTempDir     string
	resumeBiasFile    string
	resumeOutput      string
	resumeWhisperURL  string
	resumeArtifactDir string
)

var resumeCmd = &cobra.Command{
	Use:   "resume <project-uid>",
	Short: "Finish transcription for a diarized project",
	Long: `Pick up a project whose pipeline run failed after diarization and
run extraction and transcription for it. Only projects in the
diarized state can be resumed.

Examples:
  transcrypt resume 3
  transcrypt resume 3 --language en --output script.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parseUID(args[0])
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		drv := pipeline.NewDriver(
			store,
			diarize.NewPyannote("", ""),
			media.NewFFmpeg(log),
			transcribe.NewWhisper(resumeWhisperURL, resumeModel),
			pipeline.Options{
				TempDir:     resumeTempDir,
				Language:    resumeLanguage,
				ArtifactDir: resumeArtifactDir,
			},
			log,
		)

		if err := drv.Resume(cmd.Context(), pid); err != nil {
			return err
		}
		log.Info().Int64("project", pid).Msg("resume finished")

		content, err := renderScript(store, pid, resumeBiasFile)
		if err != nil {
			return err
		}
		return writeScript(resumeOutput, content)
	},
}

func init() {
	resumeCmd.Flags().StringVar(&resumeLanguage, "language", "", "Transcription language hint (empty = auto-detect)")
	resumeCmd.Flags().StringVar(&resumeModel, "model", "", "Whisper model size (default medium)")
	resumeCmd.Flags().StringVar(&resumeTempDir, "temp-dir", "", "Directory for per-line audio sub-files")
	resumeCmd.Flags().StringVar(&resumeBiasFile, "bias-file", "", "JSON file with per-language phrases to suppress")
	resumeCmd.Flags().StringVarP(&resumeOutput, "output", "o", "", "Script output file (default stdout)")
	resumeCmd.Flags().StringVar(&resumeWhisperURL, "whisper-url", "", "Transcription sidecar base URL")
	resumeCmd.Flags().StringVar(&resumeArtifactDir, "dump-artifacts", "", "Directory for per-stage JSON dumps")

	rootCmd.AddCommand(resumeCmd)
}
