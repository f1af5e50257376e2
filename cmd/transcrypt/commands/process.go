package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/burnoutdv/transcrypt/internal/db"
	"github.com/burnoutdv/transcrypt/internal/diarize"
	"github.com/burnoutdv/transcrypt/internal/media"
	"github.com/burnoutdv/transcrypt/internal/pipeline"
	"github.com/burnoutdv/transcrypt/internal/transcribe"
)

var (
	processName        string
	processAnnotation  string
	processLanguage    string
	processModel       string
	processTempDir     string
	processBiasFile    string
	processOutput      string
	processToken       string
	processTokenFile   string
	processDiarizerURL string
	processWhisperURL  string
	processArtifactDir string
)

var processCmd = &cobra.Command{
	Use:   "process <audio-file>",
	Short: "Run the full pipeline over an audio file",
	Long: `Run diarization, segment extraction and transcription over one
audio file, then print the speaker-labeled script.

The diarization sidecar needs a pyannote API token; pass it with
--token or point --token-file at a file containing it. With
--annotation, diarization reads a pre-computed pyannote annotation
text file instead of calling the sidecar.

Examples:
  transcrypt process interview.wav --token-file ~/.pyannote-token
  transcrypt process talk.mp3 --language de --model large --output talk.txt
  transcrypt process raw.wav --annotation raw.txt
  transcrypt process raw.wav --dump-artifacts ./artifacts`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		audioPath := args[0]

		token := processToken
		if token == "" && processTokenFile != "" {
			var err error
			if token, err = readTokenFile(processTokenFile); err != nil {
				return err
			}
		}
		if token == "" {
			token = os.Getenv("HUGGING_FACE_TOKEN")
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var diarizer diarize.Diarizer = diarize.NewPyannote(processDiarizerURL, token)
		if processAnnotation != "" {
			diarizer = diarize.NewAnnotationFile(processAnnotation, log)
		}

		drv := pipeline.NewDriver(
			store,
			diarizer,
			media.NewFFmpeg(log),
			transcribe.NewWhisper(processWhisperURL, processModel),
			pipeline.Options{
				TempDir:     processTempDir,
				Language:    processLanguage,
				ArtifactDir: processArtifactDir,
			},
			log,
		)

		pid, err := drv.Process(cmd.Context(), audioPath)
		if err != nil {
			return err
		}
		if processName != "" {
			store.UpdateProject(pid, db.ProjectFields{GivenName: db.Ptr(processName)})
		}
		log.Info().Int64("project", pid).Msg("pipeline finished")

		content, err := renderScript(store, pid, processBiasFile)
		if err != nil {
			return err
		}
		return writeScript(processOutput, content)
	},
}

func init() {
	processCmd.Flags().StringVar(&processName, "name", "", "Display name for the new project")
	processCmd.Flags().StringVar(&processAnnotation, "annotation", "", "Pre-computed annotation text file (skips the diarization sidecar)")
	processCmd.Flags().StringVar(&processLanguage, "language", "", "Transcription language hint (empty = auto-detect)")
	processCmd.Flags().StringVar(&processModel, "model", "", "Whisper model size (default medium)")
	processCmd.Flags().StringVar(&processTempDir, "temp-dir", "", "Directory for per-line audio sub-files")
	processCmd.Flags().StringVar(&processBiasFile, "bias-file", "", "JSON file with per-language phrases to suppress")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Script output file (default stdout)")
	processCmd.Flags().StringVar(&processToken, "token", "", "pyannote API token (default $HUGGING_FACE_TOKEN)")
	processCmd.Flags().StringVar(&processTokenFile, "token-file", "", "File containing the pyannote API token")
	processCmd.Flags().StringVar(&processDiarizerURL, "diarizer-url", "", "Diarization sidecar base URL")
	processCmd.Flags().StringVar(&processWhisperURL, "whisper-url", "", "Transcription sidecar base URL")
	processCmd.Flags().StringVar(&processArtifactDir, "dump-artifacts", "", "Directory for per-stage JSON dumps")

	rootCmd.AddCommand(processCmd)
}
