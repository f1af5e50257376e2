package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burnoutdv/transcrypt/internal/media"
)

var (
	exportOutput     string
	exportBiasFile   string
	exportSpeaker    string
	exportSpeakerOut string
)

var exportCmd = &cobra.Command{
	Use:   "export <project-uid>",
	Short: "Write a project's script (or a speaker's audio) to disk",
	Long: `Render the speaker-labeled script for a stored project.

With --speaker, additionally reconstruct that speaker's audio track
from the original recording: the speaker's spans at their original
offsets, silence everywhere else.

Examples:
  transcrypt export 3 --output script.txt
  transcrypt export 3 --speaker SPEAKER_01 --speaker-out host.wav`,
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

		content, err := renderScript(store, pid, exportBiasFile)
		if err != nil {
			return err
		}
		if err := writeScript(exportOutput, content); err != nil {
			return err
		}

		if exportSpeaker == "" {
			return nil
		}

		project := store.FetchProject(pid)
		if project == nil {
			return fmt.Errorf("project %d does not exist", pid)
		}
		if project.FilePath == "" {
			return fmt.Errorf("project %d has no source audio on record", pid)
		}

		lines := store.ProjectLines(pid, maxScriptLines)
		clips := make([]media.SpeakerClip, 0, len(lines))
		for _, l := range lines {
			clips = append(clips, media.SpeakerClip{
				Clip:      media.Clip{StartMS: l.StartMS, StopMS: l.StopMS},
				SpeakerID: l.SpeakerID,
			})
		}

		outPath := exportSpeakerOut
		if outPath == "" {
			outPath = exportSpeaker + ".wav"
		}
		ffmpeg := media.NewFFmpeg(log)
		if err := ffmpeg.IsolateSpeaker(cmd.Context(), project.FilePath, clips, exportSpeaker, outPath); err != nil {
			return err
		}
		log.Info().Str("speaker", exportSpeaker).Str("path", outPath).Msg("speaker track written")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Script output file (default stdout)")
	exportCmd.Flags().StringVar(&exportBiasFile, "bias-file", "", "JSON file with per-language phrases to suppress")
	exportCmd.Flags().StringVar(&exportSpeaker, "speaker", "", "Speaker token whose audio track to reconstruct")
	exportCmd.Flags().StringVar(&exportSpeakerOut, "speaker-out", "", "Output path for the speaker track (default <token>.wav)")

	rootCmd.AddCommand(exportCmd)
}
