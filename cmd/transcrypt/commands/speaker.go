package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/burnoutdv/transcrypt/internal/db"
)

var speakerCmd = &cobra.Command{
	Use:   "speaker",
	Short: "Manage speaker aliases",
	Long: `Manage the display aliases of a project's diarized speakers.

Aliases replace the raw SPEAKER_NN tokens in rendered scripts.
Setting an empty alias resets a speaker back to its token.`,
}

var speakerSetCmd = &cobra.Command{
	Use:   "set <project-uid> <token> <alias>",
	Short: "Set a speaker's display alias",
	Long: `Set the display alias for one diarized speaker of a project.

Examples:
  transcrypt speaker set 3 SPEAKER_00 Max
  transcrypt speaker set 3 SPEAKER_00 ""   (reset to the token)`,
	Args: cobra.ExactArgs(3),
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

		name, err := setSpeakerAlias(store, pid, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", args[1], name)
		return nil
	},
}

// setSpeakerAlias updates one speaker's alias and returns the name now
// on record. The read-back can come up empty even after a successful
// update; the effective alias is reported in that case.
func setSpeakerAlias(store *db.Store, projectID int64, token, alias string) (string, error) {
	if !store.UpdateSpeakerAlias(projectID, token, alias) {
		return "", fmt.Errorf("project %d has no speaker %s", projectID, token)
	}
	if sp := store.FetchSpeaker(projectID, token); sp != nil {
		return sp.Name, nil
	}
	if alias != "" {
		return alias, nil
	}
	return token, nil
}

var speakerListCmd = &cobra.Command{
	Use:   "list <project-uid>",
	Short: "List a project's speakers",
	Args:  cobra.ExactArgs(1),
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

		speakers := store.ProjectSpeakers(pid)
		if len(speakers) == 0 {
			fmt.Printf("Project %d has no speakers\n", pid)
			return nil
		}
		for _, sp := range speakers {
			fmt.Printf("%-12s %s\n", sp.SpeakerID, sp.Name)
		}
		return nil
	},
}

func init() {
	speakerCmd.AddCommand(speakerSetCmd)
	speakerCmd.AddCommand(speakerListCmd)

	rootCmd.AddCommand(speakerCmd)
}
