package commands

import (
	"github.com/spf13/cobra"

	"github.com/burnoutdv/transcrypt/internal/app"

	tea "github.com/charmbracelet/bubbletea"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse projects in a terminal UI",
	Long: `Open an interactive terminal browser over the project database:
a project list with a per-project script view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		program := tea.NewProgram(app.New(store), tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
