// Package main provides the transcrypt CLI.
//
// Usage:
//
//	transcrypt [flags] <command> [args]
//
// Commands:
//
//	process  - Run the full pipeline over an audio file
//	resume   - Finish transcription for a diarized project
//	import   - Load a pipeline artifact dump into the database
//	export   - Write a project's script (or a speaker's audio) to disk
//	speaker  - Manage speaker aliases
//	browse   - Browse projects in a terminal UI
//
// All commands share the --db flag; the default database file is
// transcrypts.db in the working directory.
package main

import (
	"fmt"
	"os"

	"github.com/burnoutdv/transcrypt/cmd/transcrypt/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
