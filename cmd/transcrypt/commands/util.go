package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/burnoutdv/transcrypt/internal/db"
	"github.com/burnoutdv/transcrypt/internal/script"
)

const maxScriptLines = 99999

// parseUID parses a project uid argument.
func parseUID(arg string) (int64, error) {
	uid, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid project uid %q", arg)
	}
	return uid, nil
}

// renderScript builds the speaker-labeled script for a project. Lines
// come back in start order; bias phrases for the project's dominant
// language are suppressed when a bias file is given.
func renderScript(store *db.Store, projectID int64, biasPath string) (string, error) {
	project := store.FetchProject(projectID)
	if project == nil {
		return "", fmt.Errorf("project %d does not exist", projectID)
	}

	lines := store.ProjectLines(projectID, maxScriptLines)
	names := store.AliasMap(projectID)

	var biases []string
	if biasPath != "" {
		biasMap, err := script.LoadBiasFile(biasPath)
		if err != nil {
			return "", fmt.Errorf("load bias file: %w", err)
		}
		biases = biasMap.ForLanguage(dominantLanguage(lines))
	}

	entries := make([]script.Entry, 0, len(lines))
	for _, l := range lines {
		entries = append(entries, script.Entry{SpeakerID: l.SpeakerID, Text: l.Content})
	}

	return strings.Join(script.Render(entries, names, biases), ""), nil
}

// dominantLanguage returns the language detected for the most lines.
func dominantLanguage(lines []db.Line) string {
	counts := map[string]int{}
	best := ""
	for _, l := range lines {
		if l.Language == "" {
			continue
		}
		counts[l.Language]++
		if best == "" || counts[l.Language] > counts[best] {
			best = l.Language
		}
	}
	return best
}

// writeScript writes the script to the given path, or stdout when the
// path is empty.
func writeScript(path, content string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	log.Info().Str("path", path).Msg("script written")
	return nil
}

// readTokenFile reads an API token from a file, trimming whitespace.
func readTokenFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
