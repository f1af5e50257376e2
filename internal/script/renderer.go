// Package script renders finalized transcription lines into a
// speaker-labeled dialogue script.
package script

import "strings"

// Entry is one finalized line: a speaker token plus its transcribed text.
type Entry struct {
	SpeakerID string
	Text      string
}

// Render produces one output line per entry in the form
// "[DisplayName]: text\n". The display name falls back to the raw token
// when the name map has no entry. An entry whose trimmed text exactly
// matches a bias string is suppressed entirely.
func Render(entries []Entry, names map[string]string, biases []string) []string {
	output := []string{}
	for _, e := range entries {
		clear := Cleanup(e.Text, biases)
		if clear == "" {
			continue
		}
		name, ok := names[e.SpeakerID]
		if !ok {
			name = e.SpeakerID
		}
		output = append(output, "["+name+"]: "+clear+"\n")
	}
	return output
}

// Cleanup trims the text and blanks it when it exactly matches a bias
// string. This is an exact-string filter, not fuzzy matching.
func Cleanup(text string, biases []string) string {
	trimmed := strings.TrimSpace(text)
	for _, bias := range biases {
		if trimmed == bias {
			return ""
		}
	}
	return trimmed
}
