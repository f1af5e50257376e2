// Package diarize splits an audio recording into time spans attributed
// to anonymous speaker tokens.
package diarize

import "context"

// Span is one diarized time range within the source audio.
type Span struct {
	StartMS   int64  `json:"start_ms"`
	StopMS    int64  `json:"stop_ms"`
	SpeakerID string `json:"speaker_id"`
}

// Diarizer runs speaker diarization over an audio file.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string) ([]Span, error)
}

// Speakers returns the distinct speaker tokens of a span list.
func Speakers(spans []Span) []string {
	seen := map[string]bool{}
	var tokens []string
	for _, s := range spans {
		if !seen[s.SpeakerID] {
			seen[s.SpeakerID] = true
			tokens = append(tokens, s.SpeakerID)
		}
	}
	return tokens
}
