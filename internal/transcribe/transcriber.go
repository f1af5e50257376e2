// Package transcribe provides speech-to-text over extracted audio
// sub-files.
package transcribe

import "context"

// Result is the transcription of one sub-file.
type Result struct {
	// Text is the transcribed content, untrimmed.
	Text string `json:"text"`
	// Language is the detected 2-letter code, e.g. "de". "un" when the
	// backend reports none.
	Language string `json:"language"`
}

// Transcriber converts one audio sub-file to text. The language hint is
// optional; an empty hint lets the backend detect the language.
type Transcriber interface {
	Transcribe(ctx context.Context, subFilePath, languageHint string) (Result, error)
}
