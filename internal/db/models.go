// Package db provides SQLite persistence for transcrypt projects,
// lines and speakers.
package db

import "time"

// Project is one transcription run over a single audio file.
type Project struct {
	UID          int64
	GivenName    string
	NumSpeakers  int
	LengthMS     int64
	FilePath     string
	Status       int
	NumLines     int
	NumTrueLines int
	LastChange   time.Time
	Created      time.Time
}

// Line is one contiguous span of speech attributed to one speaker.
// Content and Language stay empty until the transcription stage,
// SubFilePath until segment extraction. Previous/Next form an optional
// doubly-linked temporal ordering; both are nil unless a flow chained
// them explicitly.
type Line struct {
	UID         int64
	ProjectID   int64
	SpeakerID   string
	Content     string
	SubFilePath string
	LengthMS    int64
	Language    string
	StartMS     int64
	StopMS      int64
	Previous    *int64
	Next        *int64
}

// Speaker maps a diarization token (e.g. SPEAKER_00) to a display alias
// within one project. Name defaults to the token itself.
type Speaker struct {
	UID       int64
	ProjectID int64
	SpeakerID string
	Name      string
}

// Span is the input unit for bulk line creation: one diarized time range
// attributed to a speaker token.
type Span struct {
	StartMS   int64
	StopMS    int64
	SpeakerID string
}
