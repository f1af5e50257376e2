package diarize

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// AnnotationFile is a Diarizer backed by a pre-computed annotation text
// file instead of a sidecar call. One file serves exactly one recording;
// the audio path is ignored.
type AnnotationFile struct {
	path string
	log  zerolog.Logger
}

func NewAnnotationFile(path string, log zerolog.Logger) *AnnotationFile {
	return &AnnotationFile{path: path, log: log}
}

// Diarize parses the annotation file into spans. Malformed lines are
// skipped and logged; a file without a single parsable line is an error.
func (a *AnnotationFile) Diarize(ctx context.Context, audioPath string) ([]Span, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("read annotation file: %w", err)
	}

	spans, skipped := ParseAnnotation(string(data))
	if skipped > 0 {
		a.log.Warn().Int("skipped", skipped).Str("file", a.path).
			Msg("malformed annotation lines skipped")
	}
	if len(spans) == 0 {
		return nil, fmt.Errorf("annotation file %s has no parsable lines", a.path)
	}
	return spans, nil
}
