package diarize

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func writeAnnotationFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annotation.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write annotation file: %v", err)
	}
	return path
}

func TestAnnotationFileDiarize(t *testing.T) {
	path := writeAnnotationFile(t, `[ 00:00:01.240 -->  00:00:03.062] A SPEAKER_00
[ 00:00:04.514 -->  00:00:05.661] B SPEAKER_01
`)
	d := NewAnnotationFile(path, zerolog.Nop())

	spans, err := d.Diarize(context.Background(), "/audio/ignored.wav")
	if err != nil {
		t.Fatalf("diarize: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].StartMS != 1240 || spans[0].StopMS != 3062 {
		t.Errorf("spans[0] = %d-%d", spans[0].StartMS, spans[0].StopMS)
	}
	if spans[1].SpeakerID != "SPEAKER_01" {
		t.Errorf("spans[1].SpeakerID = %q", spans[1].SpeakerID)
	}
}

func TestAnnotationFileSkipsMalformed(t *testing.T) {
	path := writeAnnotationFile(t, `garbage line
[ 00:00:01.240 -->  00:00:03.062] A SPEAKER_00
also not a span
`)
	d := NewAnnotationFile(path, zerolog.Nop())

	spans, err := d.Diarize(context.Background(), "")
	if err != nil {
		t.Fatalf("diarize: %v", err)
	}
	if len(spans) != 1 {
		t.Errorf("got %d spans, want 1", len(spans))
	}
}

func TestAnnotationFileErrors(t *testing.T) {
	d := NewAnnotationFile("/does/not/exist.txt", zerolog.Nop())
	if _, err := d.Diarize(context.Background(), ""); err == nil {
		t.Error("expected error for missing file")
	}

	empty := NewAnnotationFile(writeAnnotationFile(t, "nothing parsable here\n"), zerolog.Nop())
	if _, err := empty.Diarize(context.Background(), ""); err == nil {
		t.Error("expected error for file without parsable lines")
	}
}
