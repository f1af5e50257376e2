package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

const importJSON = `[
	{"speaker": "SPEAKER_00", "start": 1240, "end": 3062, "file": "temp/hunt_1.wav",
	 "transcribe": {"text": "hello there", "language": "en"}},
	{"speaker_id": "SPEAKER_01", "start_ms": 4514, "stop_ms": 5661, "file": "temp/hunt_2.wav",
	 "transcribe": {"text": "general kenobi"}},
	{"speaker": "SPEAKER_00", "start": 6674, "end": 7095, "file": "temp/hunt_3.wav",
	 "transcribe": {"text": "   ", "language": "en"}}
]`

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "last_run.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write import file: %v", err)
	}
	return path
}

func TestImport(t *testing.T) {
	store := newTestStore(t)
	drv := NewDriver(store, &fakeDiarizer{}, &fakeExtractor{}, &fakeTranscriber{},
		Options{TempDir: t.TempDir()}, zerolog.Nop())

	pid, err := drv.Import(writeImportFile(t, importJSON), "/audio/hunt.wav")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	p := store.FetchProject(pid)
	if p == nil {
		t.Fatal("imported project missing")
	}
	if Status(p.Status) != StatusImported {
		t.Errorf("status = %s, want %s", Status(p.Status), StatusImported)
	}
	if p.GivenName != "Imported Project" {
		t.Errorf("GivenName = %q", p.GivenName)
	}
	if p.NumLines != 3 || p.NumSpeakers != 2 {
		t.Errorf("NumLines=%d NumSpeakers=%d, want 3/2", p.NumLines, p.NumSpeakers)
	}
	if p.NumTrueLines != 2 {
		t.Errorf("NumTrueLines = %d, want 2", p.NumTrueLines)
	}
	// (3062-1240) + (5661-4514) + (7095-6674)
	if p.LengthMS != 1822+1147+421 {
		t.Errorf("LengthMS = %d", p.LengthMS)
	}

	lines := store.ProjectLines(pid, 500)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	// Both key spellings land in the same columns.
	if lines[1].StartMS != 4514 || lines[1].StopMS != 5661 {
		t.Errorf("lines[1] offsets = %d-%d", lines[1].StartMS, lines[1].StopMS)
	}
	// Missing language falls back to "un".
	if lines[1].Language != "un" {
		t.Errorf("lines[1].Language = %q, want un", lines[1].Language)
	}

	// previous/next chain in file order.
	if lines[0].Previous != nil {
		t.Error("first line has a previous link")
	}
	if lines[0].Next == nil || *lines[0].Next != lines[1].UID {
		t.Errorf("lines[0].Next = %v, want %d", lines[0].Next, lines[1].UID)
	}
	if lines[1].Previous == nil || *lines[1].Previous != lines[0].UID {
		t.Errorf("lines[1].Previous = %v, want %d", lines[1].Previous, lines[0].UID)
	}
	if lines[2].Next != nil {
		t.Error("last line has a next link")
	}

	if len(store.ProjectSpeakers(pid)) != 2 {
		t.Errorf("speaker rows = %d, want 2", len(store.ProjectSpeakers(pid)))
	}
}

func TestImportMalformed(t *testing.T) {
	store := newTestStore(t)
	drv := NewDriver(store, &fakeDiarizer{}, &fakeExtractor{}, &fakeTranscriber{},
		Options{}, zerolog.Nop())

	if _, err := drv.Import(writeImportFile(t, "{not a list"), ""); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := drv.Import(writeImportFile(t, "[]"), ""); err == nil {
		t.Fatal("expected error for empty record list")
	}
	if _, err := drv.Import("/does/not/exist.json", ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}
