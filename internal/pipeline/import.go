package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/burnoutdv/transcrypt/internal/db"
)

// importRecord is one entry of an annotated-transcript JSON file. Both
// historic key spellings are accepted per field.
type importRecord struct {
	Speaker    string   `json:"speaker"`
	SpeakerID  string   `json:"speaker_id"`
	Start      *float64 `json:"start"`
	StartMS    *float64 `json:"start_ms"`
	End        *float64 `json:"end"`
	StopMS     *float64 `json:"stop_ms"`
	File       string   `json:"file"`
	Transcribe struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	} `json:"transcribe"`
}

func (r importRecord) speaker() string {
	if r.Speaker != "" {
		return r.Speaker
	}
	return r.SpeakerID
}

func (r importRecord) startMS() int64 {
	if r.Start != nil {
		return int64(*r.Start)
	}
	if r.StartMS != nil {
		return int64(*r.StartMS)
	}
	return 0
}

func (r importRecord) stopMS() int64 {
	if r.End != nil {
		return int64(*r.End)
	}
	if r.StopMS != nil {
		return int64(*r.StopMS)
	}
	return 0
}

func (r importRecord) language() string {
	if r.Transcribe.Language == "" {
		return "un"
	}
	return r.Transcribe.Language
}

// Import populates a project directly from an annotated-transcript JSON
// file, bypassing all pipeline stages. The project lands in the
// terminal imported status; lines are chained through previous/next in
// file order. Returns the new project's uid.
func (d *Driver) Import(path, audioPath string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, fmt.Errorf("read import file: %w", err)
	}
	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return -1, fmt.Errorf("parse import file %s: %w", path, err)
	}
	if len(records) == 0 {
		return -1, fmt.Errorf("import file %s holds no records", path)
	}

	pid := d.store.CreateProject(db.ProjectFields{
		GivenName: db.Ptr("Imported Project"),
		Status:    db.Ptr(int(StatusImported)),
		NumLines:  db.Ptr(len(records)),
		FilePath:  db.Ptr(audioPath),
	})
	if pid < 0 {
		return -1, fmt.Errorf("create imported project")
	}

	var previous int64 = -1
	seen := map[string]bool{}
	var totalLength int64
	trueLines := 0

	for _, rec := range records {
		fields := db.LineFields{
			StartMS:     db.Ptr(rec.startMS()),
			StopMS:      db.Ptr(rec.stopMS()),
			LengthMS:    db.Ptr(rec.stopMS() - rec.startMS()),
			SubFilePath: db.Ptr(rec.File),
			Content:     db.Ptr(rec.Transcribe.Text),
			Language:    db.Ptr(rec.language()),
		}
		if previous > 0 {
			fields.Previous = db.Ptr(previous)
		}
		current := d.store.CreateLine(pid, rec.speaker(), fields)
		if current < 0 {
			return pid, fmt.Errorf("import line into project %d", pid)
		}
		if previous > 0 {
			d.store.UpdateLine(previous, db.LineFields{Next: db.Ptr(current)})
		}
		previous = current

		totalLength += rec.stopMS() - rec.startMS()
		seen[rec.speaker()] = true
		if strings.TrimSpace(rec.Transcribe.Text) != "" {
			trueLines++
		}
	}

	for token := range seen {
		d.store.CreateSpeaker(pid, token, "")
	}
	d.store.UpdateProject(pid, db.ProjectFields{
		NumSpeakers:  db.Ptr(len(seen)),
		LengthMS:     db.Ptr(totalLength),
		NumTrueLines: db.Ptr(trueLines),
	})

	d.log.Info().Int64("project", pid).Int("lines", len(records)).Int("speakers", len(seen)).
		Msg("import finished")
	return pid, nil
}
