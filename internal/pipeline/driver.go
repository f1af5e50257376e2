// Package pipeline sequences diarization, segment extraction and
// transcription over one project, advancing its status as stages
// complete.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/burnoutdv/transcrypt/internal/db"
	"github.com/burnoutdv/transcrypt/internal/diarize"
	"github.com/burnoutdv/transcrypt/internal/media"
	"github.com/burnoutdv/transcrypt/internal/transcribe"
)

// maxProjectLines bounds per-project line queries.
const maxProjectLines = 99999

// Options configures one driver instance.
type Options struct {
	// TempDir receives the per-line audio sub-files.
	TempDir string
	// Language is the transcription hint; empty lets the backend detect.
	Language string
	// ArtifactDir, when set, receives JSON dumps of every intermediate
	// stage result for later inspection or import.
	ArtifactDir string
}

// Driver runs the transcription pipeline. It depends only on the three
// adapter interfaces and the repository; every stage blocks until its
// adapter returns. Exactly one driver is assumed active per storage
// location.
type Driver struct {
	store       *db.Store
	diarizer    diarize.Diarizer
	extractor   media.Extractor
	transcriber transcribe.Transcriber
	opts        Options
	log         zerolog.Logger
}

func NewDriver(store *db.Store, d diarize.Diarizer, e media.Extractor, t transcribe.Transcriber, opts Options, log zerolog.Logger) *Driver {
	if opts.TempDir == "" {
		opts.TempDir = filepath.Join(os.TempDir(), "transcrypt")
	}
	return &Driver{
		store:       store,
		diarizer:    d,
		extractor:   e,
		transcriber: t,
		opts:        opts,
		log:         log,
	}
}

// Process runs the full pipeline over one audio file and returns the new
// project's uid. A stage failure leaves the project at its last reached
// status; already-persisted lines are not rolled back, so the project
// stays resumable where the status allows.
func (d *Driver) Process(ctx context.Context, audioPath string) (int64, error) {
	pid := d.store.CreateProject(db.ProjectFields{
		FilePath: db.Ptr(audioPath),
		Status:   db.Ptr(int(StatusCreated)),
	})
	if pid < 0 {
		return -1, fmt.Errorf("create project for %s", audioPath)
	}
	d.log.Info().Int64("project", pid).Str("file", audioPath).Msg("project created, calling diarization")

	spans, err := d.diarizer.Diarize(ctx, audioPath)
	if err != nil {
		return pid, fmt.Errorf("diarization: %w", err)
	}
	d.dumpArtifact("Crypt002-refined.json", spans)

	numSpeakers := len(diarize.Speakers(spans))
	d.log.Info().Int64("project", pid).Int("spans", len(spans)).Int("speakers", numSpeakers).
		Msg("diarization done")

	if !d.store.CreateBulkLines(pid, toStoreSpans(spans)) {
		return pid, fmt.Errorf("persist %d diarized lines for project %d", len(spans), pid)
	}
	d.store.UpdateProject(pid, db.ProjectFields{
		NumSpeakers: db.Ptr(numSpeakers),
		NumLines:    db.Ptr(len(spans)),
		Status:      db.Ptr(int(StatusDiarized)),
	})

	if err := d.processLines(ctx, pid, audioPath); err != nil {
		return pid, err
	}

	d.store.UpdateProject(pid, db.ProjectFields{Status: db.Ptr(int(StatusTranscribed))})
	d.log.Info().Int64("project", pid).Msg("pipeline finished")
	return pid, nil
}

// Resume re-runs segment extraction and transcription for an existing
// project. It is rejected without state change unless the project sits
// exactly at StatusDiarized.
func (d *Driver) Resume(ctx context.Context, projectID int64) error {
	project := d.store.FetchProject(projectID)
	if project == nil {
		return fmt.Errorf("project %d does not exist", projectID)
	}
	if Status(project.Status) != StatusDiarized {
		return fmt.Errorf("cannot resume project %d in status %s, want %s",
			projectID, Status(project.Status), StatusDiarized)
	}

	if err := d.processLines(ctx, projectID, project.FilePath); err != nil {
		return err
	}

	d.store.UpdateProject(projectID, db.ProjectFields{Status: db.Ptr(int(StatusResumed))})
	d.log.Info().Int64("project", projectID).Msg("resume finished")
	return nil
}

// processLines is the shared tail of Process and Resume: cut one
// sub-file per line, then transcribe each. Extraction problems abort
// before any transcription call and before any status transition.
func (d *Driver) processLines(ctx context.Context, projectID int64, audioPath string) error {
	lines := d.store.ProjectLines(projectID, maxProjectLines)
	if len(lines) == 0 {
		return fmt.Errorf("project %d has no lines to process", projectID)
	}

	lengthMS, err := d.extractor.Probe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("segment extraction: %w", err)
	}
	d.store.UpdateProject(projectID, db.ProjectFields{LengthMS: db.Ptr(lengthMS)})

	subFiles := make([]string, len(lines))
	for i, line := range lines {
		out := media.SegmentPath(d.opts.TempDir, audioPath, i+1)
		clip := media.Clip{StartMS: line.StartMS, StopMS: line.StopMS}
		if err := d.extractor.Extract(ctx, audioPath, clip, out); err != nil {
			return fmt.Errorf("segment extraction: line %d: %w", line.UID, err)
		}
		d.store.UpdateLine(line.UID, db.LineFields{SubFilePath: db.Ptr(out)})
		subFiles[i] = out
	}
	d.dumpArtifact("Crypt003-enriched.json", subFiles)
	d.log.Info().Int64("project", projectID).Int("lines", len(lines)).
		Msg("sub-files created, calling transcription per line")

	trueLines := 0
	results := make([]transcribe.Result, 0, len(lines))
	for i, line := range lines {
		res, err := d.transcriber.Transcribe(ctx, subFiles[i], d.opts.Language)
		if err != nil {
			return fmt.Errorf("transcription: line %d: %w", line.UID, err)
		}
		d.store.UpdateLine(line.UID, db.LineFields{
			Content:  db.Ptr(res.Text),
			Language: db.Ptr(res.Language),
		})
		if strings.TrimSpace(res.Text) != "" {
			trueLines++
		}
		results = append(results, res)
	}
	d.dumpArtifact("Crypt004-diamond.json", results)

	d.store.UpdateProject(projectID, db.ProjectFields{NumTrueLines: db.Ptr(trueLines)})
	return nil
}

// dumpArtifact writes an intermediate stage result as indented JSON into
// the artifact directory, when one is configured.
func (d *Driver) dumpArtifact(name string, v any) {
	if d.opts.ArtifactDir == "" {
		return
	}
	data, err := json.MarshalIndent(v, "", "   ")
	if err != nil {
		d.log.Warn().Err(err).Str("artifact", name).Msg("artifact dump failed")
		return
	}
	if err := os.MkdirAll(d.opts.ArtifactDir, 0o755); err != nil {
		d.log.Warn().Err(err).Str("artifact", name).Msg("artifact dump failed")
		return
	}
	path := filepath.Join(d.opts.ArtifactDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		d.log.Warn().Err(err).Str("artifact", name).Msg("artifact dump failed")
	}
}

func toStoreSpans(spans []diarize.Span) []db.Span {
	out := make([]db.Span, len(spans))
	for i, s := range spans {
		out[i] = db.Span{StartMS: s.StartMS, StopMS: s.StopMS, SpeakerID: s.SpeakerID}
	}
	return out
}
