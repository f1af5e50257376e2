// Package media cuts audio segments out of a source recording using
// ffmpeg.
package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Clip is one time range to cut from the source audio.
type Clip struct {
	StartMS int64
	StopMS  int64
}

// Extractor writes audio sub-files for diarized spans.
type Extractor interface {
	// Probe verifies the source is readable and returns its duration in
	// milliseconds.
	Probe(ctx context.Context, audioPath string) (int64, error)
	// Extract writes the clip of the source audio to outPath as WAV.
	Extract(ctx context.Context, audioPath string, clip Clip, outPath string) error
}

// FFmpeg shells out to the ffmpeg/ffprobe binaries.
type FFmpeg struct {
	log zerolog.Logger
}

func NewFFmpeg(log zerolog.Logger) *FFmpeg {
	return &FFmpeg{log: log}
}

// Probe runs ffprobe on the source. An unreadable file is reported here,
// before any sub-file gets written.
func (f *FFmpeg) Probe(ctx context.Context, audioPath string) (int64, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return 0, fmt.Errorf("audio file not readable: %w", err)
	}

	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", audioPath, err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration: %w", err)
	}
	return int64(seconds * 1000), nil
}

// Extract cuts one clip into a 44.1kHz WAV at outPath.
func (f *FFmpeg) Extract(ctx context.Context, audioPath string, clip Clip, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-ss", msToSeconds(clip.StartMS),
		"-to", msToSeconds(clip.StopMS),
		"-i", audioPath,
		"-ar", "44100",
		"-f", "wav",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		f.log.Error().Err(err).Str("out", outPath).Msg("ffmpeg segment extraction failed")
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(out))
	}
	return nil
}

// SpeakerClip is a clip attributed to one speaker token, for track
// isolation.
type SpeakerClip struct {
	Clip
	SpeakerID string
}

// IsolateSpeaker reconstructs a single speaker's track: the speaker's
// clips at their original offsets, silence everywhere else, up to the
// stop of the last span in the list.
func (f *FFmpeg) IsolateSpeaker(ctx context.Context, audioPath string, clips []SpeakerClip, speaker, outPath string) error {
	filter := isolationFilter(clips, speaker)
	if filter == "" {
		return fmt.Errorf("speaker %s has no spans", speaker)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", audioPath,
		"-filter_complex", filter,
		"-map", "[out]",
		"-ar", "44100",
		"-f", "wav",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		f.log.Error().Err(err).Str("speaker", speaker).Msg("ffmpeg speaker isolation failed")
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(out))
	}
	return nil
}

// isolationFilter builds the filter graph for IsolateSpeaker: atrim per
// matching clip, generated silence for every gap, one concat at the end.
func isolationFilter(clips []SpeakerClip, speaker string) string {
	var parts []string
	var labels []string
	cursor := int64(0)
	n := 0

	emitSilence := func(durMS int64) {
		label := fmt.Sprintf("[g%d]", n)
		parts = append(parts, fmt.Sprintf("aevalsrc=0:d=%s%s", msToSeconds(durMS), label))
		labels = append(labels, label)
		n++
	}

	for i, c := range clips {
		if c.SpeakerID == speaker {
			if gap := c.StartMS - cursor; gap > 0 {
				emitSilence(gap)
			}
			label := fmt.Sprintf("[s%d]", n)
			parts = append(parts, fmt.Sprintf("[0]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS%s",
				msToSeconds(c.StartMS), msToSeconds(c.StopMS), label))
			labels = append(labels, label)
			n++
			cursor = c.StopMS
		}
		// Pad silence out to the end of the last known span.
		if i == len(clips)-1 && cursor < c.StopMS {
			emitSilence(c.StopMS - cursor)
		}
	}
	if len(labels) == 0 {
		return ""
	}

	return strings.Join(parts, ";") + ";" +
		strings.Join(labels, "") + fmt.Sprintf("concat=n=%d:v=0:a=1[out]", len(labels))
}

// SegmentPath names the sub-file for the i-th line of a source audio
// file, numbered from 1.
func SegmentPath(tempDir, audioPath string, i int) string {
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(tempDir, fmt.Sprintf("%s_%d.wav", base, i))
}

func msToSeconds(ms int64) string {
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return lines[len(lines)-1]
}
