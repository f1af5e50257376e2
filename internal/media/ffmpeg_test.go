package media

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestMsToSeconds(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "0.000"},
		{7095, "7.095"},
		{1240, "1.240"},
		{3723500, "3723.500"},
	}
	for _, c := range cases {
		if got := msToSeconds(c.ms); got != c.want {
			t.Errorf("msToSeconds(%d) = %q, want %q", c.ms, got, c.want)
		}
	}
}

func TestSegmentPath(t *testing.T) {
	got := SegmentPath("/tmp/work", "/audio/hunttest.wav", 3)
	want := filepath.Join("/tmp/work", "hunttest_3.wav")
	if got != want {
		t.Errorf("SegmentPath = %q, want %q", got, want)
	}
}

func TestIsolationFilter(t *testing.T) {
	clips := []SpeakerClip{
		{Clip: Clip{StartMS: 1000, StopMS: 2000}, SpeakerID: "SPEAKER_00"},
		{Clip: Clip{StartMS: 2500, StopMS: 3000}, SpeakerID: "SPEAKER_01"},
		{Clip: Clip{StartMS: 3000, StopMS: 4000}, SpeakerID: "SPEAKER_00"},
	}

	filter := isolationFilter(clips, "SPEAKER_00")
	if filter == "" {
		t.Fatal("empty filter for present speaker")
	}

	// Leading silence up to the first span, silence for the gap while
	// SPEAKER_01 talks, two trimmed spans, one concat of four inputs.
	if !strings.Contains(filter, "aevalsrc=0:d=1.000") {
		t.Errorf("missing leading silence: %s", filter)
	}
	if !strings.Contains(filter, "atrim=start=1.000:end=2.000") {
		t.Errorf("missing first span trim: %s", filter)
	}
	if !strings.Contains(filter, "atrim=start=3.000:end=4.000") {
		t.Errorf("missing second span trim: %s", filter)
	}
	if !strings.Contains(filter, "concat=n=4:v=0:a=1[out]") {
		t.Errorf("wrong concat arity: %s", filter)
	}
}

func TestIsolationFilterAbsentSpeaker(t *testing.T) {
	clips := []SpeakerClip{
		{Clip: Clip{StartMS: 0, StopMS: 100}, SpeakerID: "SPEAKER_00"},
	}
	if got := isolationFilter(clips, "SPEAKER_07"); got != "" {
		t.Errorf("expected empty filter, got %q", got)
	}
}
