package diarize

import (
	"regexp"
	"strconv"
	"strings"
)

// spanPattern matches one line of raw pyannote annotation output:
//
//	[ 00:00:01.240 -->  00:00:03.062] A SPEAKER_00
var spanPattern = regexp.MustCompile(
	`\[\s*([0-9]+:[0-9]+:[0-9]+\.[0-9]+)\s+-->\s+([0-9]+:[0-9]+:[0-9]+\.[0-9]+)\]\s+.*(SPEAKER_[0-9]+)`)

// ParseAnnotation converts a raw annotated-text blob into spans with
// millisecond offsets. Non-empty lines that do not match the expected
// pattern are skipped and counted instead of faulting.
func ParseAnnotation(block string) ([]Span, int) {
	var spans []Span
	skipped := 0

	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := spanPattern.FindStringSubmatch(line)
		if m == nil {
			skipped++
			continue
		}
		spans = append(spans, Span{
			StartMS:   timestampToMS(m[1]),
			StopMS:    timestampToMS(m[2]),
			SpeakerID: m[3],
		})
	}
	return spans, skipped
}

// timestampToMS converts "HH:MM:SS.mmm" to milliseconds. The match
// guarantees the shape, so conversion errors cannot occur here.
func timestampToMS(ts string) int64 {
	parts := strings.SplitN(ts, ":", 3)
	h, _ := strconv.ParseInt(parts[0], 10, 64)
	m, _ := strconv.ParseInt(parts[1], 10, 64)
	sec, _ := strconv.ParseFloat(parts[2], 64)
	return int64((float64(h*3600+m*60) + sec) * 1000)
}
