package diarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultPyannoteURL     = "http://localhost:8388"
	defaultPyannoteTimeout = 300 * time.Second
)

// Pyannote talks to a pyannote speaker-diarization HTTP sidecar. The
// sidecar wraps the pretrained model; an API token is forwarded so the
// sidecar can fetch model weights on first use.
type Pyannote struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewPyannote creates a sidecar client. An empty baseURL selects the
// default local sidecar address.
func NewPyannote(baseURL, token string) *Pyannote {
	if baseURL == "" {
		baseURL = defaultPyannoteURL
	}
	return &Pyannote{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: defaultPyannoteTimeout},
	}
}

type pyannoteSegment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

type pyannoteResponse struct {
	Segments []pyannoteSegment `json:"segments"`
}

// Diarize uploads the audio file and returns the detected spans in
// millisecond offsets, ordered as the sidecar emitted them.
func (p *Pyannote) Diarize(ctx context.Context, audioPath string) ([]Span, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("write audio data: %w", err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/diarize", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diarization request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("diarization sidecar: http %d: %s", resp.StatusCode, string(body))
	}

	var parsed pyannoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode diarization response: %w", err)
	}

	spans := make([]Span, 0, len(parsed.Segments))
	for _, seg := range parsed.Segments {
		spans = append(spans, Span{
			StartMS:   int64(seg.Start * 1000),
			StopMS:    int64(seg.End * 1000),
			SpeakerID: seg.Speaker,
		})
	}
	return spans, nil
}
