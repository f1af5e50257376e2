package transcribe

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
	defaultWhisperURL     = "http://localhost:8387"
	defaultWhisperModel   = "medium"
	defaultWhisperTimeout = 120 * time.Second
)

// Whisper talks to a faster-whisper HTTP sidecar. One request per
// sub-file; the segments are short, so there is no batching.
type Whisper struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewWhisper creates a sidecar client. Empty arguments select the local
// default sidecar and the medium model.
func NewWhisper(baseURL, model string) *Whisper {
	if baseURL == "" {
		baseURL = defaultWhisperURL
	}
	if model == "" {
		model = defaultWhisperModel
	}
	return &Whisper{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: defaultWhisperTimeout},
	}
}

type whisperResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Transcribe uploads one sub-file and returns its text and detected
// language.
func (w *Whisper) Transcribe(ctx context.Context, subFilePath, languageHint string) (Result, error) {
	f, err := os.Open(subFilePath)
	if err != nil {
		return Result{}, fmt.Errorf("open sub-file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("audio", filepath.Base(subFilePath))
	if err != nil {
		return Result{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return Result{}, fmt.Errorf("write audio data: %w", err)
	}
	_ = writer.WriteField("model", w.model)
	if languageHint != "" {
		_ = writer.WriteField("language", languageHint)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/transcribe", &buf)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("whisper sidecar: http %d: %s", resp.StatusCode, string(body))
	}

	var parsed whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, fmt.Errorf("decode transcription response: %w", err)
	}
	if parsed.Language == "" {
		parsed.Language = "un"
	}
	return Result{Text: parsed.Text, Language: parsed.Language}, nil
}
