package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "line_1.wav")
	if err := os.WriteFile(path, []byte("RIFFfake"), 0o644); err != nil {
		t.Fatalf("write test audio: %v", err)
	}
	return path
}

func TestWhisperTranscribe(t *testing.T) {
	var gotModel, gotLanguage string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("audio part missing: %v", err)
		}
		w.Write([]byte(`{"text": " bla fasel ", "language": "de"}`))
	}))
	defer srv.Close()

	w := NewWhisper(srv.URL, "medium")
	res, err := w.Transcribe(context.Background(), writeTestAudio(t), "de")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}

	if res.Text != " bla fasel " {
		t.Errorf("Text = %q (must stay untrimmed)", res.Text)
	}
	if res.Language != "de" {
		t.Errorf("Language = %q, want de", res.Language)
	}
	if gotModel != "medium" || gotLanguage != "de" {
		t.Errorf("form fields model=%q language=%q", gotModel, gotLanguage)
	}
}

func TestWhisperLanguageFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "hello"}`))
	}))
	defer srv.Close()

	w := NewWhisper(srv.URL, "")
	res, err := w.Transcribe(context.Background(), writeTestAudio(t), "")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if res.Language != "un" {
		t.Errorf("Language = %q, want un fallback", res.Language)
	}
}

func TestWhisperSidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	w := NewWhisper(srv.URL, "")
	if _, err := w.Transcribe(context.Background(), writeTestAudio(t), ""); err == nil {
		t.Fatal("expected error on http 503")
	}
}
