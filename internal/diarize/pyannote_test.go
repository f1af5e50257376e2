package diarize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestPyannoteDiarize(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diarize" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("audio"); err != nil {
			t.Errorf("audio part missing: %v", err)
		}
		w.Write([]byte(`{"segments": [
			{"speaker": "SPEAKER_00", "start": 1.24, "end": 3.062},
			{"speaker": "SPEAKER_01", "start": 6.674, "end": 7.095}
		]}`))
	}))
	defer srv.Close()

	audio := filepath.Join(t.TempDir(), "rec.wav")
	if err := os.WriteFile(audio, []byte("RIFFfake"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	p := NewPyannote(srv.URL, "hf_token")
	spans, err := p.Diarize(context.Background(), audio)
	if err != nil {
		t.Fatalf("diarize: %v", err)
	}

	if gotAuth != "Bearer hf_token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0] != (Span{StartMS: 1240, StopMS: 3062, SpeakerID: "SPEAKER_00"}) {
		t.Errorf("spans[0] = %+v", spans[0])
	}
}

func TestPyannoteMissingAudio(t *testing.T) {
	p := NewPyannote("http://localhost:1", "")
	if _, err := p.Diarize(context.Background(), "/does/not/exist.wav"); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}
