package commands

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/burnoutdv/transcrypt/internal/db"
)

func newAliasFixture(t *testing.T) (*db.Store, int64) {
	t.Helper()
	store, err := db.Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	store.EnsureSchema()

	pid := store.CreateProject(db.ProjectFields{GivenName: db.Ptr("Interview")})
	if pid < 0 {
		t.Fatal("create project failed")
	}
	if !store.CreateSpeaker(pid, "SPEAKER_00", "") {
		t.Fatal("create speaker failed")
	}
	return store, pid
}

func TestSetSpeakerAlias(t *testing.T) {
	store, pid := newAliasFixture(t)

	name, err := setSpeakerAlias(store, pid, "SPEAKER_00", "Max")
	if err != nil {
		t.Fatalf("set alias: %v", err)
	}
	if name != "Max" {
		t.Errorf("name = %q, want Max", name)
	}

	// Empty alias resets back to the token.
	name, err = setSpeakerAlias(store, pid, "SPEAKER_00", "")
	if err != nil {
		t.Fatalf("reset alias: %v", err)
	}
	if name != "SPEAKER_00" {
		t.Errorf("name = %q, want SPEAKER_00", name)
	}
}

func TestSetSpeakerAliasMissing(t *testing.T) {
	store, pid := newAliasFixture(t)

	if _, err := setSpeakerAlias(store, pid, "SPEAKER_99", "Max"); err == nil {
		t.Error("expected error for unknown token")
	}
	if _, err := setSpeakerAlias(store, pid+1, "SPEAKER_00", "Max"); err == nil {
		t.Error("expected error for unknown project")
	}
}
