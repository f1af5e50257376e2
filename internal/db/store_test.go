package db

import (
	"testing"

	"github.com/rs/zerolog"
)

// newTestStore opens an in-memory SQLite store with the schema applied.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	s.EnsureSchema()
	return s
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	s := newTestStore(t)

	// A second run must not error out or duplicate tables.
	s.EnsureSchema()

	uid := s.CreateProject(ProjectFields{GivenName: Ptr("after double ensure")})
	if uid <= 0 {
		t.Fatalf("create project after double EnsureSchema: got %d", uid)
	}

	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'project'",
	).Scan(&count)
	if err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if count != 1 {
		t.Errorf("project table count = %d, want 1", count)
	}
}

func TestCreateProjectPersistsSetFields(t *testing.T) {
	s := newTestStore(t)

	uid := s.CreateProject(ProjectFields{
		GivenName: Ptr("Interview 7"),
		FilePath:  Ptr("/audio/interview7.wav"),
		Status:    Ptr(0),
	})
	if uid <= 0 {
		t.Fatalf("create project: got %d", uid)
	}

	p := s.FetchProject(uid)
	if p == nil {
		t.Fatal("fetch project: got nil")
	}
	if p.GivenName != "Interview 7" {
		t.Errorf("GivenName = %q, want %q", p.GivenName, "Interview 7")
	}
	if p.FilePath != "/audio/interview7.wav" {
		t.Errorf("FilePath = %q", p.FilePath)
	}
	// Unset fields stay at their zero value.
	if p.NumSpeakers != 0 || p.NumLines != 0 || p.LengthMS != 0 {
		t.Errorf("unset fields not zero: %+v", p)
	}
	if p.Created.IsZero() {
		t.Error("Created timestamp not stamped by schema default")
	}
}

func TestFetchProjectAbsent(t *testing.T) {
	s := newTestStore(t)

	if p := s.FetchProject(999); p != nil {
		t.Errorf("expected nil for absent project, got %+v", p)
	}
}

func TestUpdateProject(t *testing.T) {
	s := newTestStore(t)
	uid := s.CreateProject(ProjectFields{GivenName: Ptr("orig")})

	if !s.UpdateProject(uid, ProjectFields{NumLines: Ptr(25), Status: Ptr(1)}) {
		t.Fatal("update project returned false")
	}

	p := s.FetchProject(uid)
	if p.NumLines != 25 || p.Status != 1 {
		t.Errorf("got NumLines=%d Status=%d, want 25/1", p.NumLines, p.Status)
	}
	if p.GivenName != "orig" {
		t.Errorf("untouched field changed: %q", p.GivenName)
	}
	if p.LastChange.IsZero() {
		t.Error("last_change not stamped on update")
	}
}

func TestUpdateProjectAbsent(t *testing.T) {
	s := newTestStore(t)

	if s.UpdateProject(42, ProjectFields{Status: Ptr(1)}) {
		t.Error("update of absent project returned true")
	}
}

func TestUpdateProjectEmptyFieldSet(t *testing.T) {
	s := newTestStore(t)
	uid := s.CreateProject(ProjectFields{GivenName: Ptr("untouched")})

	if s.UpdateProject(uid, ProjectFields{}) {
		t.Error("empty update returned true")
	}

	p := s.FetchProject(uid)
	if p.GivenName != "untouched" {
		t.Errorf("row changed by empty update: %q", p.GivenName)
	}
}

func TestListProjectsFilter(t *testing.T) {
	s := newTestStore(t)

	s.CreateProject(ProjectFields{GivenName: Ptr("a"), NumSpeakers: Ptr(2), Status: Ptr(2)})
	s.CreateProject(ProjectFields{GivenName: Ptr("b"), NumSpeakers: Ptr(4), Status: Ptr(1)})
	s.CreateProject(ProjectFields{GivenName: Ptr("c"), NumSpeakers: Ptr(3), Status: Ptr(2)})

	all := s.ListProjects(nil, 20)
	if len(all) != 3 {
		t.Fatalf("got %d projects, want 3", len(all))
	}
	if all[0].GivenName != "a" || all[2].GivenName != "c" {
		t.Errorf("insertion order not preserved: %q %q", all[0].GivenName, all[2].GivenName)
	}

	done := s.ListProjects(&ProjectFilter{Status: Ptr(2)}, 20)
	if len(done) != 2 {
		t.Errorf("status filter: got %d, want 2", len(done))
	}

	big := s.ListProjects(&ProjectFilter{MinSpeakers: Ptr(3)}, 20)
	if len(big) != 2 {
		t.Errorf("min speaker filter: got %d, want 2", len(big))
	}

	limited := s.ListProjects(nil, 1)
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d", len(limited))
	}
}

func TestCreateLineRequiresProject(t *testing.T) {
	s := newTestStore(t)

	if uid := s.CreateLine(12345, "SPEAKER_00", LineFields{}); uid != -1 {
		t.Errorf("line created for absent project, uid=%d", uid)
	}
}

func TestCreateAndUpdateLine(t *testing.T) {
	s := newTestStore(t)
	pid := s.CreateProject(ProjectFields{GivenName: Ptr("p")})

	uid := s.CreateLine(pid, "SPEAKER_01", LineFields{
		StartMS:  Ptr(int64(500)),
		StopMS:   Ptr(int64(650)),
		LengthMS: Ptr(int64(150)),
	})
	if uid <= 0 {
		t.Fatalf("create line: got %d", uid)
	}

	if !s.UpdateLine(uid, LineFields{Content: Ptr("mau"), Language: Ptr("de")}) {
		t.Fatal("update line returned false")
	}

	l := s.FetchLine(uid)
	if l == nil {
		t.Fatal("fetch line: got nil")
	}
	if l.Content != "mau" || l.Language != "de" {
		t.Errorf("got content=%q language=%q", l.Content, l.Language)
	}
	if l.StartMS != 500 || l.StopMS != 650 {
		t.Errorf("offsets changed: %d-%d", l.StartMS, l.StopMS)
	}
	if l.Previous != nil || l.Next != nil {
		t.Errorf("ordering links set unexpectedly: %v %v", l.Previous, l.Next)
	}
}

func TestUpdateLineAbsentAndEmpty(t *testing.T) {
	s := newTestStore(t)
	pid := s.CreateProject(ProjectFields{})
	uid := s.CreateLine(pid, "SPEAKER_00", LineFields{})

	if s.UpdateLine(999, LineFields{Content: Ptr("x")}) {
		t.Error("update of absent line returned true")
	}
	if s.UpdateLine(uid, LineFields{}) {
		t.Error("empty line update returned true")
	}
}

func TestCreateBulkLines(t *testing.T) {
	s := newTestStore(t)
	pid := s.CreateProject(ProjectFields{GivenName: Ptr("bulk")})

	spans := []Span{
		{StartMS: 1240, StopMS: 3062, SpeakerID: "SPEAKER_00"},
		{StartMS: 4514, StopMS: 5661, SpeakerID: "SPEAKER_00"},
		{StartMS: 6674, StopMS: 7095, SpeakerID: "SPEAKER_01"},
	}
	if !s.CreateBulkLines(pid, spans) {
		t.Fatal("bulk insert returned false")
	}

	lines := s.ProjectLines(pid, 500)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, l := range lines {
		want := spans[i].StopMS - spans[i].StartMS
		if l.LengthMS != want {
			t.Errorf("lines[%d].LengthMS = %d, want %d", i, l.LengthMS, want)
		}
		if l.SpeakerID != spans[i].SpeakerID {
			t.Errorf("lines[%d].SpeakerID = %q, want %q", i, l.SpeakerID, spans[i].SpeakerID)
		}
	}

	speakers := s.ProjectSpeakers(pid)
	if len(speakers) != 2 {
		t.Fatalf("got %d speakers, want 2 distinct tokens", len(speakers))
	}
	for _, sp := range speakers {
		if sp.Name != sp.SpeakerID {
			t.Errorf("speaker %q alias = %q, want token fallback", sp.SpeakerID, sp.Name)
		}
	}
}

func TestCreateSpeakerDuplicate(t *testing.T) {
	s := newTestStore(t)
	pid := s.CreateProject(ProjectFields{})

	if !s.CreateSpeaker(pid, "SPEAKER_00", "Max") {
		t.Fatal("first create speaker returned false")
	}
	if s.CreateSpeaker(pid, "SPEAKER_00", "Other") {
		t.Error("duplicate create speaker returned true")
	}

	sp := s.FetchSpeaker(pid, "SPEAKER_00")
	if sp == nil || sp.Name != "Max" {
		t.Errorf("duplicate create overwrote alias: %+v", sp)
	}
	if len(s.ProjectSpeakers(pid)) != 1 {
		t.Error("duplicate create wrote a second row")
	}
}

func TestCreateSpeakerEmptyAlias(t *testing.T) {
	s := newTestStore(t)
	pid := s.CreateProject(ProjectFields{})

	s.CreateSpeaker(pid, "SPEAKER_03", "")
	sp := s.FetchSpeaker(pid, "SPEAKER_03")
	if sp == nil || sp.Name != "SPEAKER_03" {
		t.Errorf("empty alias did not default to token: %+v", sp)
	}
}

func TestUpdateSpeakerAlias(t *testing.T) {
	s := newTestStore(t)
	pid := s.CreateProject(ProjectFields{})
	s.CreateSpeaker(pid, "SPEAKER_00", "")

	if s.UpdateSpeakerAlias(pid, "SPEAKER_99", "Nobody") {
		t.Error("alias update for absent pair returned true")
	}
	if !s.UpdateSpeakerAlias(pid, "SPEAKER_00", "Moritz") {
		t.Fatal("alias update returned false")
	}
	if sp := s.FetchSpeaker(pid, "SPEAKER_00"); sp.Name != "Moritz" {
		t.Errorf("alias = %q, want Moritz", sp.Name)
	}

	// Empty alias resets to the token.
	s.UpdateSpeakerAlias(pid, "SPEAKER_00", "")
	if sp := s.FetchSpeaker(pid, "SPEAKER_00"); sp.Name != "SPEAKER_00" {
		t.Errorf("empty alias did not reset to token: %q", sp.Name)
	}
}

func TestAliasMap(t *testing.T) {
	s := newTestStore(t)
	pid := s.CreateProject(ProjectFields{})
	s.CreateSpeaker(pid, "SPEAKER_00", "Max")
	s.CreateSpeaker(pid, "SPEAKER_01", "")

	names := s.AliasMap(pid)
	if names["SPEAKER_00"] != "Max" || names["SPEAKER_01"] != "SPEAKER_01" {
		t.Errorf("alias map = %v", names)
	}
}
