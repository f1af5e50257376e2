package db

import (
	"database/sql"
	"strings"
)

// LineFields holds the writable columns of a line beyond its identity.
// Only non-nil fields are persisted.
type LineFields struct {
	Content     *string
	LengthMS    *int64
	Language    *string
	StartMS     *int64
	StopMS      *int64
	Previous    *int64
	Next        *int64
	SubFilePath *string
	SpeakerID   *string
}

func (f LineFields) columns() ([]string, []any) {
	var cols []string
	var args []any
	add := func(col string, v any) {
		cols = append(cols, col)
		args = append(args, v)
	}
	if f.Content != nil {
		add("content", *f.Content)
	}
	if f.LengthMS != nil {
		add("length_ms", *f.LengthMS)
	}
	if f.Language != nil {
		add("language", *f.Language)
	}
	if f.StartMS != nil {
		add("start_ms", *f.StartMS)
	}
	if f.StopMS != nil {
		add("stop_ms", *f.StopMS)
	}
	if f.Previous != nil {
		add("previous", *f.Previous)
	}
	if f.Next != nil {
		add("next", *f.Next)
	}
	if f.SubFilePath != nil {
		add("sub_file_path", *f.SubFilePath)
	}
	if f.SpeakerID != nil {
		add("speaker_id", *f.SpeakerID)
	}
	return cols, args
}

// CreateLine inserts one line for an existing project and returns its uid,
// or -1 when the project does not exist or the insert fails.
func (s *Store) CreateLine(projectID int64, speakerID string, f LineFields) int64 {
	if !s.exists("project", projectID) {
		s.log.Warn().Int64("project", projectID).Msg("create line: project does not exist")
		return -1
	}

	cols, args := f.columns()
	cols = append(cols, "project_id", "speaker_id")
	args = append(args, projectID, speakerID)

	query := "INSERT INTO line (" + strings.Join(cols, ", ") + ")" +
		" VALUES (" + placeholders(len(cols)) + ")"

	res, err := s.db.Exec(query, args...)
	if err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Msg("create line failed")
		return -1
	}
	uid, err := res.LastInsertId()
	if err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Msg("create line: no insert id")
		return -1
	}
	return uid
}

// CreateBulkLines persists one line per diarized span in a single
// transaction, deriving each length from stop - start. A speaker row is
// created beforehand for every distinct token (empty alias, so the token
// doubles as display name). Speaker creation is not rolled back if the
// batch itself fails afterwards.
func (s *Store) CreateBulkLines(projectID int64, spans []Span) bool {
	seen := map[string]bool{}
	for _, sp := range spans {
		if !seen[sp.SpeakerID] {
			seen[sp.SpeakerID] = true
			s.CreateSpeaker(projectID, sp.SpeakerID, "")
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Msg("bulk line insert: begin failed")
		return false
	}

	const query = "INSERT INTO line (project_id, start_ms, stop_ms, length_ms, speaker_id) VALUES (?, ?, ?, ?, ?)"
	for _, sp := range spans {
		if _, err := tx.Exec(query, projectID, sp.StartMS, sp.StopMS, sp.StopMS-sp.StartMS, sp.SpeakerID); err != nil {
			tx.Rollback()
			s.log.Error().Err(err).Int64("project", projectID).Msg("bulk line insert failed")
			return false
		}
	}
	if err := tx.Commit(); err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Msg("bulk line insert: commit failed")
		return false
	}
	return true
}

// FetchLine returns the line with the given uid, or nil if it does not
// exist.
func (s *Store) FetchLine(uid int64) *Line {
	row := s.db.QueryRow(`
		SELECT uid, project_id, speaker_id, content, sub_file_path,
		       length_ms, language, start_ms, stop_ms, previous, next
		FROM line WHERE uid = ? LIMIT 1
	`, uid)

	l, err := scanLine(row)
	if err == sql.ErrNoRows {
		s.log.Warn().Int64("line", uid).Msg("fetch line: does not exist")
		return nil
	}
	if err != nil {
		s.log.Error().Err(err).Int64("line", uid).Msg("fetch line failed")
		return nil
	}
	return l
}

// ProjectLines returns up to limit lines of a project in insertion order.
func (s *Store) ProjectLines(projectID int64, limit int) []Line {
	rows, err := s.db.Query(`
		SELECT uid, project_id, speaker_id, content, sub_file_path,
		       length_ms, language, start_ms, stop_ms, previous, next
		FROM line WHERE project_id = ? ORDER BY start_ms LIMIT ?
	`, projectID, limit)
	if err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Msg("list project lines failed")
		return []Line{}
	}
	defer rows.Close()

	lines := []Line{}
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			s.log.Error().Err(err).Int64("project", projectID).Msg("scan line failed")
			return []Line{}
		}
		lines = append(lines, *l)
	}
	if err := rows.Err(); err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Msg("list project lines failed")
		return []Line{}
	}
	return lines
}

// UpdateLine applies the set fields to an existing line. Unlike projects,
// lines carry no last-change stamp. Returns false when the line does not
// exist, no field is set, or the update fails.
func (s *Store) UpdateLine(uid int64, f LineFields) bool {
	if !s.exists("line", uid) {
		s.log.Warn().Int64("line", uid).Msg("update line: does not exist")
		return false
	}

	cols, args := f.columns()
	if len(cols) == 0 {
		s.log.Warn().Int64("line", uid).Msg("update line: empty field set, nothing happens")
		return false
	}

	query := "UPDATE line SET " + strings.Join(cols, " = ?, ") + " = ? WHERE uid = ?"
	args = append(args, uid)

	if _, err := s.db.Exec(query, args...); err != nil {
		s.log.Error().Err(err).Int64("line", uid).Msg("update line failed")
		return false
	}
	return true
}

func scanLine(sc scanner) (*Line, error) {
	var l Line
	var content, subFilePath, language sql.NullString
	var lengthMS, startMS, stopMS sql.NullInt64
	var previous, next sql.NullInt64

	if err := sc.Scan(&l.UID, &l.ProjectID, &l.SpeakerID, &content, &subFilePath,
		&lengthMS, &language, &startMS, &stopMS, &previous, &next); err != nil {
		return nil, err
	}

	l.Content = content.String
	l.SubFilePath = subFilePath.String
	l.LengthMS = lengthMS.Int64
	l.Language = language.String
	l.StartMS = startMS.Int64
	l.StopMS = stopMS.Int64
	if previous.Valid {
		l.Previous = &previous.Int64
	}
	if next.Valid {
		l.Next = &next.Int64
	}
	return &l, nil
}
