package db

import "database/sql"

// CreateSpeaker adds a speaker token to a project. The (project, token)
// pair is unique; a duplicate is refused. An empty alias defaults to the
// token itself.
func (s *Store) CreateSpeaker(projectID int64, speakerID, alias string) bool {
	var one int
	err := s.db.QueryRow(
		"SELECT EXISTS (SELECT uid FROM speaker WHERE project_id = ? AND speaker_id = ? LIMIT 1)",
		projectID, speakerID,
	).Scan(&one)
	if err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Str("speaker", speakerID).
			Msg("create speaker: existence check failed")
		return false
	}
	if one != 0 {
		s.log.Warn().Int64("project", projectID).Str("speaker", speakerID).
			Msg("create speaker: pair already exists")
		return false
	}

	if alias == "" {
		alias = speakerID
	}
	if _, err := s.db.Exec(
		"INSERT INTO speaker (project_id, speaker_id, name) VALUES (?, ?, ?)",
		projectID, speakerID, alias,
	); err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Str("speaker", speakerID).
			Msg("create speaker failed")
		return false
	}
	return true
}

// UpdateSpeakerAlias sets the display alias for an existing (project,
// token) pair. An empty alias falls back to the token. Returns false when
// the pair does not exist.
func (s *Store) UpdateSpeakerAlias(projectID int64, speakerID, alias string) bool {
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM speaker WHERE project_id = ? AND speaker_id = ? LIMIT 1",
		projectID, speakerID,
	).Scan(&name)
	if err == sql.ErrNoRows {
		s.log.Warn().Int64("project", projectID).Str("speaker", speakerID).
			Msg("update speaker alias: pair does not exist")
		return false
	}
	if err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Str("speaker", speakerID).
			Msg("update speaker alias: lookup failed")
		return false
	}

	if alias == "" {
		alias = speakerID
	}
	if _, err := s.db.Exec(
		"UPDATE speaker SET name = ? WHERE project_id = ? AND speaker_id = ?",
		alias, projectID, speakerID,
	); err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Str("speaker", speakerID).
			Msg("update speaker alias failed")
		return false
	}
	return true
}

// FetchSpeaker returns the speaker row for a (project, token) pair, or
// nil if it does not exist.
func (s *Store) FetchSpeaker(projectID int64, speakerID string) *Speaker {
	row := s.db.QueryRow(
		"SELECT uid, project_id, speaker_id, name FROM speaker WHERE project_id = ? AND speaker_id = ? LIMIT 1",
		projectID, speakerID,
	)

	var sp Speaker
	err := row.Scan(&sp.UID, &sp.ProjectID, &sp.SpeakerID, &sp.Name)
	if err == sql.ErrNoRows {
		s.log.Warn().Int64("project", projectID).Str("speaker", speakerID).
			Msg("fetch speaker: does not exist")
		return nil
	}
	if err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Str("speaker", speakerID).
			Msg("fetch speaker failed")
		return nil
	}
	return &sp
}

// ProjectSpeakers returns all speakers of a project.
func (s *Store) ProjectSpeakers(projectID int64) []Speaker {
	rows, err := s.db.Query(
		"SELECT uid, project_id, speaker_id, name FROM speaker WHERE project_id = ?",
		projectID,
	)
	if err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Msg("list project speakers failed")
		return []Speaker{}
	}
	defer rows.Close()

	speakers := []Speaker{}
	for rows.Next() {
		var sp Speaker
		if err := rows.Scan(&sp.UID, &sp.ProjectID, &sp.SpeakerID, &sp.Name); err != nil {
			s.log.Error().Err(err).Int64("project", projectID).Msg("scan speaker failed")
			return []Speaker{}
		}
		speakers = append(speakers, sp)
	}
	if err := rows.Err(); err != nil {
		s.log.Error().Err(err).Int64("project", projectID).Msg("list project speakers failed")
		return []Speaker{}
	}
	return speakers
}

// AliasMap returns the token-to-display-name mapping for a project, used
// by the script renderer.
func (s *Store) AliasMap(projectID int64) map[string]string {
	names := map[string]string{}
	for _, sp := range s.ProjectSpeakers(projectID) {
		names[sp.SpeakerID] = sp.Name
	}
	return names
}
