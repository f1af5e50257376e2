package db

import (
	"database/sql"
	"strings"
)

// ProjectFields holds the writable columns of a project. Only fields that
// are explicitly set (non-nil) are persisted; there is no silent dropping
// of unknown keys because the field set is fixed at compile time.
type ProjectFields struct {
	GivenName    *string
	NumSpeakers  *int
	LengthMS     *int64
	FilePath     *string
	Status       *int
	NumLines     *int
	NumTrueLines *int
}

func (f ProjectFields) columns() ([]string, []any) {
	var cols []string
	var args []any
	add := func(col string, v any) {
		cols = append(cols, col)
		args = append(args, v)
	}
	if f.GivenName != nil {
		add("given_name", *f.GivenName)
	}
	if f.NumSpeakers != nil {
		add("num_speakers", *f.NumSpeakers)
	}
	if f.LengthMS != nil {
		add("length_ms", *f.LengthMS)
	}
	if f.FilePath != nil {
		add("file_path", *f.FilePath)
	}
	if f.Status != nil {
		add("status", *f.Status)
	}
	if f.NumLines != nil {
		add("num_lines", *f.NumLines)
	}
	if f.NumTrueLines != nil {
		add("num_true_lines", *f.NumTrueLines)
	}
	return cols, args
}

// ProjectFilter narrows ListProjects. Nil fields do not filter.
type ProjectFilter struct {
	NumSpeakers *int // exact speaker count
	MinSpeakers *int
	MaxSpeakers *int
	Status      *int
}

// Ptr returns a pointer to v, for filling optional fields in place.
func Ptr[T any](v T) *T { return &v }

// CreateProject inserts a new project from the set fields and returns its
// uid, or -1 on failure.
func (s *Store) CreateProject(f ProjectFields) int64 {
	cols, args := f.columns()

	var query string
	if len(cols) == 0 {
		query = "INSERT INTO project DEFAULT VALUES"
	} else {
		query = "INSERT INTO project (" + strings.Join(cols, ", ") + ")" +
			" VALUES (" + placeholders(len(cols)) + ")"
	}

	res, err := s.db.Exec(query, args...)
	if err != nil {
		s.log.Error().Err(err).Msg("create project failed")
		return -1
	}
	uid, err := res.LastInsertId()
	if err != nil {
		s.log.Error().Err(err).Msg("create project: no insert id")
		return -1
	}
	return uid
}

// FetchProject returns the project with the given uid, or nil if it does
// not exist.
func (s *Store) FetchProject(uid int64) *Project {
	row := s.db.QueryRow(`
		SELECT uid, given_name, num_speakers, length_ms, file_path,
		       status, num_lines, num_true_lines, last_change, created
		FROM project WHERE uid = ? LIMIT 1
	`, uid)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		s.log.Warn().Int64("project", uid).Msg("fetch project: does not exist")
		return nil
	}
	if err != nil {
		s.log.Error().Err(err).Int64("project", uid).Msg("fetch project failed")
		return nil
	}
	return p
}

// ListProjects returns up to limit projects in insertion order, optionally
// filtered. A failing query yields an empty slice after logging.
func (s *Store) ListProjects(filter *ProjectFilter, limit int) []Project {
	query := "SELECT uid, given_name, num_speakers, length_ms, file_path, " +
		"status, num_lines, num_true_lines, last_change, created FROM project"
	var args []any

	if filter != nil {
		var conds []string
		if filter.NumSpeakers != nil {
			conds = append(conds, "num_speakers = ?")
			args = append(args, *filter.NumSpeakers)
		}
		if filter.MinSpeakers != nil {
			conds = append(conds, "num_speakers >= ?")
			args = append(args, *filter.MinSpeakers)
		}
		if filter.MaxSpeakers != nil {
			conds = append(conds, "num_speakers <= ?")
			args = append(args, *filter.MaxSpeakers)
		}
		if filter.Status != nil {
			conds = append(conds, "status = ?")
			args = append(args, *filter.Status)
		}
		if len(conds) > 0 {
			query += " WHERE " + strings.Join(conds, " AND ")
		}
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.log.Error().Err(err).Msg("list projects failed")
		return []Project{}
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			s.log.Error().Err(err).Msg("scan project failed")
			return []Project{}
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		s.log.Error().Err(err).Msg("list projects failed")
		return []Project{}
	}
	return projects
}

// UpdateProject applies the set fields to an existing project and stamps
// last_change. Returns false when the project does not exist, no field is
// set, or the update fails.
func (s *Store) UpdateProject(uid int64, f ProjectFields) bool {
	if !s.exists("project", uid) {
		s.log.Warn().Int64("project", uid).Msg("update project: does not exist")
		return false
	}

	cols, args := f.columns()
	if len(cols) == 0 {
		s.log.Warn().Int64("project", uid).Msg("update project: empty field set, nothing happens")
		return false
	}
	cols = append(cols, "last_change")
	args = append(args, stamp())

	query := "UPDATE project SET " + strings.Join(cols, " = ?, ") + " = ? WHERE uid = ?"
	args = append(args, uid)

	if _, err := s.db.Exec(query, args...); err != nil {
		s.log.Error().Err(err).Int64("project", uid).Msg("update project failed")
		return false
	}
	return true
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(sc scanner) (*Project, error) {
	var p Project
	var givenName, filePath, lastChange, created sql.NullString
	var numSpeakers, lengthMS, numLines, numTrueLines sql.NullInt64
	var status sql.NullInt64

	if err := sc.Scan(&p.UID, &givenName, &numSpeakers, &lengthMS, &filePath,
		&status, &numLines, &numTrueLines, &lastChange, &created); err != nil {
		return nil, err
	}

	p.GivenName = givenName.String
	p.NumSpeakers = int(numSpeakers.Int64)
	p.LengthMS = lengthMS.Int64
	p.FilePath = filePath.String
	p.Status = int(status.Int64)
	p.NumLines = int(numLines.Int64)
	p.NumTrueLines = int(numTrueLines.Int64)
	p.LastChange = timeFromSQL(lastChange.String)
	p.Created = timeFromSQL(created.String)
	return &p, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
