package db

// schemaStatements holds one CREATE TABLE per entity, consumed once by
// EnsureSchema. project_id references are declared but not enforced;
// the repository prechecks existence itself.
var schemaStatements = []struct {
	name string
	ddl  string
}{
	{"project", `CREATE TABLE IF NOT EXISTS project (
		uid INTEGER PRIMARY KEY AUTOINCREMENT,
		given_name TEXT,
		num_speakers INTEGER,
		length_ms INTEGER,
		file_path TEXT,
		status INTEGER,
		num_lines INTEGER,
		num_true_lines INTEGER,
		last_change TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`},
	{"line", `CREATE TABLE IF NOT EXISTS line (
		uid INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER REFERENCES project(uid),
		speaker_id TEXT NOT NULL,
		content TEXT,
		sub_file_path TEXT,
		length_ms INTEGER,
		language TEXT,
		start_ms INTEGER,
		stop_ms INTEGER,
		previous INTEGER REFERENCES line(uid),
		next INTEGER REFERENCES line(uid)
	)`},
	{"speaker", `CREATE TABLE IF NOT EXISTS speaker (
		uid INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER REFERENCES project(uid),
		speaker_id TEXT NOT NULL,
		name TEXT NOT NULL
	)`},
}
