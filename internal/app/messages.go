package app

import "github.com/burnoutdv/transcrypt/internal/db"

// ProjectsLoadedMsg carries the project list from the store.
type ProjectsLoadedMsg struct {
	Projects []db.Project
}

// ProjectLoadedMsg carries one project with its lines and speakers for
// the detail screen.
type ProjectLoadedMsg struct {
	Project  db.Project
	Lines    []db.Line
	Speakers []db.Speaker
}

// LoadErrorMsg reports a failed load.
type LoadErrorMsg struct {
	Err error
}
