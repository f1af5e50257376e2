// Package app is the read-only browse TUI over the transcrypt store:
// a project list with a per-project detail screen.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/burnoutdv/transcrypt/internal/db"
	"github.com/burnoutdv/transcrypt/internal/pipeline"
	"github.com/burnoutdv/transcrypt/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Screen tracks which view is active.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
)

// maxBrowseProjects bounds the list query.
const maxBrowseProjects = 200

// Model is the root bubbletea model for the browse TUI.
type Model struct {
	store *db.Store

	screen Screen

	// List screen
	projects []db.Project
	selected int

	// Detail screen
	project      db.Project
	lines        []db.Line
	speakers     []db.Speaker
	names        map[string]string
	detailScroll int

	// UI state
	width  int
	height int

	errorMessage string
}

// New creates a model browsing the given store.
func New(store *db.Store) Model {
	return Model{store: store}
}

// Init loads the project list.
func (m Model) Init() tea.Cmd {
	return loadProjectsCmd(m.store)
}

// loadProjectsCmd reads the project list from the store.
func loadProjectsCmd(store *db.Store) tea.Cmd {
	return func() tea.Msg {
		return ProjectsLoadedMsg{Projects: store.ListProjects(nil, maxBrowseProjects)}
	}
}

// loadProjectCmd reads one project with lines and speakers.
func loadProjectCmd(store *db.Store, uid int64) tea.Cmd {
	return func() tea.Msg {
		project := store.FetchProject(uid)
		if project == nil {
			return LoadErrorMsg{Err: fmt.Errorf("project %d does not exist", uid)}
		}
		return ProjectLoadedMsg{
			Project:  *project,
			Lines:    store.ProjectLines(uid, 99999),
			Speakers: store.ProjectSpeakers(uid),
		}
	}
}

// Update processes messages and returns the updated model and any
// commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ProjectsLoadedMsg:
		m.projects = msg.Projects
		if m.selected >= len(m.projects) {
			m.selected = max(0, len(m.projects)-1)
		}
		m.errorMessage = ""
		return m, nil

	case ProjectLoadedMsg:
		m.screen = ScreenDetail
		m.project = msg.Project
		m.lines = msg.Lines
		m.speakers = msg.Speakers
		m.names = map[string]string{}
		for _, sp := range msg.Speakers {
			m.names[sp.SpeakerID] = sp.Name
		}
		m.detailScroll = 0
		m.errorMessage = ""
		return m, nil

	case LoadErrorMsg:
		m.errorMessage = msg.Err.Error()
		return m, nil
	}

	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		return m, tea.Quit

	case KeyJ, KeyDown:
		if m.screen == ScreenList {
			if m.selected < len(m.projects)-1 {
				m.selected++
			}
		} else {
			if m.detailScroll < m.maxDetailScroll() {
				m.detailScroll++
			}
		}
		return m, nil

	case KeyK, KeyUp:
		if m.screen == ScreenList {
			if m.selected > 0 {
				m.selected--
			}
		} else if m.detailScroll > 0 {
			m.detailScroll--
		}
		return m, nil

	case KeyEnter:
		if m.screen == ScreenList && m.selected < len(m.projects) {
			return m, loadProjectCmd(m.store, m.projects[m.selected].UID)
		}
		return m, nil

	case KeyBack:
		if m.screen == ScreenDetail {
			m.screen = ScreenList
			return m, loadProjectsCmd(m.store)
		}
		return m, nil

	case KeyReload:
		if m.screen == ScreenDetail {
			return m, loadProjectCmd(m.store, m.project.UID)
		}
		return m, loadProjectsCmd(m.store)
	}

	return m, nil
}

func (m Model) maxDetailScroll() int {
	total := len(m.lines)
	visible := m.visibleLines()
	if total <= visible {
		return 0
	}
	return total - visible
}

func (m Model) visibleLines() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + info(2) + divider(2) + footer(1) + error(1)
	return max(5, m.height-7)
}

// View renders the active screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.screen == ScreenList {
		sections = append(sections, m.renderProjectList())
	} else {
		sections = append(sections, m.renderProjectDetail())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.errorMessage != "" {
		sections = append(sections, ui.ErrorStyle.Render("Error: ")+m.errorMessage)
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("TRANSCRYPT")
	if m.screen == ScreenDetail {
		name := m.project.GivenName
		if name == "" {
			name = fmt.Sprintf("Project %d", m.project.UID)
		}
		return title + ui.DimStyle.Render(" — "+name)
	}
	return title + ui.DimStyle.Render(fmt.Sprintf(" — %d projects", len(m.projects)))
}

func (m Model) renderProjectList() string {
	var lines []string

	header := fmt.Sprintf("  %-5s %-30s %-12s %6s %9s  %s",
		"UID", "NAME", "STATUS", "LINES", "SPEAKERS", "CREATED")
	lines = append(lines, ui.HeaderStyle.Render(header))

	if len(m.projects) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No projects yet. Run: transcrypt process <audio>"))
	}

	visible := m.visibleLines() - 1
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := min(len(m.projects), start+visible)

	for i := start; i < end; i++ {
		p := m.projects[i]
		name := p.GivenName
		if name == "" {
			name = "(unnamed)"
		}
		left := fmt.Sprintf("%-5d %-30s ", p.UID, truncateToWidth(name, 30))
		status := fmt.Sprintf("%-12s", statusLabel(p.Status))
		rest := fmt.Sprintf("%6d %9d  %s",
			p.NumLines, p.NumSpeakers, p.Created.Format("2006-01-02 15:04"))
		if i == m.selected {
			lines = append(lines, ui.SelectedStyle.Render("> "+left+status+rest))
		} else {
			style := ui.StatusPendingStyle
			if statusDone(p.Status) {
				style = ui.StatusDoneStyle
			}
			lines = append(lines, "  "+left+style.Render(status)+rest)
		}
	}

	return padToHeight(lines, m.visibleLines())
}

func (m Model) renderProjectDetail() string {
	var lines []string

	info := fmt.Sprintf("  uid %d · status %s · %d lines (%d with content) · %s",
		m.project.UID, statusLabel(m.project.Status),
		m.project.NumLines, m.project.NumTrueLines, formatMS(m.project.LengthMS))
	lines = append(lines, ui.DimStyle.Render(info))
	lines = append(lines, ui.DimStyle.Render("  "+m.project.FilePath))

	var tokens []string
	for _, sp := range m.speakers {
		tokens = append(tokens, sp.SpeakerID+"="+sp.Name)
	}
	if len(tokens) > 0 {
		lines = append(lines, ui.SpeakerStyle.Render("  "+strings.Join(tokens, "  ")))
	}
	lines = append(lines, "")

	if len(m.lines) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No lines recorded for this project."))
	}

	textWidth := max(20, m.width-34)
	var rows []string
	for _, l := range m.lines {
		ts := ui.DimStyle.Render(fmt.Sprintf("[%s-%s]", formatMS(l.StartMS), formatMS(l.StopMS)))
		name := m.names[l.SpeakerID]
		if name == "" {
			name = l.SpeakerID
		}
		content := l.Content
		if strings.TrimSpace(content) == "" {
			content = ui.DimStyle.Render("(no transcription)")
		}
		wrapped := wrapText(content, textWidth)
		rows = append(rows, ts+" "+ui.SpeakerStyle.Render("["+name+"]")+" "+wrapped[0])
		for _, wl := range wrapped[1:] {
			rows = append(rows, strings.Repeat(" ", 24)+wl)
		}
	}

	visible := m.visibleLines() - len(lines)
	start := min(m.detailScroll, max(0, len(rows)-1))
	end := min(len(rows), start+max(1, visible))
	for i := start; i < end; i++ {
		lines = append(lines, "  "+rows[i])
	}

	return padToHeight(lines, m.visibleLines())
}

func (m Model) renderFooter() string {
	var parts []string
	if m.screen == ScreenList {
		parts = append(parts, ui.FooterKeyStyle.Render("j/k")+ui.FooterDescStyle.Render(" Nav"))
		parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Open"))
	} else {
		parts = append(parts, ui.FooterKeyStyle.Render("j/k")+ui.FooterDescStyle.Render(" Scroll"))
		parts = append(parts, ui.FooterKeyStyle.Render("Esc")+ui.FooterDescStyle.Render(" Back"))
	}
	parts = append(parts, ui.FooterKeyStyle.Render("r")+ui.FooterDescStyle.Render(" Reload"))
	parts = append(parts, ui.FooterKeyStyle.Render("q")+ui.FooterDescStyle.Render(" Quit"))
	return strings.Join(parts, "  ")
}

func statusLabel(status int) string {
	return pipeline.Status(status).String()
}

// statusDone reports whether a project has reached a transcribed state
// (transcribed, resumed or imported).
func statusDone(status int) bool {
	return status >= int(pipeline.StatusTranscribed)
}

// formatMS renders a millisecond offset as HH:MM:SS.
func formatMS(ms int64) string {
	s := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// Helpers

func padToHeight(lines []string, height int) string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
