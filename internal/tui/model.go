// Package tui is the live terminal view of one instance: a ranked
// session table refreshed by a poller, with kill-by-keypress.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
	"github.com/LauJosefsen/mysql-admin-web/internal/monitor"
)

// Killer terminates a session on the monitored instance.
type Killer interface {
	Kill(ctx context.Context, id int64) error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	trxStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

type snapshotMsg monitor.Snapshot

type killDoneMsg struct {
	id  int64
	err error
}

// Model is the bubbletea model for the watch command.
type Model struct {
	instance  string
	killer    Killer
	snapshots <-chan monitor.Snapshot

	table    table.Model
	sessions []domain.EnrichedSession
	takenAt  time.Time
	pollErr  error
	status   string
	width    int
}

// NewModel creates the watch model. Snapshots arrive on ch; killer may
// be nil to disable the kill binding.
func NewModel(instance string, ch <-chan monitor.Snapshot, killer Killer) Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "USER", Width: 10},
		{Title: "DB", Width: 12},
		{Title: "COMMAND", Width: 10},
		{Title: "TIME", Width: 7},
		{Title: "TRX", Width: 7},
		{Title: "STATE", Width: 18},
		{Title: "INFO", Width: 48},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	t.SetStyles(styles)

	return Model{
		instance:  instance,
		killer:    killer,
		snapshots: ch,
		table:     t,
	}
}

func waitForSnapshot(ch <-chan monitor.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg(snap)
	}
}

func (m Model) kill(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return killDoneMsg{id: id, err: m.killer.Kill(ctx, id)}
	}
}

// Init starts waiting for the first snapshot.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.snapshots)
}

// Update handles refreshes and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(msg.Height - 4)
		return m, nil

	case snapshotMsg:
		m.takenAt = msg.TakenAt
		m.pollErr = msg.Err
		if msg.Err == nil {
			m.sessions = msg.Sessions
			m.table.SetRows(rowsFor(msg.Sessions))
		}
		return m, waitForSnapshot(m.snapshots)

	case killDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("kill %d failed: %v", msg.id, msg.err)
		} else {
			m.status = fmt.Sprintf("killed session %d", msg.id)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k":
			if m.killer == nil {
				return m, nil
			}
			if id, ok := m.selectedID(); ok {
				m.status = fmt.Sprintf("killing session %d...", id)
				return m, m.kill(id)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders title, table and status bar.
func (m Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("madw watch — %s", m.instance))

	status := "waiting for first snapshot..."
	if !m.takenAt.IsZero() {
		open := 0
		for _, s := range m.sessions {
			if s.HasTransaction() {
				open++
			}
		}
		status = fmt.Sprintf("%s · %d sessions · %d open transactions · k kill · q quit",
			m.takenAt.Format("15:04:05"), len(m.sessions), open)
	}
	bar := statusStyle.Render(status)
	if m.pollErr != nil {
		bar = errorStyle.Render("poll failed: " + m.pollErr.Error())
	}
	if m.status != "" {
		bar += "  " + statusStyle.Render(m.status)
	}

	return title + "\n" + m.table.View() + "\n" + bar + "\n"
}

// selectedID returns the session id of the highlighted row.
func (m Model) selectedID() (int64, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func rowsFor(sessions []domain.EnrichedSession) []table.Row {
	rows := make([]table.Row, 0, len(sessions))
	for _, s := range sessions {
		trx := "-"
		if s.HasTransaction() {
			if s.Transaction.HasKnownDuration() {
				trx = trxStyle.Render(fmt.Sprintf("%ds", s.Transaction.ActiveSeconds))
			} else {
				trx = trxStyle.Render("?")
			}
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(s.ID, 10),
			s.User,
			s.DB,
			s.Command,
			fmt.Sprintf("%ds", s.TimeSeconds),
			trx,
			s.State,
			s.Info,
		})
	}
	return rows
}
