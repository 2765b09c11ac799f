package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/glowgrid/internal/grid"
	"github.com/san-kum/glowgrid/internal/render"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// cellWidth is the number of terminal columns per grid cell, which keeps
// tiles roughly square.
const cellWidth = 2

// SnapshotMsg carries a freshly published snapshot into the program.
type SnapshotMsg struct {
	Snapshot *grid.Snapshot
}

// Model draws the latest published snapshot. It never computes colors itself.
type Model struct {
	snap    *grid.Snapshot
	palette render.Palette
	frames  int
	source  <-chan *grid.Snapshot
	done    <-chan struct{}
}

// NewModel builds a view over snapshots arriving on source; done closes when
// the producer has stopped.
func NewModel(initial *grid.Snapshot, p render.Palette, source <-chan *grid.Snapshot, done <-chan struct{}) Model {
	return Model{
		snap:    initial,
		palette: p,
		source:  source,
		done:    done,
	}
}

func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.source, m.done)
}

func waitForSnapshot(source <-chan *grid.Snapshot, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-source:
			return SnapshotMsg{Snapshot: s}
		case <-done:
			return tea.Quit()
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case SnapshotMsg:
		m.snap = msg.Snapshot
		m.frames++
		return m, waitForSnapshot(m.source, m.done)
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("GLOWGRID") + "\n\n")
	s.WriteString(m.renderGrid())
	s.WriteString("\n\n")
	s.WriteString(labelStyle.Render("Size") + valueStyle.Render(fmt.Sprintf("%dx%d", m.snap.Rows(), m.snap.Cols())) + "\n")
	s.WriteString(labelStyle.Render("Frames") + valueStyle.Render(fmt.Sprintf("%d", m.frames)) + "\n")
	at := "-"
	if m.snap.Time() != 0 {
		at = time.UnixMilli(m.snap.Time()).Format("15:04:05.000")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(at) + "\n")
	s.WriteString(helpStyle.Render("Q:Quit"))
	return canvasStyle.Render(s.String())
}

func (m Model) renderGrid() string {
	pad := strings.Repeat(" ", cellWidth)
	var b strings.Builder
	for i := 0; i < m.snap.Rows(); i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j := 0; j < m.snap.Cols(); j++ {
			c := render.Composite(m.palette.Background, m.snap.At(i, j))
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(pad))
		}
	}
	return b.String()
}
