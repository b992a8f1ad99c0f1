package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/robot"
)

// KeyColumns is the terminal width of one key.
const KeyColumns = 6

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	whiteKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("255"))
	blackKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236"))
	litKey       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	fingerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeFinger = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	hudStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Layout is the terminal layout: one KeyColumns-wide cell per key.
func Layout() keyboard.Layout {
	return keyboard.NewLayout(KeyColumns * keyboard.KeyCount)
}

// KeyboardRow draws the keys with their note names. lit is the key drawn pressed, or -1.
func KeyboardRow(lit int) string {
	cells := make([]string, keyboard.KeyCount)
	for i, name := range keyboard.NoteOrder {
		style := whiteKey
		if strings.Contains(name, "#") {
			style = blackKey
		}
		if i == lit {
			style = litKey
		}
		cells[i] = style.Width(KeyColumns).Align(lipgloss.Center).Render(name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// HandRow places finger numbers 1-5 at the columns of their positions. Fractional
// positions land between keys.
func HandRow(layout keyboard.Layout, positions []float64, active int) string {
	cols := make([]string, layout.Width)
	for i := range cols {
		cols[i] = " "
	}
	for f, pos := range positions {
		c := int(math.Round(layout.KeyIndexToPosition(pos)))
		if c < 0 || c >= len(cols) {
			continue
		}
		style := fingerStyle
		if f == active {
			style = activeFinger
		}
		cols[c] = style.Render(fmt.Sprint(f + 1))
	}
	return strings.Join(cols, "")
}

// HUD is the status panel: the move in progress and the running statistics.
func HUD(st robot.State) string {
	var b strings.Builder
	if st.Note != "" {
		fmt.Fprintf(&b, "Note: %-4s Finger: %s  Distance: %.2f\n", st.Note, oneBased(st.Finger), st.Remaining)
	} else {
		b.WriteString("Note: -    Finger: -  Distance: -\n")
	}
	fmt.Fprintf(&b, "Total distance: %.2f keys  Most used finger: %s", st.TotalDistance, oneBased(st.MostUsed))
	return b.String()
}

func oneBased(finger int) string {
	if finger < 0 {
		return "-"
	}
	return fmt.Sprint(finger + 1)
}

func (m Model) View() string {
	lit := -1
	if m.state.KeyLit {
		lit = m.state.Target
	}
	rows := []string{
		titleStyle.Render("Greedy finger choice"),
		hudStyle.Render(HUD(m.state)),
		KeyboardRow(lit),
		HandRow(m.layout, m.state.Positions, m.state.Finger),
	}
	if m.err != nil {
		rows = append(rows, errStyle.Render(m.err.Error()))
	}
	help := "space: play  r: reset  q: quit"
	if m.state.Playing {
		help = "playing..."
	}
	rows = append(rows, helpStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}
