package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blake7/watchstopwatch/internal/stopwatch"
)

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	var body string
	if a.state == viewLaps {
		body = a.renderLaps()
	} else {
		body = a.renderFace()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", a.renderStatus(), a.help.View(a.keys))
}

func (a *App) renderFace() string {
	snap := a.engine.Snapshot()
	timeStyle := stoppedStyle
	if snap.Running {
		timeStyle = runningStyle
	}

	lines := []string{
		titleStyle.Render("Stopwatch"),
		timeStyle.Render(a.format.Render(snap.Elapsed)),
	}
	if n := len(snap.Laps); n > 0 {
		lines = append(lines, lapLineStyle.Render(fmt.Sprintf("Lap %d: %s", n+1, a.format.Render(snap.CurrentLapElapsed()))))
	}
	if a.showProgress {
		a.progress.FullColor = string(progressColor(snap.Running))
		lines = append(lines, "  "+a.progress.ViewAs(a.engine.LapProgress()))
	}
	lines = append(lines, hintStyle.Render(fmt.Sprintf("v for laps (%d)", len(snap.Laps))))
	return strings.Join(lines, "\n")
}

func (a *App) renderLaps() string {
	laps := a.engine.Laps()
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("All Laps (%d)", len(laps))))
	b.WriteString("\n")
	if len(laps) == 0 {
		b.WriteString(hintStyle.Render("No laps yet"))
		return b.String()
	}
	for _, row := range lapRows(laps, a.format) {
		style := rowStyle
		if row.latest {
			style = latestStyle
		}
		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("Lap %-3d %10s %10s", row.number, row.duration, row.total)))
	}
	return b.String()
}

type lapRow struct {
	number   int
	duration string
	total    string
	latest   bool
}

func lapRows(laps []int64, format stopwatch.Format) []lapRow {
	rows := make([]lapRow, len(laps))
	for i, total := range laps {
		rows[i] = lapRow{
			number:   i + 1,
			duration: format.Render(stopwatch.LapDuration(laps, i)),
			total:    format.Render(total),
			latest:   i == len(laps)-1,
		}
	}
	return rows
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return errorStyle.Render(a.status)
	}
	return statusStyle.Render(a.status)
}
