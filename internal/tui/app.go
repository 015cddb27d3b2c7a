package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blake7/watchstopwatch/internal/database/repository"
	"github.com/blake7/watchstopwatch/internal/stopwatch"
)

// Archiver persists a finished session. Implemented by service.ArchiveService.
type Archiver interface {
	Archive(ctx context.Context, snap stopwatch.Snapshot) (*repository.Session, error)
}

// Options holds presentation settings.
type Options struct {
	Interval     time.Duration
	Format       stopwatch.Format
	ShowProgress bool
}

// App is the bubbletea model driving the stopwatch face and lap list.
type App struct {
	ctx          context.Context
	engine       *stopwatch.Engine
	archive      Archiver
	interval     time.Duration
	format       stopwatch.Format
	showProgress bool

	keys     keyMap
	help     help.Model
	progress progress.Model

	state     appState
	status    string
	statusErr bool
	quitting  bool
	quitErr   error
}

type appState string

const (
	viewFace appState = "face"
	viewLaps appState = "laps"
)

// tickMsg asks the engine to refresh. epoch ties it to the schedule that
// created it; once Stop or Reset moves the engine on, the tick is dropped.
type tickMsg struct {
	epoch uint64
}

type archivedMsg struct {
	session *repository.Session
}

type errMsg struct{ error }

// New builds the model. archive may be nil to disable session history.
func New(ctx context.Context, engine *stopwatch.Engine, archive Archiver, opts Options) *App {
	if engine == nil {
		engine = stopwatch.New(nil)
	}
	if opts.Interval <= 0 {
		opts.Interval = stopwatch.DefaultInterval
	}
	if opts.Format == "" {
		opts.Format = stopwatch.FormatAuto
	}
	a := &App{
		ctx:          ctx,
		engine:       engine,
		archive:      archive,
		interval:     opts.Interval,
		format:       opts.Format,
		showProgress: opts.ShowProgress,
		keys:         defaultKeys(),
		help:         help.New(),
		progress:     progress.New(progress.WithSolidFill(string(progressColor(engine.Running()))), progress.WithoutPercentage(), progress.WithWidth(24)),
		state:        viewFace,
	}
	a.keys.sync(engine.Running())
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("stopwatch")
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = m.Width
	case tea.KeyMsg:
		return a.handleKey(m)
	case tickMsg:
		if a.engine.Refresh(m.epoch) {
			return a, a.tick()
		}
	case archivedMsg:
		if a.quitting {
			return a, tea.Quit
		}
		if m.session != nil {
			a.setStatus(fmt.Sprintf("saved %s (%d laps)", a.format.Render(m.session.ElapsedMillis), m.session.LapCount))
		}
	case errMsg:
		if a.quitting {
			a.quitErr = m.error
			return a, tea.Quit
		}
		a.status = "error: " + m.Error()
		a.statusErr = true
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, a.quit()
	case key.Matches(m, a.keys.Toggle):
		if a.engine.Running() {
			a.engine.Stop()
			a.keys.sync(false)
			a.setStatus("stopped")
			return a, nil
		}
		a.engine.Start()
		a.keys.sync(true)
		a.setStatus("")
		return a, a.tick()
	case key.Matches(m, a.keys.Lap):
		a.engine.Lap()
		n := a.engine.LapCount()
		a.setStatus(fmt.Sprintf("lap %d  %s", n, a.format.Render(a.engine.LapDuration(n-1))))
	case key.Matches(m, a.keys.Reset):
		snap := a.engine.Snapshot()
		a.engine.Reset()
		a.keys.sync(false)
		a.setStatus("reset")
		return a, a.archiveCmd(snap)
	case key.Matches(m, a.keys.Laps):
		if a.state == viewLaps {
			a.state = viewFace
		} else {
			a.state = viewLaps
		}
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) tick() tea.Cmd {
	epoch := a.engine.Epoch()
	return tea.Tick(a.interval, func(time.Time) tea.Msg {
		return tickMsg{epoch: epoch}
	})
}

// quit stops the engine and, when there is a session to keep, archives it
// before the program exits. The archive result message triggers tea.Quit.
func (a *App) quit() tea.Cmd {
	if a.quitting {
		return tea.Quit
	}
	snap := a.engine.Snapshot()
	a.engine.Stop()
	a.quitting = true
	if save := a.archiveCmd(snap); save != nil {
		return save
	}
	return tea.Quit
}

// Err reports an archive failure that happened while quitting.
func (a *App) Err() error {
	return a.quitErr
}

func (a *App) archiveCmd(snap stopwatch.Snapshot) tea.Cmd {
	if a.archive == nil || snap.Elapsed <= 0 {
		return nil
	}
	return func() tea.Msg {
		sess, err := a.archive.Archive(a.ctx, snap)
		if err != nil {
			slog.Error("archive session", "err", err)
			return errMsg{err}
		}
		if sess != nil {
			slog.Info("session archived", "id", sess.ID, "elapsed_ms", sess.ElapsedMillis, "laps", sess.LapCount)
		}
		return archivedMsg{session: sess}
	}
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}
