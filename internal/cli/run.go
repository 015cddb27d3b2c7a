package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/blake7/watchstopwatch/internal/config"
	"github.com/blake7/watchstopwatch/internal/stopwatch"
	"github.com/blake7/watchstopwatch/internal/tui"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Plain bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the stopwatch",
		Long: `Start the interactive stopwatch.

With --plain the stopwatch reads commands (start, stop, lap, reset, quit)
from stdin, one per line, and redraws the elapsed time on a single line.

Example:
  watchstopwatch run
  watchstopwatch run --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStopwatch(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "line mode without the full-screen UI")

	return cmd
}

func runStopwatch(cmd *cobra.Command, opts *RunOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	logs, err := setupLogging(cfg.Log, opts.Verbose)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to set up logging", err)
	}
	defer logs.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var archiver tui.Archiver
	if cfg.History.Enabled {
		store, err := openHistoryStore(cfg.History)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open history", err)
		}
		defer store.Close()
		archiver = store.archive
	}

	slog.Info("starting stopwatch", "plain", opts.Plain, "interval", cfg.Refresh.Interval, "format", cfg.Display.Format, "history", cfg.History.Enabled)

	if opts.Plain {
		loop := stopwatch.NewLoop(stopwatch.New(nil), cfg.Refresh.Interval)
		return runPlain(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), loop, cfg.DisplayFormat(), archiver)
	}

	app := tui.New(ctx, stopwatch.New(nil), archiver, tui.Options{
		Interval:     cfg.Refresh.Interval,
		Format:       cfg.DisplayFormat(),
		ShowProgress: cfg.Display.ShowProgress,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return WrapExitError(ExitFailure, "stopwatch exited", err)
	}
	if err := app.Err(); err != nil {
		return WrapExitError(ExitFailure, "failed to save session", err)
	}
	return nil
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// runPlain drives loop from line commands on in until quit, EOF or ctx
// cancellation. The session is stopped and archived on the way out.
func runPlain(ctx context.Context, in io.Reader, out io.Writer, loop *stopwatch.Loop, format stopwatch.Format, archiver tui.Archiver) error {
	w := &syncWriter{w: out}
	loop.Subscribe(func(s stopwatch.Snapshot) {
		if s.Running {
			fmt.Fprintf(w, "\r%s", format.Render(s.Elapsed))
		}
	})

	archive := func(ctx context.Context, snap stopwatch.Snapshot) {
		if archiver == nil || snap.Elapsed <= 0 {
			return
		}
		sess, err := archiver.Archive(ctx, snap)
		if err != nil {
			slog.Error("archive session", "err", err)
			fmt.Fprintf(w, "error: %v\n", err)
			return
		}
		if sess != nil {
			slog.Info("session archived", "id", sess.ID, "elapsed_ms", sess.ElapsedMillis)
			fmt.Fprintf(w, "saved session %s\n", sess.ID)
		}
	}

	// The reader cannot be interrupted, so it may outlive runPlain when ctx
	// is cancelled mid-read; quit stops it handing over further lines.
	quit := make(chan struct{})
	defer close(quit)
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-quit:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprintln(w, "commands: start, stop, lap, reset, quit")
	var err error
read:
	for {
		select {
		case <-ctx.Done():
			slog.Info("plain mode interrupted", "err", ctx.Err())
			fmt.Fprintln(w, "\ninterrupted")
			break read
		case line, ok := <-lines:
			if !ok {
				err = <-readErr
				break read
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "":
			case "start", "s":
				loop.Start(ctx)
			case "stop", "x":
				loop.Stop()
				fmt.Fprintf(w, "\nstopped at %s\n", format.Render(loop.Snapshot().Elapsed))
			case "lap", "l":
				before := len(loop.Snapshot().Laps)
				loop.Lap()
				snap := loop.Snapshot()
				if n := len(snap.Laps); n > before {
					fmt.Fprintf(w, "\nlap %d  %s  %s\n", n, format.Render(stopwatch.LapDuration(snap.Laps, n-1)), format.Render(snap.Laps[n-1]))
				}
			case "reset", "r":
				snap := loop.Snapshot()
				loop.Reset()
				fmt.Fprintln(w, "\nreset")
				archive(ctx, snap)
			case "quit", "q", "exit":
				break read
			default:
				fmt.Fprintf(w, "unknown command %q\n", line)
			}
		}
	}
	loop.Stop()
	archive(context.WithoutCancel(ctx), loop.Snapshot())
	return err
}
