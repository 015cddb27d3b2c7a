package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blake7/watchstopwatch/internal/config"
	"github.com/blake7/watchstopwatch/internal/database/repository"
	"github.com/blake7/watchstopwatch/internal/stopwatch"
)

type sessionView struct {
	ID            string    `json:"id" yaml:"id"`
	RecordedAt    time.Time `json:"recorded_at" yaml:"recorded_at"`
	Elapsed       string    `json:"elapsed" yaml:"elapsed"`
	ElapsedMillis int64     `json:"elapsed_ms" yaml:"elapsed_ms"`
	LapCount      int       `json:"lap_count" yaml:"lap_count"`
	Laps          []lapView `json:"laps,omitempty" yaml:"laps,omitempty"`
}

type lapView struct {
	Number         int    `json:"number" yaml:"number"`
	Duration       string `json:"duration" yaml:"duration"`
	DurationMillis int64  `json:"duration_ms" yaml:"duration_ms"`
	Total          string `json:"total" yaml:"total"`
	TotalMillis    int64  `json:"total_ms" yaml:"total_ms"`
}

func newSessionView(s repository.Session, format stopwatch.Format) sessionView {
	v := sessionView{
		ID:            s.ID,
		RecordedAt:    s.RecordedAt,
		Elapsed:       format.Render(s.ElapsedMillis),
		ElapsedMillis: s.ElapsedMillis,
		LapCount:      s.LapCount,
	}
	for i, total := range s.Laps {
		d := stopwatch.LapDuration(s.Laps, i)
		v.Laps = append(v.Laps, lapView{
			Number:         i + 1,
			Duration:       format.Render(d),
			DurationMillis: d,
			Total:          format.Render(total),
			TotalMillis:    total,
		})
	}
	return v
}

// NewHistoryCommand creates the history command group.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect archived sessions",
	}
	cmd.AddCommand(newHistoryListCommand(rootOpts))
	cmd.AddCommand(newHistoryShowCommand(rootOpts))
	cmd.AddCommand(newHistoryClearCommand(rootOpts))
	return cmd
}

// withHistory loads config, opens the archive and hands both to fn.
func withHistory(opts *RootOptions, fn func(cfg config.Config, store *historyStore) error) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if !cfg.History.Enabled {
		return NewExitError(ExitCommandError, "history is disabled (history.enabled = false)")
	}
	store, err := openHistoryStore(cfg.History)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history", err)
	}
	defer store.Close()
	return fn(cfg, store)
}

func newHistoryListCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(rootOpts, func(cfg config.Config, store *historyStore) error {
				sessions, err := store.sessions.List(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("list sessions: %w", err)
				}
				format := cfg.DisplayFormat()
				views := make([]sessionView, 0, len(sessions))
				for _, s := range sessions {
					views = append(views, newSessionView(s, format))
				}

				w := cmd.OutOrStdout()
				if rootOpts.Output == "table" && len(views) == 0 {
					fmt.Fprintln(w, "No sessions recorded")
					return nil
				}
				return writeOutput(w, rootOpts.Output, views, func(t *tablewriter.Table) error {
					t.Header("ID", "Recorded", "Elapsed", "Laps")
					for _, v := range views {
						if err := t.Append(v.ID, v.RecordedAt.Local().Format("2006-01-02 15:04"), v.Elapsed, fmt.Sprint(v.LapCount)); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum sessions to show (0 for all)")
	return cmd
}

func newHistoryShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show one session with its laps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(rootOpts, func(cfg config.Config, store *historyStore) error {
				sess, err := store.sessions.Get(cmd.Context(), args[0])
				if errors.Is(err, repository.ErrNotFound) {
					return WrapExitError(ExitCommandError, "unknown session", err)
				}
				if err != nil {
					return fmt.Errorf("get session: %w", err)
				}
				view := newSessionView(*sess, cfg.DisplayFormat())

				w := cmd.OutOrStdout()
				if rootOpts.Output == "table" {
					fmt.Fprintf(w, "Session %s  %s  elapsed %s\n", view.ID, view.RecordedAt.Local().Format("2006-01-02 15:04"), view.Elapsed)
					if len(view.Laps) == 0 {
						fmt.Fprintln(w, "No laps")
						return nil
					}
				}
				return writeOutput(w, rootOpts.Output, view, func(t *tablewriter.Table) error {
					t.Header("Lap", "Duration", "Total")
					for _, l := range view.Laps {
						if err := t.Append(fmt.Sprint(l.Number), l.Duration, l.Total); err != nil {
							return err
						}
					}
					return nil
				})
			})
		},
	}
}

func newHistoryClearCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every archived session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return NewExitError(ExitCommandError, "refusing to clear history without --yes")
			}
			return withHistory(rootOpts, func(_ config.Config, store *historyStore) error {
				n, err := store.maintenance.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d sessions\n", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}

// writeOutput renders v as json or yaml, or fills a table via fill.
func writeOutput(w io.Writer, output string, v any, fill func(t *tablewriter.Table) error) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		t := tablewriter.NewWriter(w)
		if err := fill(t); err != nil {
			return err
		}
		return t.Render()
	}
}
