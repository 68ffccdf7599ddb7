package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"humanguard/internal/bootstrap"
	guarddto "humanguard/internal/modules/guard/dto"
	scheduledomain "humanguard/internal/modules/schedule/domain"
	"humanguard/internal/platform/config"
	apperrors "humanguard/internal/platform/errors"
	"humanguard/internal/platform/logging"
	"humanguard/internal/ui/status"
)

// exitError carries a verdict exit code. Its message has already been shown.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func exitWith(code int) error {
	if code == 0 {
		return nil
	}
	return &exitError{code: code}
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

type rootOptions struct {
	logLevel string
}

// legacyFlags is the flag form hooks were installed with.
type legacyFlags struct {
	check   bool
	start   bool
	end     string
	touch   string
	force   bool
	workDir string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	legacy := &legacyFlags{}

	root := &cobra.Command{
		Use:           "human-guard",
		Short:         "Schedule and break enforcement for work sessions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLegacy(cmd, opts, legacy)
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error (default $HUMAN_GUARD_LOG_LEVEL or warn)")

	root.Flags().BoolVar(&legacy.check, "check", false, "check schedule and write session state")
	root.Flags().BoolVar(&legacy.start, "start-session", false, "register a new session")
	root.Flags().StringVar(&legacy.end, "end-session", "", "end a session by `ID`")
	root.Flags().StringVar(&legacy.touch, "touch-session", "", "record activity for a session `ID`")
	root.Flags().BoolVar(&legacy.force, "force", false, "override blocks")
	root.Flags().StringVar(&legacy.workDir, "dir", ".", "project directory")
	root.MarkFlagsMutuallyExclusive("check", "start-session", "end-session", "touch-session")

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	return root
}

func runLegacy(cmd *cobra.Command, opts *rootOptions, legacy *legacyFlags) error {
	switch {
	case legacy.check:
		return withApp(opts, func(app *bootstrap.App) error {
			return runCheck(cmd, app, legacy.force)
		})
	case legacy.start:
		return withApp(opts, func(app *bootstrap.App) error {
			return runStart(cmd, app, legacy.workDir, legacy.force)
		})
	case legacy.end != "":
		return withApp(opts, func(app *bootstrap.App) error {
			_, err := app.SessionCLI.End(cmd.Context(), legacy.end)
			return err
		})
	case legacy.touch != "":
		return withApp(opts, func(app *bootstrap.App) error {
			_, err := app.SessionCLI.Touch(cmd.Context(), legacy.touch)
			return err
		})
	default:
		return cmd.Help()
	}
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working dir: %w", err)
	}
	cfg, err := config.New(workDir)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	slog.SetDefault(logging.New(os.Stderr, level))
	return bootstrap.New(cfg)
}

func withApp(opts *rootOptions, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Debug("close app", "error", err)
		}
	}()
	return fn(app)
}

func runCheck(cmd *cobra.Command, app *bootstrap.App, force bool) error {
	report, err := app.GuardCLI.Check(cmd.Context(), force)
	if err != nil {
		return err
	}
	if report.Message != "" {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), report.Message)
	}
	return exitWith(report.ExitCode)
}

func runStart(cmd *cobra.Command, app *bootstrap.App, workDir string, force bool) error {
	out, err := app.SessionCLI.Start(cmd.Context(), workDir, force)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.SessionID)
	return nil
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var force bool
	check := &cobra.Command{
		Use:   "check",
		Short: "Check schedule and break policy, then write session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				return runCheck(cmd, app, force)
			})
		},
	}
	check.Flags().BoolVar(&force, "force", false, "override blocks")
	return check
}

func newSessionCmd(opts *rootOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Session ledger commands"}

	var workDir string
	var forced bool
	start := &cobra.Command{
		Use:   "start",
		Short: "Register a new session and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				return runStart(cmd, app, workDir, forced)
			})
		},
	}
	start.Flags().StringVar(&workDir, "dir", ".", "project directory")
	start.Flags().BoolVar(&forced, "force", false, "mark the session as forced")

	end := &cobra.Command{
		Use:   "end <id>",
		Short: "Close the most recent open session with this id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.End(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !out.Found {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no open session %s\n", out.SessionID)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: %s end=%s last_activity=%s", out.SessionID, out.EndTime, out.LastActivity)
				if out.WorkSinceBreak != nil {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " work_since_break=%dmin", *out.WorkSinceBreak)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				return nil
			})
		},
	}

	touch := &cobra.Command{
		Use:   "touch <id>",
		Short: "Record activity for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Touch(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "activity %s at=%s\n", out.SessionID, out.At.Format(time.RFC3339))
				return nil
			})
		},
	}

	cleanup := &cobra.Command{
		Use:   "cleanup",
		Short: "Close orphaned sessions older than four hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Cleanup(cmd.Context())
				if err != nil {
					return err
				}
				if len(out.Closed) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no orphaned sessions")
					return nil
				}
				for _, sessionID := range out.Closed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "closed %s\n", sessionID)
				}
				return nil
			})
		},
	}

	breakCmd := &cobra.Command{
		Use:   "break",
		Short: "Report whether enough break time has passed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				minBreak, maxContinuous, err := breakPolicy(cmd.Context(), app)
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.CheckBreak(cmd.Context(), minBreak, maxContinuous)
				if err != nil {
					return err
				}
				if out.OK {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "break ok")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Need %d more minutes of break.\n", out.MinutesLeft)
				return exitWith(1)
			})
		},
	}

	session.AddCommand(start, end, touch, cleanup, breakCmd)
	return session
}

// breakPolicy reads break limits from the guard config, or the defaults when
// none is installed.
func breakPolicy(ctx context.Context, app *bootstrap.App) (int, int, error) {
	out, err := app.ScheduleCLI.Evaluate(ctx)
	if errors.Is(err, apperrors.ErrNoConfig) {
		return scheduledomain.DefaultMinBreakMinutes, scheduledomain.DefaultMaxContinuousMinutes, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return out.Config.Sessions.MinBreakMinutes, out.Config.Sessions.MaxContinuousMinutes, nil
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List recent sessions from the history index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				sessions, err := app.SessionCLI.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					state := "closed"
					if s.Open {
						state = "open"
					}
					if s.Forced {
						state += ",forced"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%dmin\t%s\t%s\n", s.ID, s.StartTime, s.DurationMin, state, s.ProjectDir)
				}
				return nil
			})
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "number of sessions to show (0 for all)")
	return history
}

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite history index from the session ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Reindex(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed: %d sessions\n", out.Indexed)
				return nil
			})
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Guard configuration commands"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active guard config as parsed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.ScheduleCLI.ShowConfig(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", out.Path, out.YAML)
				return nil
			})
		},
	})
	return cfgCmd
}

// statusText renders countdowns against the report's own sample time.
func statusText(report guarddto.ReportOutput) string {
	return status.Render(report, report.At)
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var watch bool
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current verdict, break state and countdowns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				if watch {
					return bootstrap.RunStatus(app)
				}
				report, err := app.GuardCLI.Status(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), statusText(report))
				return nil
			})
		},
	}
	statusCmd.Flags().BoolVar(&watch, "watch", false, "keep refreshing in a terminal view")
	return statusCmd
}
