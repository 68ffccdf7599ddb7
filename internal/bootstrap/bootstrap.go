package bootstrap

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	guardinadapter "humanguard/internal/modules/guard/adapter/in"
	guardoutadapter "humanguard/internal/modules/guard/adapter/out"
	guardservice "humanguard/internal/modules/guard/service"
	guardusecase "humanguard/internal/modules/guard/usecase"
	scheduleinadapter "humanguard/internal/modules/schedule/adapter/in"
	scheduleoutadapter "humanguard/internal/modules/schedule/adapter/out"
	scheduleservice "humanguard/internal/modules/schedule/service"
	scheduleusecase "humanguard/internal/modules/schedule/usecase"
	sessioninadapter "humanguard/internal/modules/session/adapter/in"
	sessionoutadapter "humanguard/internal/modules/session/adapter/out"
	sessionservice "humanguard/internal/modules/session/service"
	sessionusecase "humanguard/internal/modules/session/usecase"
	"humanguard/internal/platform/clock"
	"humanguard/internal/platform/config"
	"humanguard/internal/platform/id"
	"humanguard/internal/ui/status"
)

type App struct {
	ScheduleCLI scheduleinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	GuardCLI    guardinadapter.CLIHandler

	closers []io.Closer
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.ShortHex{}

	scheduleUC := scheduleusecase.NewInteractor(scheduleservice.NewScheduleService(
		clk,
		scheduleoutadapter.NewFileConfigSource(cfg.ConfigPaths),
	))

	history := sessionoutadapter.NewSQLiteHistoryProjector(cfg.HistoryPath)
	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		clk,
		ids,
		sessionoutadapter.NewJSONLedgerStore(cfg.LedgerPath),
		sessionoutadapter.NewFileSentinelStore(cfg.GuardDir),
		sessionoutadapter.NewFileMarkerStore(cfg.GuardDir),
		history,
	))

	guardUC := guardusecase.NewInteractor(guardservice.NewGuardService(
		clk,
		ids,
		guardoutadapter.NewScheduleReaderAdapter(scheduleUC),
		guardoutadapter.NewSessionLedgerAdapter(sessionUC),
		guardoutadapter.NewJSONStateWriter(cfg.StatePath),
	))

	app := &App{
		ScheduleCLI: scheduleinadapter.NewCLIHandler(scheduleUC),
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		GuardCLI:    guardinadapter.NewCLIHandler(guardUC),
	}
	if closer, ok := history.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}
	return app, nil
}

// Close releases stores opened lazily during the command.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func RunStatus(app *App) error {
	program := tea.NewProgram(status.New(app.GuardCLI), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
