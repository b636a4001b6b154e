// Package console runs the booking menu over a line-oriented terminal.
package console

import (
	"errors"
	"io"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/booking"
	"github.com/kingrea/gic-cinemas/internal/command"
	"github.com/kingrea/gic-cinemas/internal/input"
	"github.com/kingrea/gic-cinemas/internal/render"
)

// Process exit codes returned by Run.
const (
	ExitOK          = 0
	ExitFatal       = 1
	ExitInterrupted = 130
)

// App is the console booking program: initialisation prompt, then the menu
// loop until a command asks to exit.
type App struct {
	registry *command.Registry
	renderer render.Renderer
	journal  booking.Journal
	cinema   string
	prefix   string
	digits   int

	session *command.Session
}

// AppOption customizes an App during construction.
type AppOption func(*App)

// WithRegistry replaces the default book/check/exit menu.
func WithRegistry(r *command.Registry) AppOption {
	return func(a *App) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithRenderer overrides the seat map renderer.
func WithRenderer(r render.Renderer) AppOption {
	return func(a *App) {
		if r != nil {
			a.renderer = r
		}
	}
}

// WithJournal records the session's activity.
func WithJournal(j booking.Journal) AppOption {
	return func(a *App) {
		a.journal = j
	}
}

// WithCinemaName sets the venue shown in the banner and farewell.
func WithCinemaName(name string) AppOption {
	return func(a *App) {
		if name = strings.TrimSpace(name); name != "" {
			a.cinema = name
		}
	}
}

// WithIDFormat sets the booking id prefix and padding.
func WithIDFormat(prefix string, digits int) AppOption {
	return func(a *App) {
		a.prefix = prefix
		a.digits = digits
	}
}

// NewApp returns an App with the standard menu and plain ASCII seat maps.
func NewApp(opts ...AppOption) *App {
	a := &App{
		registry: command.DefaultRegistry(),
		renderer: render.NewASCII(render.DefaultGlyphs()),
		cinema:   command.DefaultCinemaName,
		prefix:   booking.DefaultIDPrefix,
		digits:   booking.DefaultIDDigits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Session returns the state built by the last Run, or nil before the
// theater has been initialised.
func (a *App) Session() *command.Session {
	return a.session
}

// Run drives the program over term and returns the process exit code.
// A closed input ends the program as if Exit had been chosen.
func (a *App) Run(term command.IO) int {
	return a.classify(term, a.run(term))
}

func (a *App) run(term command.IO) error {
	setup, err := a.initialise(term)
	if err != nil {
		return err
	}
	ctx, err := booking.NewContext(setup.Title, setup.Rows, setup.Cols,
		booking.WithIDPrefix(a.prefix),
		booking.WithIDDigits(a.digits),
	)
	if err != nil {
		return err
	}
	a.session = command.NewSession(ctx,
		command.WithRenderer(a.renderer),
		command.WithJournal(a.journal),
		command.WithCinemaName(a.cinema),
	)
	a.logInfo("Init · %s with %d rows of %d seats", setup.Title, setup.Rows, setup.Cols)

	for {
		a.renderMenu(term)
		raw, err := term.Prompt(command.PromptSelection)
		if err != nil {
			return err
		}
		cmd, err := a.registry.Resolve(strings.TrimSpace(raw))
		if err != nil {
			term.Write(command.MsgInvalidSelection)
			continue
		}
		if err := cmd.Run(a.session, term); err != nil {
			return err
		}
	}
}

func (a *App) initialise(term command.IO) (input.Init, error) {
	for {
		raw, err := term.Prompt(command.PromptInit)
		if err != nil {
			return input.Init{}, err
		}
		setup, err := input.ParseInitLine(raw)
		if err != nil {
			term.Write(err.Error())
			continue
		}
		return setup, nil
	}
}

func (a *App) renderMenu(term command.IO) {
	term.Newline()
	term.Write(command.Welcome(a.cinema))
	for _, cmd := range a.registry.Commands() {
		term.Write(cmd.Label(a.session.Context))
	}
}

func (a *App) classify(term command.IO, err error) int {
	switch {
	case err == nil, errors.Is(err, command.ErrExit):
		a.logInfo("Exit · session closed")
		return ExitOK
	case errors.Is(err, io.EOF):
		term.Newline()
		term.Write(command.Farewell(a.cinema))
		a.logInfo("Exit · input closed")
		return ExitOK
	case errors.Is(err, command.ErrInterrupted):
		term.Newline()
		a.logWarn("Exit · interrupted")
		return ExitInterrupted
	default:
		term.Write("Fatal: " + err.Error())
		a.logError("Exit · fatal: %v", err)
		return ExitFatal
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.journal != nil {
		a.journal.Info(format, args...)
	}
}

func (a *App) logWarn(format string, args ...any) {
	if a.journal != nil {
		a.journal.Warn(format, args...)
	}
}

func (a *App) logError(format string, args ...any) {
	if a.journal != nil {
		a.journal.Error(format, args...)
	}
}
