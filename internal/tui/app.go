// internal/tui/app.go
//
// This is the full-screen front end for the booking console.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: the theater, the open draft and the widgets
// 2. Update: a function that updates state based on messages
// 3. View: a function that renders state to a string
//
// The booking rules live in internal/booking; this file only routes keys to them.

package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/gic-cinemas/internal/booking"
	"github.com/kingrea/gic-cinemas/internal/command"
	"github.com/kingrea/gic-cinemas/internal/input"
	"github.com/kingrea/gic-cinemas/internal/logbook"
	"github.com/kingrea/gic-cinemas/internal/render"
)

// appState represents which "screen" we're on
type appState int

const (
	stateSetup    appState = iota // Title, rows and seats per row
	stateMainMenu                 // Book / Check / Exit
	stateTickets                  // Ticket count prompt
	stateReseat                   // Draft open, waiting for accept or a start seat
	stateCheck                    // Booking id prompt
)

// Exit codes reported by ExitCode.
const (
	exitOK          = 0
	exitFatal       = 1
	exitInterrupted = 130
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogbook journals activity and shows the tail in a log panel.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// WithCinemaName sets the venue shown in the header and farewell.
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

// WithGlyphs overrides the seat map symbols.
func WithGlyphs(g render.Glyphs) AppOption {
	return func(a *App) {
		a.glyphs = g
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state    appState
	logbook  *logbook.Logbook
	registry *command.Registry
	session  *command.Session
	draft    *booking.Draft
	checked  string

	cinema string
	prefix string
	digits int
	glyphs render.Glyphs

	// UI components
	mainMenu  list.Model
	prompt    textinput.Model
	statusMsg string
	farewell  string
	exitCode  int

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	key   string
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance waiting for the theater setup line.
func NewApp(opts ...AppOption) *App {
	mainMenu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)
	mainMenu.SetShowHelp(false)

	prompt := textinput.New()
	prompt.Prompt = "> "
	prompt.CharLimit = 80
	prompt.Focus()

	app := &App{
		state:    stateSetup,
		registry: command.DefaultRegistry(),
		cinema:   command.DefaultCinemaName,
		prefix:   booking.DefaultIDPrefix,
		digits:   booking.DefaultIDDigits,
		glyphs:   render.DefaultGlyphs(),
		mainMenu: mainMenu,
		prompt:   prompt,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.mainMenu.Title = strings.ToUpper(app.cinema)
	app.prompt.Placeholder = "Inception 8 10"
	app.logInfo("Session opened · tui")
	return app
}

// ExitCode is the process exit status once the program has quit.
func (a *App) ExitCode() int { return a.exitCode }

// Farewell is the goodbye line to print after the alternate screen closes.
func (a *App) Farewell() string { return a.farewell }

// Session returns the booking session, or nil before setup.
func (a *App) Session() *command.Session { return a.session }

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-10))
		a.prompt.Width = max(10, msg.Width-10)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a.quit(exitInterrupted, "")
		case "esc":
			if a.state != stateSetup && a.state != stateMainMenu {
				return a.returnToMainMenu("")
			}
			return a, nil
		case "q":
			if a.state == stateMainMenu {
				return a.quit(exitOK, command.Farewell(a.cinema))
			}
		case "enter":
			return a.submit()
		}
		if a.state == stateMainMenu {
			if _, err := a.registry.Resolve(msg.String()); err == nil {
				return a.choose(msg.String())
			}
		}
	}

	var cmd tea.Cmd
	if a.state == stateMainMenu {
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	} else {
		a.prompt, cmd = a.prompt.Update(msg)
	}
	return a, cmd
}

// submit handles enter for the current screen.
func (a *App) submit() (tea.Model, tea.Cmd) {
	if a.state == stateMainMenu {
		item, ok := a.mainMenu.SelectedItem().(menuItem)
		if !ok {
			return a, nil
		}
		return a.choose(item.key)
	}
	raw := strings.TrimSpace(a.prompt.Value())
	a.prompt.SetValue("")
	switch a.state {
	case stateSetup:
		return a.handleSetup(raw)
	case stateTickets:
		return a.handleTickets(raw)
	case stateReseat:
		return a.handleReseat(raw)
	case stateCheck:
		return a.handleCheck(raw)
	}
	return a, nil
}

func (a *App) handleSetup(raw string) (tea.Model, tea.Cmd) {
	setup, err := input.ParseInitLine(raw)
	if err != nil {
		a.statusMsg = err.Error()
		return a, nil
	}
	ctx, err := booking.NewContext(setup.Title, setup.Rows, setup.Cols,
		booking.WithIDPrefix(a.prefix),
		booking.WithIDDigits(a.digits),
	)
	if err != nil {
		return a.fail(err)
	}
	a.session = command.NewSession(ctx,
		command.WithRenderer(render.NewStyled(a.glyphs)),
		command.WithJournal(a.logbook),
		command.WithCinemaName(a.cinema),
	)
	a.logInfo("Init · %s with %d rows of %d seats", setup.Title, setup.Rows, setup.Cols)
	return a.returnToMainMenu("")
}

// choose opens the screen for the command bound to key.
func (a *App) choose(key string) (tea.Model, tea.Cmd) {
	a.logInfo("Menu · %s selected", key)
	switch key {
	case (command.Book{}).Key():
		return a.openPrompt(stateTickets, "1")
	case (command.Check{}).Key():
		a.checked = ""
		return a.openPrompt(stateCheck, a.session.IDPattern.Example())
	case (command.Exit{}).Key():
		return a.quit(exitOK, command.Farewell(a.cinema))
	}
	a.statusMsg = command.MsgInvalidSelection
	return a, nil
}

func (a *App) handleTickets(raw string) (tea.Model, tea.Cmd) {
	if raw == "" {
		return a.returnToMainMenu("")
	}
	count, err := input.ParseTicketCount(raw)
	if err != nil {
		a.statusMsg = err.Error()
		return a, nil
	}
	draft, err := a.session.Desk.Begin(count)
	if err != nil {
		msg, fatal := command.BeginFailure(err)
		if fatal != nil {
			return a.fail(fatal)
		}
		a.statusMsg = msg
		return a, nil
	}
	a.draft = draft
	a.statusMsg = command.Reserved(count, a.session.Context.Theater.Title()) + "  " + command.BookingIDLine(draft.ID())
	return a.openPrompt(stateReseat, "B03")
}

func (a *App) handleReseat(raw string) (tea.Model, tea.Cmd) {
	if raw == "" {
		confirmed, err := a.draft.Confirm()
		if err != nil {
			return a.fail(err)
		}
		a.draft = nil
		return a.returnToMainMenu(command.Confirmed(confirmed.ID()))
	}
	start, err := input.ParseStartSeat(a.session.Context.Theater, raw)
	if err != nil {
		a.statusMsg = err.Error()
		return a, nil
	}
	if _, err := a.draft.Reseat(start); err != nil {
		if !booking.IsInfeasible(err) {
			return a.fail(err)
		}
		a.statusMsg = command.MsgReseatFailed
		return a, nil
	}
	a.statusMsg = command.MsgUpdatedSelection + " " + command.BookingIDLine(a.draft.ID())
	return a, nil
}

func (a *App) handleCheck(raw string) (tea.Model, tea.Cmd) {
	if raw == "" {
		return a.returnToMainMenu("")
	}
	a.checked = ""
	id, err := input.ParseBookingID(raw, a.session.IDPattern)
	if err != nil {
		a.statusMsg = err.Error()
		a.appendSuggestion(raw)
		return a, nil
	}
	found, err := a.session.Desk.Check(id)
	if err != nil {
		if !errors.Is(err, booking.ErrNotFound) {
			return a.fail(err)
		}
		a.statusMsg = command.MsgNotFound
		a.appendSuggestion(raw)
		return a, nil
	}
	a.checked = found.ID()
	a.statusMsg = fmt.Sprintf("%s · %s", found.ID(), strings.Join(found.Codes(), " "))
	a.logInfo("Check · %s viewed", found.ID())
	return a, nil
}

func (a *App) appendSuggestion(typed string) {
	prefix, _ := a.session.Context.Registry.IDFormat()
	if hint := command.Suggest(typed, prefix, a.session.Context.Registry.IDs()); hint != "" {
		a.statusMsg += " " + command.DidYouMean(hint)
	}
}

func (a *App) openPrompt(state appState, placeholder string) (tea.Model, tea.Cmd) {
	a.state = state
	a.prompt.SetValue("")
	a.prompt.Placeholder = placeholder
	return a, a.prompt.Focus()
}

// returnToMainMenu abandons any open draft and refreshes the menu labels.
func (a *App) returnToMainMenu(status string) (tea.Model, tea.Cmd) {
	if a.draft != nil {
		a.draft.Abandon()
		a.draft = nil
	}
	a.state = stateMainMenu
	a.checked = ""
	a.statusMsg = status
	a.mainMenu.SetItems(a.menuItems())
	return a, nil
}

func (a *App) menuItems() []list.Item {
	var items []list.Item
	for _, cmd := range a.registry.Commands() {
		info := cmd.Info()
		items = append(items, menuItem{key: info.Key, title: cmd.Label(a.session.Context), desc: info.Help})
	}
	return items
}

func (a *App) quit(code int, farewell string) (tea.Model, tea.Cmd) {
	if a.draft != nil {
		a.draft.Abandon()
		a.draft = nil
	}
	a.exitCode = code
	a.farewell = farewell
	if code == exitInterrupted {
		a.logWarn("Exit · interrupted")
	} else {
		a.logInfo("Exit · session closed")
	}
	return a, tea.Quit
}

// fail stops the program on a broken booking invariant.
func (a *App) fail(err error) (tea.Model, tea.Cmd) {
	a.logError("Exit · fatal: %v", err)
	a.exitCode = exitFatal
	a.farewell = "Fatal: " + err.Error()
	return a, tea.Quit
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render(fmt.Sprintf("⬡ %s", strings.ToUpper(a.cinema)))

	var content string
	switch a.state {
	case stateSetup:
		content = a.renderPrompt(command.PromptInit)
	case stateMainMenu:
		content = a.mainMenu.View()
	case stateTickets:
		content = lipgloss.JoinVertical(lipgloss.Left, a.renderSeatMap(render.Highlight{}), "", a.renderPrompt(command.PromptTickets))
	case stateReseat:
		content = lipgloss.JoinVertical(lipgloss.Left, a.renderSeatMap(render.Highlight{Preview: a.draft.Seats()}), "", a.renderPrompt(command.PromptReseat))
	case stateCheck:
		content = lipgloss.JoinVertical(lipgloss.Left, a.renderSeatMap(render.Highlight{BookingID: a.checked}), "", a.renderPrompt(command.PromptBookingID))
	}
	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, width-4)).
		Render(content)

	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer, a.renderHints())
	return strings.Join(sections, "\n")
}

func (a *App) renderPrompt(text string) string {
	label := strings.TrimSuffix(text, "\n> ")
	return lipgloss.JoinVertical(lipgloss.Left, label, a.prompt.View())
}

func (a *App) renderSeatMap(h render.Highlight) string {
	if a.session == nil {
		return ""
	}
	t := a.session.Context.Theater
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("%s · %d of %d seats available", t.Title(), t.Available(), t.Capacity()))
	legend := render.StyledLegend(a.glyphs)
	return lipgloss.JoinVertical(lipgloss.Left, title, "", a.session.Renderer.SeatMap(t, h), "", legend)
}

func (a *App) renderHints() string {
	var hint string
	switch a.state {
	case stateSetup:
		hint = "Enter → create theater    Ctrl+C → quit"
	case stateMainMenu:
		hint = "Enter or 1-3 → choose    q → exit    Ctrl+C → quit"
	default:
		hint = "Enter → submit    Esc → main menu    Ctrl+C → quit"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Render(hint)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(app *App) (int, error) {
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return exitFatal, err
	}
	return app.ExitCode(), nil
}
