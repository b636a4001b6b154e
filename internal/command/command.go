// Package command holds the menu commands of the booking console and the
// session state they share.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/booking"
	"github.com/kingrea/gic-cinemas/internal/input"
	"github.com/kingrea/gic-cinemas/internal/render"
)

var (
	// ErrExit is returned by a command that ends the program normally.
	ErrExit = errors.New("command: exit requested")
	// ErrInterrupted is returned by an IO whose user pressed Ctrl+C.
	ErrInterrupted = errors.New("command: interrupted")
)

// IO is the line-oriented conversation with the patron.
type IO interface {
	// Prompt shows text and returns one line without its newline.
	Prompt(text string) (string, error)
	// Write prints text followed by a newline.
	Write(text string)
	Newline()
}

// Info describes a menu entry.
type Info struct {
	Key   string
	Label string
	Help  string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if strings.TrimSpace(i.Key) == "" {
		return fmt.Errorf("command: key is required")
	}
	if strings.TrimSpace(i.Label) == "" {
		return fmt.Errorf("command: label is required for %s", i.Key)
	}
	return nil
}

// Command is one entry of the main menu.
type Command interface {
	Info() Info
	Key() string
	// Label is the menu line, which may depend on the current state.
	Label(ctx *booking.Context) string
	Run(s *Session, io IO) error
}

// Session is the shared state every command runs against.
type Session struct {
	Context   *booking.Context
	Desk      *booking.Desk
	Renderer  render.Renderer
	Journal   booking.Journal
	IDPattern input.IDPattern
	Cinema    string
}

// SessionOption customizes a Session during construction.
type SessionOption func(*Session)

// WithRenderer overrides the plain ASCII renderer.
func WithRenderer(r render.Renderer) SessionOption {
	return func(s *Session) {
		if r != nil {
			s.Renderer = r
		}
	}
}

// WithJournal records booking activity.
func WithJournal(j booking.Journal) SessionOption {
	return func(s *Session) {
		s.Journal = j
	}
}

// WithCinemaName sets the venue named in the menu and farewell.
func WithCinemaName(name string) SessionOption {
	return func(s *Session) {
		if name = strings.TrimSpace(name); name != "" {
			s.Cinema = name
		}
	}
}

// DefaultCinemaName is used when no venue name is configured.
const DefaultCinemaName = "GIC Cinemas"

// NewSession wires a desk over ctx. The booking id pattern follows the
// registry's id format.
func NewSession(ctx *booking.Context, opts ...SessionOption) *Session {
	s := &Session{
		Context:  ctx,
		Renderer: render.NewASCII(render.DefaultGlyphs()),
		Cinema:   DefaultCinemaName,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.Desk = booking.NewDesk(ctx, booking.WithJournal(s.Journal))
	s.IDPattern = input.BookingIDPattern(ctx.Registry.IDFormat())
	return s
}

func (s *Session) logInfo(format string, args ...any) {
	if s.Journal != nil {
		s.Journal.Info(format, args...)
	}
}

func (s *Session) seatMap(h render.Highlight) string {
	return s.Renderer.SeatMap(s.Context.Theater, h)
}
