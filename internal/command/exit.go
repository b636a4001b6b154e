package command

import (
	"fmt"

	"github.com/kingrea/gic-cinemas/internal/booking"
)

// Exit says goodbye and ends the menu loop.
type Exit struct{}

func (Exit) Info() Info {
	return Info{Key: "3", Label: "Exit", Help: "Quit the application."}
}

func (e Exit) Key() string { return e.Info().Key }

func (e Exit) Label(*booking.Context) string {
	info := e.Info()
	return fmt.Sprintf("[%s] %s", info.Key, info.Label)
}

func (Exit) Run(s *Session, io IO) error {
	io.Write(Farewell(s.Cinema))
	return ErrExit
}
