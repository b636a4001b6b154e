package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/booking"
	"github.com/kingrea/gic-cinemas/internal/input"
	"github.com/kingrea/gic-cinemas/internal/render"
)

// Check shows the seat map with one booking highlighted.
type Check struct{}

func (Check) Info() Info {
	return Info{
		Key:   "2",
		Label: "Check bookings",
		Help:  "View seat map highlighting a given booking ID.",
	}
}

func (c Check) Key() string { return c.Info().Key }

func (c Check) Label(*booking.Context) string {
	info := c.Info()
	return fmt.Sprintf("[%s] %s", info.Key, info.Label)
}

func (Check) Run(s *Session, io IO) error {
	prefix, _ := s.Context.Registry.IDFormat()
	for {
		raw, err := io.Prompt(PromptBookingID)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		id, err := input.ParseBookingID(raw, s.IDPattern)
		if err != nil {
			io.Write(err.Error())
			suggest(s, io, raw, prefix)
			continue
		}
		found, err := s.Desk.Check(id)
		if err != nil {
			if !errors.Is(err, booking.ErrNotFound) {
				return err
			}
			io.Write(MsgNotFound)
			suggest(s, io, raw, prefix)
			continue
		}
		s.logInfo("Check · %s viewed", found.ID())
		io.Write(s.seatMap(render.Highlight{BookingID: found.ID()}))
	}
}

func suggest(s *Session, io IO, typed, prefix string) {
	if hint := Suggest(typed, prefix, s.Context.Registry.IDs()); hint != "" {
		io.Write(DidYouMean(hint))
	}
}
