package command

import (
	"fmt"
	"strings"

	"github.com/kingrea/gic-cinemas/internal/booking"
	"github.com/kingrea/gic-cinemas/internal/input"
	"github.com/kingrea/gic-cinemas/internal/render"
)

// Book reserves seats: auto preview first, then optional reseating from a
// chosen start seat until the patron accepts.
type Book struct{}

func (Book) Info() Info {
	return Info{
		Key:   "1",
		Label: "Book tickets",
		Help:  "Reserve seats with auto-allocation and optional manual reseating.",
	}
}

func (b Book) Key() string { return b.Info().Key }

func (b Book) Label(ctx *booking.Context) string {
	info := b.Info()
	return fmt.Sprintf("[%s] %s for %s (%d seats available)", info.Key, info.Label, ctx.Theater.Title(), ctx.Theater.Available())
}

func (Book) Run(s *Session, io IO) error {
	for {
		raw, err := io.Prompt(PromptTickets)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		count, err := input.ParseTicketCount(raw)
		if err != nil {
			io.Write(err.Error())
			continue
		}
		draft, err := s.Desk.Begin(count)
		if err != nil {
			msg, fatal := BeginFailure(err)
			if fatal != nil {
				return fatal
			}
			io.Write(msg)
			continue
		}

		io.Write(Reserved(count, s.Context.Theater.Title()))
		io.Write(BookingIDLine(draft.ID()))
		io.Write(MsgSelectedSeats)
		io.Write(s.seatMap(render.Highlight{Preview: draft.Seats()}))
		return reseat(s, io, draft)
	}
}

func reseat(s *Session, io IO, draft *booking.Draft) error {
	for {
		raw, err := io.Prompt(PromptReseat)
		if err != nil {
			draft.Abandon()
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			confirmed, err := draft.Confirm()
			if err != nil {
				return err
			}
			io.Write(Confirmed(confirmed.ID()))
			return nil
		}
		start, err := input.ParseStartSeat(s.Context.Theater, raw)
		if err != nil {
			io.Write(err.Error())
			continue
		}
		seats, err := draft.Reseat(start)
		if err != nil {
			if booking.IsInfeasible(err) {
				io.Write(MsgReseatFailed)
				continue
			}
			return err
		}
		io.Write(MsgUpdatedSelection)
		io.Write(s.seatMap(render.Highlight{Preview: seats}))
	}
}
