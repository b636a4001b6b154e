package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/kingrea/gic-cinemas/internal/booking"
)

// Patron-facing text shared by the console and the TUI.
const (
	PromptInit      = "Please enter [Title] [Rows] [SeatsPerRow]:\n> "
	PromptSelection = "Please enter your selection:\n> "
	PromptTickets   = "Enter number of tickets to book, or enter blank to go back to main menu:\n> "
	PromptReseat    = "Enter blank to accept seat selection, or enter new seating position:\n> "
	PromptBookingID = "Enter booking id, or enter blank to go back to main menu:\n> "

	MsgInvalidSelection = "Invalid selection. Please choose one of the listed options."
	MsgAllocateFailed   = "Unable to allocate seats. Please try a smaller number."
	MsgReseatFailed     = "Unable to allocate from that position. Please try another start seat or press Enter to accept the suggestion."
	MsgNotFound         = "Booking id not found. Please try again."
	MsgSelectedSeats    = "Selected seats:"
	MsgUpdatedSelection = "Updated selection:"
)

// Welcome is the menu banner.
func Welcome(cinema string) string {
	return "Welcome to " + cinema
}

// Farewell is printed when the program ends normally.
func Farewell(cinema string) string {
	return fmt.Sprintf("Thank you for using %s system. Bye!", cinema)
}

// Reserved announces a fresh auto preview.
func Reserved(count int, title string) string {
	return fmt.Sprintf("Successfully reserved %d %s tickets.", count, title)
}

// BookingIDLine shows the provisional id of a draft.
func BookingIDLine(id string) string {
	return "Booking id: " + id
}

// Confirmed acknowledges a committed booking.
func Confirmed(id string) string {
	return fmt.Sprintf("Booking id: %s confirmed.", id)
}

// BeginFailure turns a refused preview into the line shown to the patron.
// Errors other than capacity or infeasibility are returned unchanged.
func BeginFailure(err error) (string, error) {
	var capErr *booking.CapacityError
	switch {
	case errors.As(err, &capErr):
		return capErr.Error(), nil
	case booking.IsInfeasible(err):
		return MsgAllocateFailed, nil
	}
	return "", err
}

// Suggest returns the committed id closest to what the patron typed, or ""
// when nothing is close. Zero padding after the prefix is ignored so "gic7"
// finds GIC0007.
func Suggest(typed, prefix string, ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	pattern := strings.ToUpper(strings.TrimSpace(typed))
	if rest, ok := strings.CutPrefix(pattern, prefix); ok {
		if trimmed := strings.TrimLeft(rest, "0"); trimmed != "" {
			pattern = prefix + trimmed
		}
	}
	if pattern == "" || pattern == prefix {
		return ""
	}
	matches := fuzzy.Find(pattern, ids)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// DidYouMean formats a suggestion line.
func DidYouMean(id string) string {
	return fmt.Sprintf("Did you mean %s?", id)
}
