package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/gic-cinemas/internal/theater"
)

var (
	screenStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	dividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	takenStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Styled renders the same layout as ASCII with lipgloss colours.
type Styled struct {
	Glyphs Glyphs
}

// NewStyled returns a coloured renderer with the given glyphs.
func NewStyled(g Glyphs) Styled {
	return Styled{Glyphs: g.withDefaults()}
}

func (s Styled) SeatMap(t *theater.Theater, h Highlight) string {
	g := s.Glyphs.withDefaults()
	lines := layout(t, h, func(state cellState) string {
		switch state {
		case cellHighlight:
			return highlightStyle.Render(g.Highlight)
		case cellTaken:
			return takenStyle.Render(g.Taken)
		}
		return emptyStyle.Render(g.Empty)
	})
	last := len(lines) - 1
	lines[0] = screenStyle.Render(lines[0])
	lines[1] = dividerStyle.Render(lines[1])
	lines[last] = footerStyle.Render(lines[last])
	return strings.Join(lines, "\n")
}

// StyledLegend is Legend with each glyph in its map colour.
func StyledLegend(g Glyphs) string {
	g = g.withDefaults()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		emptyStyle.Render(g.Empty), " empty   ",
		highlightStyle.Render(g.Highlight), " selected   ",
		takenStyle.Render(g.Taken), " taken",
	)
}
