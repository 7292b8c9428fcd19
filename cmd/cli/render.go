package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/minaorangina/sheepshead/protocol"
)

var (
	clrBorder = lipgloss.Color("#30363d")
	clrSubtle = lipgloss.Color("#8b949e")
	clrGold   = lipgloss.Color("#e3b341")
	clrTrump  = lipgloss.Color("#f0c862")

	suitColours = map[string]lipgloss.Color{
		"C": lipgloss.Color("#44AAFF"),
		"S": lipgloss.Color("#50FA7B"),
		"H": lipgloss.Color("#FF6B6B"),
		"D": lipgloss.Color("#FFD700"),
	}
	suitGlyphs = map[string]string{"C": "♣", "S": "♠", "H": "♥", "D": "♦"}

	titleStyle = lipgloss.NewStyle().Foreground(clrGold).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(clrSubtle)
	boxStyle   = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(clrBorder).
			Padding(0, 1)
)

func sendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

func isTrump(c protocol.CardView) bool {
	return c.R == "Q" || c.R == "J" || c.S == "D"
}

// renderCard draws one card, e.g. "A♣". Trump is bold.
func renderCard(c protocol.CardView) string {
	if !c.Known() {
		return labelStyle.Render("??")
	}
	style := lipgloss.NewStyle().Foreground(suitColours[c.S])
	if isTrump(c) {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(c.R + suitGlyphs[c.S])
}

func renderCards(cards []protocol.CardView) string {
	if len(cards) == 0 {
		return labelStyle.Render("-")
	}
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, renderCard(c))
	}
	return strings.Join(out, " ")
}

func seatText(s *int) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *s)
}

// renderView draws a state view as a terminal panel.
func renderView(v *protocol.StateView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  seed %q  dealer %d\n", titleStyle.Render("SHEEPSHEAD "+v.Phase), v.Seed, v.Dealer)

	for seat, hand := range v.Hands {
		marker := "  "
		if v.Picker != nil && *v.Picker == seat {
			marker = lipgloss.NewStyle().Foreground(clrTrump).Render("P ")
		}
		bid := v.Bids[seat]
		if bid == "" {
			bid = "-"
		}
		fmt.Fprintf(&b, "%sSeat %d %s %s  %s %d\n",
			marker, seat, labelStyle.Render("["+bid+"]"), renderCards(hand),
			labelStyle.Render("taken"), len(v.Taken[seat]))
	}

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Blind: "), renderCards(v.Blind))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Buried:"), renderCards(v.Buried))

	if v.BidTurn != nil {
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("To bid:"), *v.BidTurn)
	}
	if v.Called != nil {
		called := "Solo"
		if v.Called.Card != nil {
			called = renderCard(*v.Called.Card)
		}
		fmt.Fprintf(&b, "%s %s  %s %s\n", labelStyle.Render("Called:"), called, labelStyle.Render("partner"), seatText(v.Partner))
	}
	if v.Trick != nil {
		plays := make([]string, 0, len(v.Trick.Plays))
		for _, p := range v.Trick.Plays {
			plays = append(plays, fmt.Sprintf("%d:%s", p.Seat, renderCard(p.Card)))
		}
		fmt.Fprintf(&b, "%s %s  %s %d\n", labelStyle.Render("Trick: "), strings.Join(plays, " "), labelStyle.Render("turn"), v.Turn)
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
