package protocol

import "github.com/minaorangina/sheepshead/deck"

// Hidden is the rank and suit shown for a card the viewer may not see.
const Hidden = "?"

// CardView is a card as a particular viewer sees it.
type CardView struct {
	R string `json:"r"`
	S string `json:"s"`
}

// Known reports whether the card is face up for the viewer.
func (c CardView) Known() bool {
	return c.R != Hidden && c.S != Hidden
}

// Card converts back to a deck card. ok is false for hidden cards.
func (c CardView) Card() (card deck.Card, ok bool) {
	if !c.Known() {
		return deck.Card{}, false
	}
	card, err := deck.ParseCard(c.R + c.S)
	return card, err == nil
}

func ShowCard(c deck.Card) CardView {
	return CardView{R: c.Rank.Code(), S: c.Suit.Code()}
}

func ShowCards(cards []deck.Card) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, ShowCard(c))
	}
	return out
}

func HideCards(n int) []CardView {
	out := make([]CardView, n)
	for i := range out {
		out[i] = CardView{R: Hidden, S: Hidden}
	}
	return out
}

type PlayView struct {
	Seat int      `json:"seat"`
	Card CardView `json:"card"`
}

type TrickView struct {
	Leader int        `json:"leader"`
	Plays  []PlayView `json:"plays"`
}

type CallView struct {
	Solo bool      `json:"solo,omitempty"`
	Card *CardView `json:"card,omitempty"`
}

type RulesView struct {
	Players                    int  `json:"players"`
	BlindSize                  int  `json:"blindSize"`
	BuryCount                  int  `json:"buryCount"`
	RequirePickerHasSuitToCall bool `json:"requirePickerHasSuitToCall"`
}

// StateView is one seat's redacted picture of a hand. Seats are 0 to 4;
// nil seat pointers mean "nobody" (no picker yet, not bidding, spectator).
type StateView struct {
	Viewer *int      `json:"viewer"`
	Rules  RulesView `json:"rules"`
	Seed   string    `json:"seed,omitempty"`
	Dealer int       `json:"dealer"`
	Phase  string    `json:"phase"`

	Hands   [][]CardView `json:"hands"`
	Blind   []CardView   `json:"blind"`
	Bids    []string     `json:"bids"`
	BidTurn *int         `json:"bidTurn"`

	Picker *int       `json:"picker"`
	Buried []CardView `json:"buried"`

	Called        *CallView `json:"called"`
	PartnerCalled bool      `json:"partnerCalled"`
	Partner       *int      `json:"partner"`

	Leader    int          `json:"leader"`
	Turn      int          `json:"turn"`
	Trick     *TrickView   `json:"trick"`
	LastTrick *TrickView   `json:"lastTrick"`
	Taken     [][]CardView `json:"taken"`

	// Moves open to the viewer right now.
	LegalBids  []string   `json:"legalBids"`
	LegalCalls []CallView `json:"legalCalls"`
	LegalPlays []CardView `json:"legalPlays"`
}
