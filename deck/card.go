package deck

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Rank represents a rank in a Sheepshead deck
type Rank int

const (
	Ace Rank = iota
	Ten
	King
	Queen
	Jack
	Nine
	Eight
	Seven
)

var (
	rankNames  = []string{"Ace", "Ten", "King", "Queen", "Jack", "Nine", "Eight", "Seven"}
	rankCodes  = []string{"A", "T", "K", "Q", "J", "9", "8", "7"}
	suitNames  = []string{"Clubs", "Spades", "Hearts", "Diamonds"}
	suitCodes  = []string{"C", "S", "H", "D"}
	suitGlyphs = []string{"♣", "♠", "♥", "♦"}
)

// Ranks lists every rank in deck-building order.
var Ranks = []Rank{Ace, Ten, King, Queen, Jack, Nine, Eight, Seven}

// Suit represents a suit in a deck of cards
type Suit int

const (
	Clubs Suit = iota
	Spades
	Hearts
	Diamonds
)

// Suits lists every suit in deck-building order.
var Suits = []Suit{Clubs, Spades, Hearts, Diamonds}

// FailSuits are the suits whose non-trump cards form side suits.
var FailSuits = []Suit{Clubs, Spades, Hearts}

var (
	ErrUnknownRank = errors.New("unknown rank")
	ErrUnknownSuit = errors.New("unknown suit")
)

func (r Rank) valid() bool { return r >= Ace && r <= Seven }
func (s Suit) valid() bool { return s >= Clubs && s <= Diamonds }

func (r Rank) String() string {
	if !r.valid() {
		return "?"
	}
	return rankNames[r]
}

// Code is the single-character form used on the wire.
func (r Rank) Code() string {
	if !r.valid() {
		return "?"
	}
	return rankCodes[r]
}

func (s Suit) String() string {
	if !s.valid() {
		return "?"
	}
	return suitNames[s]
}

// Code is the single-character form used on the wire.
func (s Suit) Code() string {
	if !s.valid() {
		return "?"
	}
	return suitCodes[s]
}

// Glyph returns the suit symbol.
func (s Suit) Glyph() string {
	if !s.valid() {
		return "?"
	}
	return suitGlyphs[s]
}

// ParseRank reads a wire rank code.
func ParseRank(code string) (Rank, error) {
	for i, c := range rankCodes {
		if c == code {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRank, code)
}

// ParseSuit reads a wire suit code.
func ParseSuit(code string) (Suit, error) {
	for i, c := range suitCodes {
		if c == code {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSuit, code)
}

// Card is an immutable rank and suit pair. Two cards are equal when both
// fields are equal, so Card can be compared with == and used as a map key.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard constructs a card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// ParseCard reads the two-character short form, e.g. "AC" or "TD".
func ParseCard(short string) (Card, error) {
	if len(short) != 2 {
		return Card{}, fmt.Errorf("card %q: want two characters", short)
	}
	r, err := ParseRank(short[:1])
	if err != nil {
		return Card{}, err
	}
	s, err := ParseSuit(short[1:])
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: r, Suit: s}, nil
}

// MustParseCards parses a list of short forms and panics on bad input.
// Intended for fixtures.
func MustParseCards(shorts ...string) []Card {
	cards := make([]Card, 0, len(shorts))
	for _, s := range shorts {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Short returns the compact form, e.g. "QC".
func (c Card) Short() string {
	return c.Rank.Code() + c.Suit.Code()
}

// Label is the announcement form, e.g. "Ace of Clubs ♣".
func (c Card) Label() string {
	return fmt.Sprintf("%s %s", c.String(), c.Suit.Glyph())
}

type wireCard struct {
	R string `json:"r"`
	S string `json:"s"`
}

// MarshalJSON encodes the card as {"r":"A","s":"C"}.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireCard{R: c.Rank.Code(), S: c.Suit.Code()})
}

// UnmarshalJSON decodes the {"r":..,"s":..} form.
func (c *Card) UnmarshalJSON(data []byte) error {
	var w wireCard
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r, err := ParseRank(w.R)
	if err != nil {
		return err
	}
	s, err := ParseSuit(w.S)
	if err != nil {
		return err
	}
	*c = Card{Rank: r, Suit: s}
	return nil
}

// Index returns the position of the first card equal to c, or -1.
func Index(cards []Card, c Card) int {
	for i, h := range cards {
		if h == c {
			return i
		}
	}
	return -1
}

// Contains reports whether c is among cards.
func Contains(cards []Card, c Card) bool {
	return Index(cards, c) >= 0
}
