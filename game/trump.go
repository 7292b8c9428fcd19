package game

import "github.com/minaorangina/sheepshead/deck"

// IsTrump reports whether c is trump: every Queen, every Jack and every
// Diamond. All trump/fail decisions in the engine go through here.
func IsTrump(c deck.Card) bool {
	return c.Rank == deck.Queen || c.Rank == deck.Jack || c.Suit == deck.Diamonds
}

// IsFail reports whether c is a fail card: a non-trump Club, Spade or Heart.
func IsFail(c deck.Card) bool {
	return c.Suit != deck.Diamonds && !IsTrump(c)
}

// CardPoints returns the card's point value.
func CardPoints(c deck.Card) int {
	switch c.Rank {
	case deck.Ace:
		return 11
	case deck.Ten:
		return 10
	case deck.King:
		return 4
	case deck.Queen:
		return 3
	case deck.Jack:
		return 2
	default:
		return 0
	}
}

// TrumpOrder lists every trump, highest first.
var TrumpOrder = deck.MustParseCards(
	"QC", "QS", "QH", "QD",
	"JC", "JS", "JH", "JD",
	"AD", "TD", "KD", "9D", "8D", "7D",
)

var trumpRank = func() map[deck.Card]int {
	m := make(map[deck.Card]int, len(TrumpOrder))
	for i, c := range TrumpOrder {
		m[c] = i
	}
	return m
}()

// failOrder ranks fail cards within a suit, highest first.
var failOrder = map[deck.Rank]int{
	deck.Ace:   0,
	deck.Ten:   1,
	deck.King:  2,
	deck.Nine:  3,
	deck.Eight: 4,
	deck.Seven: 5,
}

// Led is what a trick's first card demands: trump, or one fail suit.
type Led struct {
	Trump bool
	Suit  deck.Suit
}

func (l Led) String() string {
	if l.Trump {
		return "TRUMP"
	}
	return l.Suit.String()
}

// LedSuit returns the follow requirement created by leading c.
func LedSuit(c deck.Card) Led {
	if IsTrump(c) {
		return Led{Trump: true}
	}
	return Led{Suit: c.Suit}
}

// Follows reports whether c satisfies the led requirement.
func (l Led) Follows(c deck.Card) bool {
	if l.Trump {
		return IsTrump(c)
	}
	return IsFail(c) && c.Suit == l.Suit
}

// CmpForTrick orders two cards played to a trick: negative when a beats b,
// positive when b beats a. Trump beats non-trump outright and trumps compare
// by TrumpOrder. Otherwise a card of the led suit beats one that is not, and
// two led-suit cards compare by fail rank. Two off-suit fail cards cannot
// win; the result for them is positive so a running best is kept.
func CmpForTrick(led Led, a, b deck.Card) int {
	ta, tb := IsTrump(a), IsTrump(b)
	if led.Trump || ta || tb {
		switch {
		case ta && !tb:
			return -1
		case !ta && tb:
			return 1
		case !ta && !tb:
			// neither can win a trump lead
			return 1
		}
		return trumpRank[a] - trumpRank[b]
	}

	aLed, bLed := a.Suit == led.Suit, b.Suit == led.Suit
	switch {
	case aLed && !bLed:
		return -1
	case !aLed && bLed:
		return 1
	case aLed && bLed:
		return failOrder[a.Rank] - failOrder[b.Rank]
	}
	return 1
}
