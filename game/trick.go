package game

import "github.com/minaorangina/sheepshead/deck"

// TrickPlay is one card played to a trick.
type TrickPlay struct {
	Seat Seat      `json:"seat"`
	Card deck.Card `json:"card"`
}

// Trick is the trick in progress.
type Trick struct {
	Leader Seat        `json:"leader"`
	Plays  []TrickPlay `json:"plays"`
}

func newTrick(leader Seat) *Trick {
	return &Trick{Leader: leader, Plays: []TrickPlay{}}
}

// Complete reports whether every seat has played.
func (t *Trick) Complete() bool {
	return len(t.Plays) == NumSeats
}

// Cards returns the played cards in play order.
func (t *Trick) Cards() []deck.Card {
	cards := make([]deck.Card, 0, len(t.Plays))
	for _, p := range t.Plays {
		cards = append(cards, p.Card)
	}
	return cards
}

func (t *Trick) clone() *Trick {
	if t == nil {
		return nil
	}
	return &Trick{Leader: t.Leader, Plays: append([]TrickPlay{}, t.Plays...)}
}

// WinnerOfTrick returns the seat whose card beats every other play.
// It returns NoSeat for an empty trick.
func WinnerOfTrick(t *Trick) Seat {
	if t == nil || len(t.Plays) == 0 {
		return NoSeat
	}
	led := LedSuit(t.Plays[0].Card)
	best := t.Plays[0]
	for _, p := range t.Plays[1:] {
		if CmpForTrick(led, p.Card, best.Card) < 0 {
			best = p
		}
	}
	return best.Seat
}

// LegalPlays returns the cards seat may play now. Leading is unconstrained;
// following must match the led requirement when possible.
func LegalPlays(s *State, seat Seat) []deck.Card {
	if s.Phase != PhasePlay || !seat.Valid() {
		return []deck.Card{}
	}
	hand := s.Hands[seat]
	if s.Trick == nil || len(s.Trick.Plays) == 0 {
		return cloneCards(hand)
	}

	led := LedSuit(s.Trick.Plays[0].Card)
	following := []deck.Card{}
	for _, c := range hand {
		if led.Follows(c) {
			following = append(following, c)
		}
	}
	if len(following) == 0 {
		return cloneCards(hand)
	}
	return following
}
