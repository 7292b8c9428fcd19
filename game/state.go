package game

import (
	"fmt"

	"github.com/minaorangina/sheepshead/deck"
)

// State is everything about one hand. The engine mutates it in place, one
// action at a time; callers must serialise access to a State.
type State struct {
	Rules  Ruleset `json:"rules"`
	Seed   string  `json:"seed"`
	Dealer Seat    `json:"dealer"`
	Phase  Phase   `json:"phase"`

	Hands [NumSeats][]deck.Card `json:"hands"`
	Blind []deck.Card           `json:"blind"`
	Bids  [NumSeats]Bid         `json:"bids"`

	Picker Seat        `json:"picker"`
	Buried []deck.Card `json:"buried"`

	// Called stays nil until the Call phase resolves.
	Called        Call `json:"-"`
	PartnerCalled bool `json:"partnerCalled"`
	// Partner is the seat holding the called card, NoSeat for a solo.
	Partner Seat `json:"-"`

	Leader    Seat   `json:"leader"`
	Turn      Seat   `json:"turn"`
	Trick     *Trick `json:"trick"`
	LastTrick *Trick `json:"lastTrick"`

	Taken [NumSeats][]deck.Card `json:"taken"`
}

// SeatingOrder returns the five seats clockwise from the dealer's left.
func SeatingOrder(dealer Seat) []Seat {
	order := make([]Seat, 0, NumSeats)
	s := dealer
	for i := 0; i < NumSeats; i++ {
		s = s.Next()
		order = append(order, s)
	}
	return order
}

// NewHand shuffles with seed and deals a fresh hand.
//
// Round one gives three cards to each of the first two seats, then the
// blind, then three cards to each remaining seat. Round two gives two cards
// each and round three one card each. A deal that does not use exactly the
// whole deck is a programming error and panics.
func NewHand(dealer Seat, seed string, rules Ruleset) *State {
	if !dealer.Valid() {
		panic(violation(InternalConsistencyFault, fmt.Errorf("%w: dealer %d", ErrUnknownSeat, dealer)))
	}

	shuffled := deck.New().Shuffle(seed)
	order := SeatingOrder(dealer)

	s := &State{
		Rules:   rules,
		Seed:    seed,
		Dealer:  dealer,
		Phase:   PhaseBidding,
		Blind:   []deck.Card{},
		Picker:  NoSeat,
		Partner: NoSeat,
		Buried:  []deck.Card{},
		Leader:  order[0],
		Turn:    order[0],
	}
	for i := range s.Hands {
		s.Hands[i] = []deck.Card{}
		s.Taken[i] = []deck.Card{}
	}

	idx := 0
	take := func(n int) []deck.Card {
		if n < 0 || idx+n > len(shuffled) {
			panic(violation(InternalConsistencyFault, ErrDealMiscount))
		}
		cards := shuffled[idx : idx+n]
		idx += n
		return cards
	}

	for i, seat := range order {
		s.Hands[seat] = append(s.Hands[seat], take(3)...)
		if i == 1 {
			s.Blind = append(s.Blind, take(rules.BlindSize)...)
		}
	}
	for _, seat := range order {
		s.Hands[seat] = append(s.Hands[seat], take(2)...)
	}
	for _, seat := range order {
		s.Hands[seat] = append(s.Hands[seat], take(1)...)
	}

	if idx != deck.Size {
		panic(violation(InternalConsistencyFault, ErrDealMiscount))
	}

	return s
}

// TryNewHand is NewHand for callers that must not crash: an inconsistent
// deal comes back as an InternalConsistencyFault.
func TryNewHand(dealer Seat, seed string, rules Ruleset) (s *State, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Error); ok {
				s, err = nil, e
				return
			}
			panic(r)
		}
	}()
	return NewHand(dealer, seed, rules), nil
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := *s
	for i := range s.Hands {
		c.Hands[i] = cloneCards(s.Hands[i])
		c.Taken[i] = cloneCards(s.Taken[i])
	}
	c.Blind = cloneCards(s.Blind)
	c.Buried = cloneCards(s.Buried)
	c.Trick = s.Trick.clone()
	c.LastTrick = s.LastTrick.clone()
	return &c
}

// CardCount returns the number of cards held anywhere in the hand.
func (s *State) CardCount() int {
	n := len(s.Blind) + len(s.Buried)
	for i := range s.Hands {
		n += len(s.Hands[i]) + len(s.Taken[i])
	}
	if s.Trick != nil {
		n += len(s.Trick.Plays)
	}
	return n
}

// CheckInvariants verifies card conservation: all 32 cards are present
// exactly once across hands, blind, bury, taken tricks and the open trick.
func CheckInvariants(s *State) error {
	if n := s.CardCount(); n != deck.Size {
		return violation(InternalConsistencyFault, fmt.Errorf("%w: %d cards in play", ErrBrokenState, n))
	}

	seen := make(map[deck.Card]struct{}, deck.Size)
	check := func(cards []deck.Card) error {
		for _, c := range cards {
			if _, dup := seen[c]; dup {
				return violation(InternalConsistencyFault, fmt.Errorf("%w: %s appears twice", ErrBrokenState, c))
			}
			seen[c] = struct{}{}
		}
		return nil
	}

	groups := [][]deck.Card{s.Blind, s.Buried}
	for i := range s.Hands {
		groups = append(groups, s.Hands[i], s.Taken[i])
	}
	if s.Trick != nil {
		groups = append(groups, s.Trick.Cards())
	}
	for _, g := range groups {
		if err := check(g); err != nil {
			return err
		}
	}

	if s.Phase != PhaseBidding && !s.Picker.Valid() {
		return violation(InternalConsistencyFault, fmt.Errorf("%w: no picker in %s", ErrBrokenState, s.Phase))
	}
	return nil
}
