package game

import (
	"github.com/minaorangina/sheepshead/deck"
)

// Call is the picker's declaration: Solo or CardCall. The set is closed;
// switches over it handle both cases.
type Call interface {
	isCall()
}

// Solo declares that the picker plays without a partner.
type Solo struct{}

// CardCall names the card whose holder becomes the picker's partner.
type CardCall struct {
	Card deck.Card
}

func (Solo) isCall()     {}
func (CardCall) isCall() {}

// ApplyCall validates the picker's call and, if it stands, starts trick
// play with the picker on lead.
//
// Checks run in a fixed order and the first failure is reported:
//  1. Solo is always accepted.
//  2. Only a fail Ace or fail Ten may be named.
//  3. With the house rule on, the picker must hold a fail card of that suit.
//  4. A Ten needs all three fail Aces in hand.
//  5. All fail Aces and all fail Tens force a Solo, whatever was named.
//  6. All fail Aces forbid calling an Ace.
//  7. The picker may not name a card they hold.
//  8. The picker may not name a card they buried.
func ApplyCall(s *State, seat Seat, call Call) error {
	if s.Phase != PhaseCall {
		return phaseViolation(PhaseCall, s.Phase)
	}
	if s.Picker != seat {
		return violation(RoleViolation, ErrNotPicker)
	}

	resolved, err := validateCall(s, seat, call)
	if err != nil {
		return err
	}

	switch c := resolved.(type) {
	case Solo:
		s.Called = Solo{}
		s.PartnerCalled = false
		s.Partner = NoSeat
	case CardCall:
		s.Called = c
		s.PartnerCalled = true
		s.Partner = holderOf(s, c.Card)
	}

	s.Phase = PhasePlay
	s.Leader = seat
	s.Turn = seat
	s.Trick = newTrick(seat)
	return nil
}

// validateCall returns the call that takes effect, which is Solo when a
// card call is escalated.
func validateCall(s *State, seat Seat, call Call) (Call, *Error) {
	var card deck.Card
	switch c := call.(type) {
	case Solo:
		return Solo{}, nil
	case CardCall:
		card = c.Card
	default:
		return nil, violation(MalformedAction, ErrMissingCall)
	}

	hand := s.Hands[seat]
	isAce := card.Rank == deck.Ace && IsFail(card)
	isTen := card.Rank == deck.Ten && IsFail(card)
	if !isAce && !isTen {
		return nil, violation(CallLegalityViolation, ErrNotFailAceOrTen)
	}

	if s.Rules.RequirePickerHasSuitToCall && !holdsFailSuit(hand, card.Suit) {
		return nil, violation(CallLegalityViolation, ErrNoFailCardInCalledSuit)
	}

	allAces := holdsAllFail(hand, deck.Ace)
	allTens := holdsAllFail(hand, deck.Ten)

	if isTen && !allAces {
		return nil, violation(CallLegalityViolation, ErrTenWithoutAllAces)
	}
	if allAces && allTens {
		return Solo{}, nil
	}
	if allAces && isAce {
		return nil, violation(CallLegalityViolation, ErrMustCallTen)
	}
	if holdsFail(hand, card) {
		if isAce {
			return nil, violation(CallLegalityViolation, ErrCalledAceHeld)
		}
		return nil, violation(CallLegalityViolation, ErrCalledTenHeld)
	}
	if deck.Contains(s.Buried, card) {
		return nil, violation(CallLegalityViolation, ErrCalledBuried)
	}

	return CardCall{Card: card}, nil
}

// LegalCalls lists the calls ApplyCall would accept from seat right now.
// Solo is always first. It returns nothing when seat may not call.
func LegalCalls(s *State, seat Seat) []Call {
	if s.Phase != PhaseCall || s.Picker != seat {
		return []Call{}
	}
	calls := []Call{Solo{}}
	for _, rank := range []deck.Rank{deck.Ace, deck.Ten} {
		for _, suit := range deck.FailSuits {
			c := CardCall{Card: deck.NewCard(rank, suit)}
			if resolved, err := validateCall(s, seat, c); err == nil && resolved == Call(c) {
				calls = append(calls, c)
			}
		}
	}
	return calls
}

// IsForcedSolo reports whether the picker's hand turns any card call into
// a Solo.
func IsForcedSolo(s *State, seat Seat) bool {
	if !seat.Valid() {
		return false
	}
	return holdsAllFail(s.Hands[seat], deck.Ace) && holdsAllFail(s.Hands[seat], deck.Ten)
}

func holderOf(s *State, c deck.Card) Seat {
	for i := range s.Hands {
		if Seat(i) != s.Picker && deck.Contains(s.Hands[i], c) {
			return Seat(i)
		}
	}
	return NoSeat
}
