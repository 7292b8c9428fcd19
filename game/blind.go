package game

import (
	"fmt"

	"github.com/minaorangina/sheepshead/deck"
)

// TakeBlind moves the blind into the picker's hand.
func TakeBlind(s *State, seat Seat) error {
	if s.Phase != PhaseBlind {
		return phaseViolation(PhaseBlind, s.Phase)
	}
	if s.Picker != seat {
		return violation(RoleViolation, ErrNotPicker)
	}

	s.Hands[seat] = append(s.Hands[seat], s.Blind...)
	s.Blind = []deck.Card{}
	s.Phase = PhaseBury
	s.Turn = seat
	return nil
}

// ApplyBury moves cards from the picker's hand to the buried pile. Every
// card is checked before anything moves, so a rejected bury changes nothing.
func ApplyBury(s *State, seat Seat, cards []deck.Card) error {
	if s.Phase != PhaseBury {
		return phaseViolation(PhaseBury, s.Phase)
	}
	if s.Picker != seat {
		return violation(RoleViolation, ErrNotPicker)
	}
	if len(cards) != s.Rules.BuryCount {
		return violation(QuantityViolation, fmt.Errorf("%w: must bury %d, got %d", ErrWrongBuryCount, s.Rules.BuryCount, len(cards)))
	}

	rest, missing := removeCards(s.Hands[seat], cards)
	if missing != nil {
		return violation(HoldingViolation, fmt.Errorf("%w: %s", ErrCardNotInHand, missing))
	}

	s.Hands[seat] = rest
	s.Buried = append(s.Buried, cards...)
	s.Phase = PhaseCall
	s.Turn = seat
	return nil
}
