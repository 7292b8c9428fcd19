package game

import (
	"fmt"

	"github.com/minaorangina/sheepshead/deck"
)

// ApplyPlay plays card from seat's hand to the open trick. When the fifth
// card lands the trick goes to its winner, who leads the next one. After
// the last trick the hand is Done.
func ApplyPlay(s *State, seat Seat, card deck.Card) error {
	if s.Phase != PhasePlay {
		return phaseViolation(PhasePlay, s.Phase)
	}
	if !seat.Valid() {
		return violation(MalformedAction, ErrUnknownSeat)
	}
	if s.Turn != seat {
		return violation(TurnViolation, ErrNotYourTurn)
	}
	if s.Trick == nil {
		return violation(InternalConsistencyFault, fmt.Errorf("%w: no open trick", ErrBrokenState))
	}

	idx := deck.Index(s.Hands[seat], card)
	if idx < 0 {
		return violation(HoldingViolation, fmt.Errorf("%w: %s", ErrCardNotInHand, card))
	}
	if !deck.Contains(LegalPlays(s, seat), card) {
		led := LedSuit(s.Trick.Plays[0].Card)
		return violation(PlayViolation, fmt.Errorf("%w: %s was led", ErrMustFollow, led))
	}

	hand := s.Hands[seat]
	s.Hands[seat] = append(cloneCards(hand[:idx]), hand[idx+1:]...)
	s.Trick.Plays = append(s.Trick.Plays, TrickPlay{Seat: seat, Card: card})

	if !s.Trick.Complete() {
		s.Turn = seat.Next()
		return nil
	}

	winner := WinnerOfTrick(s.Trick)
	s.Taken[winner] = append(s.Taken[winner], s.Trick.Cards()...)
	s.LastTrick = s.Trick
	s.Leader = winner
	s.Turn = winner

	if handsEmpty(s) {
		s.Trick = nil
		s.Phase = PhaseDone
		return nil
	}
	s.Trick = newTrick(winner)
	return nil
}

// TricksPlayed returns the number of completed tricks.
func TricksPlayed(s *State) int {
	n := 0
	for i := range s.Taken {
		n += len(s.Taken[i])
	}
	return n / NumSeats
}

// PartnerRevealed reports whether the called card has been seen in a trick,
// or the hand is over.
func PartnerRevealed(s *State) bool {
	c, ok := s.Called.(CardCall)
	if !ok {
		return false
	}
	if s.Phase == PhaseDone {
		return true
	}
	if s.Trick != nil && deck.Contains(s.Trick.Cards(), c.Card) {
		return true
	}
	for i := range s.Taken {
		if deck.Contains(s.Taken[i], c.Card) {
			return true
		}
	}
	return false
}

// Points is the card-point split at the end of a hand.
type Points struct {
	PickerSide int `json:"pickerSidePoints"`
	Defenders  int `json:"defendersPoints"`
}

// Tally counts card points for the picker's side (picker, partner and
// the buried cards) and for the defenders. The two always sum to 120.
func Tally(s *State) (Points, error) {
	if s.Phase != PhaseDone {
		return Points{}, phaseViolation(PhaseDone, s.Phase)
	}

	t := Points{PickerSide: sumPoints(s.Buried)}
	for i := range s.Taken {
		seat := Seat(i)
		pts := sumPoints(s.Taken[i])
		if seat == s.Picker || (s.Partner != NoSeat && seat == s.Partner) {
			t.PickerSide += pts
		} else {
			t.Defenders += pts
		}
	}
	return t, nil
}

func handsEmpty(s *State) bool {
	for i := range s.Hands {
		if len(s.Hands[i]) > 0 {
			return false
		}
	}
	return true
}
