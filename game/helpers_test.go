package game

import (
	"testing"

	"github.com/minaorangina/sheepshead/deck"
	"github.com/stretchr/testify/require"
)

var cards = deck.MustParseCards

func card(short string) deck.Card {
	return cards(short)[0]
}

// callState is a hand sitting in the Call phase with only the picker's
// hand filled in.
func callState(picker Seat, hand, buried []deck.Card, houseRule bool) *State {
	rules := DefaultRuleset()
	rules.RequirePickerHasSuitToCall = houseRule

	s := &State{
		Rules:   rules,
		Seed:    "test",
		Dealer:  0,
		Phase:   PhaseCall,
		Blind:   []deck.Card{},
		Picker:  picker,
		Partner: NoSeat,
		Buried:  append([]deck.Card{}, buried...),
		Leader:  picker,
		Turn:    picker,
	}
	for i := range s.Hands {
		s.Hands[i] = []deck.Card{}
		s.Taken[i] = []deck.Card{}
		s.Bids[i] = Pass
	}
	s.Bids[picker] = Pick
	s.Hands[picker] = append([]deck.Card{}, hand...)
	return s
}

// playState is a hand in the Play phase with the given hands and seat on
// lead.
func playState(leader Seat, hands [NumSeats][]deck.Card) *State {
	s := callState(leader, nil, nil, false)
	s.Phase = PhasePlay
	s.Called = Solo{}
	s.Hands = hands
	s.Trick = newTrick(leader)
	return s
}

// toPlay drives a fresh deal from seed to the start of trick play with
// seat picking, burying its first two cards and declaring solo.
func toPlay(t *testing.T, seed string, picker Seat) *State {
	t.Helper()
	s := NewHand(0, seed, DefaultRuleset())
	for CurrentBidder(s) != picker {
		err := ApplyBid(s, CurrentBidder(s), Pass)
		require.NoError(t, err)
	}
	err := ApplyBid(s, picker, Pick)
	require.NoError(t, err)
	require.NoError(t, TakeBlind(s, picker))
	require.NoError(t, ApplyBury(s, picker, cloneCards(s.Hands[picker][:2])))
	require.NoError(t, ApplyCall(s, picker, Solo{}))
	return s
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "error: %v", err)
}
