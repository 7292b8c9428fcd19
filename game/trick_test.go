package game

import (
	"testing"

	"github.com/minaorangina/sheepshead/deck"
	utils "github.com/minaorangina/sheepshead/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrumpModel(t *testing.T) {
	t.Run("queens, jacks and diamonds are trump", func(t *testing.T) {
		for _, c := range deck.New() {
			want := c.Rank == deck.Queen || c.Rank == deck.Jack || c.Suit == deck.Diamonds
			assert.Equal(t, want, IsTrump(c), c.Short())
			assert.Equal(t, !want, IsFail(c), c.Short())
		}
	})

	t.Run("trump order covers all fourteen trump", func(t *testing.T) {
		utils.AssertEqual(t, len(TrumpOrder), 14)
		for i := 1; i < len(TrumpOrder); i++ {
			assert.Negative(t, CmpForTrick(Led{Trump: true}, TrumpOrder[i-1], TrumpOrder[i]))
		}
	})

	t.Run("the deck holds 120 points", func(t *testing.T) {
		utils.AssertEqual(t, sumPoints(deck.New()), 120)
	})

	t.Run("led suit", func(t *testing.T) {
		utils.AssertEqual(t, LedSuit(card("QH")).String(), "TRUMP")
		utils.AssertEqual(t, LedSuit(card("7D")).String(), "TRUMP")
		utils.AssertEqual(t, LedSuit(card("7H")), Led{Suit: deck.Hearts})
	})

	t.Run("comparisons", func(t *testing.T) {
		hearts := Led{Suit: deck.Hearts}

		assert.Negative(t, CmpForTrick(hearts, card("AH"), card("TH")))
		assert.Negative(t, CmpForTrick(hearts, card("TH"), card("KH")))
		assert.Negative(t, CmpForTrick(hearts, card("7D"), card("AH")))
		assert.Negative(t, CmpForTrick(hearts, card("7H"), card("AC")))
		assert.Positive(t, CmpForTrick(hearts, card("AC"), card("7H")))
		assert.Negative(t, CmpForTrick(Led{Trump: true}, card("JD"), card("AD")))
		assert.Positive(t, CmpForTrick(Led{Trump: true}, card("AC"), card("7D")))
	})
}

func TestWinnerOfTrick(t *testing.T) {
	trick := func(leader Seat, shorts ...string) *Trick {
		tr := newTrick(leader)
		seat := leader
		for _, c := range cards(shorts...) {
			tr.Plays = append(tr.Plays, TrickPlay{Seat: seat, Card: c})
			seat = seat.Next()
		}
		return tr
	}

	cases := []struct {
		name  string
		trick *Trick
		want  Seat
	}{
		{"highest of the led suit", trick(0, "9H", "AH", "TH", "AS", "KH"), 1},
		{"lowest trump beats fail", trick(0, "9H", "AH", "7D", "TH", "AC"), 2},
		{"top queen", trick(3, "7D", "QC", "JD", "AD", "AH"), 4},
		{"off-suit ace cannot win", trick(2, "KH", "AS", "AC", "9H", "8S"), 2},
		{"leader keeps it when nobody follows", trick(1, "7C", "AS", "AH", "TS", "TH"), 1},
		{"jack of diamonds over ace of diamonds", trick(4, "AD", "JD", "TD", "KD", "9D"), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			utils.AssertEqual(t, WinnerOfTrick(tc.trick), tc.want)
		})
	}

	t.Run("empty trick has no winner", func(t *testing.T) {
		utils.AssertEqual(t, WinnerOfTrick(newTrick(2)), NoSeat)
		utils.AssertEqual(t, WinnerOfTrick(nil), NoSeat)
	})
}

func TestLegalPlays(t *testing.T) {
	hands := [NumSeats][]deck.Card{
		cards("QH", "7H", "AS"),
		cards("QC", "AH", "9S"),
		cards("KS", "TC", "8C"),
		cards("7D", "9C", "KC"),
		cards("JD", "TH", "7C"),
	}

	t.Run("leader may play anything", func(t *testing.T) {
		s := playState(0, hands)
		assert.ElementsMatch(t, s.Hands[0], LegalPlays(s, 0))
	})

	t.Run("a heart lead must be followed with a fail heart", func(t *testing.T) {
		s := playState(0, hands)
		require.NoError(t, ApplyPlay(s, 0, card("7H")))

		assert.Equal(t, cards("AH"), LegalPlays(s, 1))
	})

	t.Run("trump is not a heart", func(t *testing.T) {
		s := playState(3, hands)
		require.NoError(t, ApplyPlay(s, 3, card("9C")))
		require.NoError(t, ApplyPlay(s, 4, card("7C")))

		// seat 0 has no fail club, so the queen of hearts is a free slough
		assert.ElementsMatch(t, hands[0], LegalPlays(s, 0))
	})

	t.Run("a trump lead must be followed with trump", func(t *testing.T) {
		s := playState(4, hands)
		require.NoError(t, ApplyPlay(s, 4, card("JD")))

		assert.Equal(t, cards("QH"), LegalPlays(s, 0))
	})

	t.Run("nothing to follow with means anything goes", func(t *testing.T) {
		s := playState(4, hands)
		require.NoError(t, ApplyPlay(s, 4, card("JD")))
		require.NoError(t, ApplyPlay(s, 0, card("QH")))
		require.NoError(t, ApplyPlay(s, 1, card("QC")))

		assert.ElementsMatch(t, hands[2], LegalPlays(s, 2))
	})

	t.Run("nothing outside play", func(t *testing.T) {
		s := playState(0, hands)
		s.Phase = PhaseCall
		assert.Empty(t, LegalPlays(s, 0))
	})
}

func TestApplyPlay(t *testing.T) {
	hands := func() [NumSeats][]deck.Card {
		return [NumSeats][]deck.Card{
			cards("9H", "QC"),
			cards("AH", "7C"),
			cards("7D", "8C"),
			cards("TH", "9C"),
			cards("AC", "KC"),
		}
	}

	t.Run("out of turn", func(t *testing.T) {
		s := playState(0, hands())
		err := ApplyPlay(s, 1, card("AH"))
		requireKind(t, err, TurnViolation)
	})

	t.Run("card not held", func(t *testing.T) {
		s := playState(0, hands())
		err := ApplyPlay(s, 0, card("AH"))
		requireKind(t, err, HoldingViolation)
		require.ErrorIs(t, err, ErrCardNotInHand)
	})

	t.Run("failing to follow suit", func(t *testing.T) {
		s := playState(0, hands())
		require.NoError(t, ApplyPlay(s, 0, card("9H")))
		before := s.Clone()

		err := ApplyPlay(s, 1, card("7C"))
		requireKind(t, err, PlayViolation)
		require.ErrorIs(t, err, ErrMustFollow)
		assert.Equal(t, before, s)
	})

	t.Run("outside the play phase", func(t *testing.T) {
		s := NewHand(0, "play", DefaultRuleset())
		requireKind(t, ApplyPlay(s, 1, s.Hands[1][0]), PhaseViolation)
	})

	t.Run("turn moves clockwise within a trick", func(t *testing.T) {
		s := playState(3, hands())
		require.NoError(t, ApplyPlay(s, 3, card("9C")))

		utils.AssertEqual(t, s.Turn, Seat(4))
		utils.AssertEqual(t, len(s.Trick.Plays), 1)
		assert.Equal(t, cards("TH"), s.Hands[3])
	})

	t.Run("the winner takes the trick and leads the next", func(t *testing.T) {
		s := playState(0, hands())
		for _, p := range []struct {
			seat Seat
			card string
		}{{0, "9H"}, {1, "AH"}, {2, "7D"}, {3, "TH"}, {4, "AC"}} {
			require.NoError(t, ApplyPlay(s, p.seat, card(p.card)))
		}

		assert.ElementsMatch(t, cards("9H", "AH", "7D", "TH", "AC"), s.Taken[2])
		utils.AssertEqual(t, s.Leader, Seat(2))
		utils.AssertEqual(t, s.Turn, Seat(2))
		assert.Equal(t, &Trick{Leader: 2, Plays: []TrickPlay{}}, s.Trick)
		utils.AssertEqual(t, WinnerOfTrick(s.LastTrick), Seat(2))
		utils.AssertEqual(t, TricksPlayed(s), 1)
		utils.AssertEqual(t, s.Phase, PhasePlay)
	})

	t.Run("the last trick ends the hand", func(t *testing.T) {
		s := playState(0, hands())
		for _, p := range []struct {
			seat Seat
			card string
		}{
			{0, "9H"}, {1, "AH"}, {2, "7D"}, {3, "TH"}, {4, "AC"},
			{2, "8C"}, {3, "9C"}, {4, "KC"}, {0, "QC"}, {1, "7C"},
		} {
			require.NoError(t, ApplyPlay(s, p.seat, card(p.card)))
		}

		utils.AssertEqual(t, s.Phase, PhaseDone)
		assert.Nil(t, s.Trick)
		utils.AssertEqual(t, WinnerOfTrick(s.LastTrick), Seat(0))
		requireKind(t, ApplyPlay(s, 0, card("QC")), PhaseViolation)
	})
}
