package game

import (
	"testing"

	"github.com/minaorangina/sheepshead/deck"
	utils "github.com/minaorangina/sheepshead/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBidding(t *testing.T) {
	t.Run("bids go clockwise from the dealer's left", func(t *testing.T) {
		s := NewHand(3, "bids", DefaultRuleset())

		for _, seat := range []Seat{4, 0, 1} {
			utils.AssertEqual(t, CurrentBidder(s), seat)
			err := ApplyBid(s, seat, Pass)
			utils.AssertNoError(t, err)
			utils.AssertNoError(t, CheckInvariants(s))
		}
		utils.AssertEqual(t, CurrentBidder(s), Seat(2))
		utils.AssertEqual(t, s.Turn, Seat(2))
	})

	t.Run("a seat out of turn is rejected", func(t *testing.T) {
		s := NewHand(0, "bids", DefaultRuleset())
		before := s.Clone()

		for _, seat := range []Seat{0, 2, 3, 4} {
			err := ApplyBid(s, seat, Pick)
			requireKind(t, err, TurnViolation)
			require.ErrorIs(t, err, ErrNotYourTurn)
		}
		assert.Equal(t, before, s)
	})

	t.Run("an unknown seat is malformed", func(t *testing.T) {
		s := NewHand(0, "bids", DefaultRuleset())

		err := ApplyBid(s, Seat(7), Pick)
		requireKind(t, err, MalformedAction)
	})

	t.Run("a bid that is neither Pick nor Pass is malformed", func(t *testing.T) {
		s := NewHand(0, "bids", DefaultRuleset())

		err := ApplyBid(s, 1, NoBid)
		requireKind(t, err, MalformedAction)
		require.ErrorIs(t, err, ErrUnknownBid)
		utils.AssertEqual(t, s.Bids[1], NoBid)
	})

	t.Run("pick makes the picker and opens the blind", func(t *testing.T) {
		s := NewHand(0, "bids", DefaultRuleset())
		err := ApplyBid(s, 1, Pass)
		require.NoError(t, err)

		err = ApplyBid(s, 2, Pick)
		require.NoError(t, err)

		utils.AssertEqual(t, s.Picker, Seat(2))
		utils.AssertEqual(t, s.Phase, PhaseBlind)
		utils.AssertEqual(t, s.Turn, Seat(2))
		utils.AssertEqual(t, CurrentBidder(s), NoSeat)
		assert.Empty(t, LegalBids(s, 3))
	})

	t.Run("bidding after a pick is a phase violation", func(t *testing.T) {
		s := NewHand(0, "bids", DefaultRuleset())
		err := ApplyBid(s, 1, Pick)
		require.NoError(t, err)

		err = ApplyBid(s, 2, Pass)
		requireKind(t, err, PhaseViolation)
		require.ErrorIs(t, err, ErrInvalidPhase)
	})

	t.Run("legal bids follow the current bidder", func(t *testing.T) {
		s := NewHand(0, "bids", DefaultRuleset())

		assert.Equal(t, []Bid{Pick, Pass}, LegalBids(s, 1))
		assert.Empty(t, LegalBids(s, 2))
		assert.Empty(t, LegalBids(s, NoSeat))
	})

	t.Run("all five passing leaves the hand in Bidding", func(t *testing.T) {
		s := NewHand(0, "bids", DefaultRuleset())
		for _, seat := range SeatingOrder(0) {
			err := ApplyBid(s, seat, Pass)
			require.NoError(t, err)
		}

		utils.AssertEqual(t, s.Phase, PhaseBidding)
		utils.AssertEqual(t, s.Picker, NoSeat)
		utils.AssertEqual(t, CurrentBidder(s), NoSeat)
		for _, seat := range SeatingOrder(0) {
			assert.Empty(t, LegalBids(s, seat))
			err := ApplyBid(s, seat, Pick)
			requireKind(t, err, TurnViolation)
		}
		utils.AssertNoError(t, CheckInvariants(s))
	})
}

func TestTakeBlind(t *testing.T) {
	s := NewHand(0, "blind", DefaultRuleset())
	err := ApplyBid(s, 1, Pick)
	require.NoError(t, err)
	blind := cloneCards(s.Blind)

	t.Run("only the picker can take the blind", func(t *testing.T) {
		err := TakeBlind(s, 2)
		requireKind(t, err, RoleViolation)
		require.ErrorIs(t, err, ErrNotPicker)
		utils.AssertEqual(t, len(s.Blind), 2)
	})

	t.Run("picker takes the blind into hand", func(t *testing.T) {
		require.NoError(t, TakeBlind(s, 1))

		utils.AssertEqual(t, len(s.Hands[1]), 8)
		assert.Subset(t, s.Hands[1], blind)
		assert.Empty(t, s.Blind)
		utils.AssertEqual(t, s.Phase, PhaseBury)
		utils.AssertEqual(t, s.Turn, Seat(1))
		utils.AssertNoError(t, CheckInvariants(s))
	})

	t.Run("the blind cannot be taken twice", func(t *testing.T) {
		requireKind(t, TakeBlind(s, 1), PhaseViolation)
	})
}

func TestApplyBury(t *testing.T) {
	setup := func(t *testing.T) *State {
		s := NewHand(0, "bury", DefaultRuleset())
		err := ApplyBid(s, 1, Pick)
		require.NoError(t, err)
		require.NoError(t, TakeBlind(s, 1))
		return s
	}

	t.Run("burying before taking the blind is a phase violation", func(t *testing.T) {
		s := NewHand(0, "bury", DefaultRuleset())
		err := ApplyBid(s, 1, Pick)
		require.NoError(t, err)

		requireKind(t, ApplyBury(s, 1, cloneCards(s.Hands[1][:2])), PhaseViolation)
	})

	t.Run("only the picker can bury", func(t *testing.T) {
		s := setup(t)
		requireKind(t, ApplyBury(s, 0, cloneCards(s.Hands[0][:2])), RoleViolation)
	})

	t.Run("wrong number of cards", func(t *testing.T) {
		s := setup(t)
		before := s.Clone()

		for _, n := range []int{0, 1, 3} {
			err := ApplyBury(s, 1, cloneCards(s.Hands[1][:n]))
			requireKind(t, err, QuantityViolation)
			require.ErrorIs(t, err, ErrWrongBuryCount)
		}
		assert.Equal(t, before, s)
	})

	t.Run("a card not in hand leaves the hand untouched", func(t *testing.T) {
		s := setup(t)
		before := s.Clone()
		missing := s.Hands[2][0]

		err := ApplyBury(s, 1, []deck.Card{s.Hands[1][0], missing})
		requireKind(t, err, HoldingViolation)
		require.ErrorIs(t, err, ErrCardNotInHand)
		assert.Equal(t, before, s)
	})

	t.Run("the same card twice is rejected", func(t *testing.T) {
		s := setup(t)
		before := s.Clone()

		err := ApplyBury(s, 1, []deck.Card{s.Hands[1][0], s.Hands[1][0]})
		requireKind(t, err, HoldingViolation)
		assert.Equal(t, before, s)
	})

	t.Run("buried cards leave the hand and the call opens", func(t *testing.T) {
		s := setup(t)
		bury := []deck.Card{s.Hands[1][3], s.Hands[1][0]}

		require.NoError(t, ApplyBury(s, 1, bury))

		utils.AssertEqual(t, len(s.Hands[1]), 6)
		assert.Equal(t, bury, s.Buried)
		for _, c := range bury {
			assert.NotContains(t, s.Hands[1], c)
		}
		utils.AssertEqual(t, s.Phase, PhaseCall)
		utils.AssertEqual(t, s.Turn, Seat(1))
		utils.AssertNoError(t, CheckInvariants(s))
	})
}
