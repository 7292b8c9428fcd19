package engine

import (
	"context"
	"testing"
	"time"

	"github.com/minaorangina/sheepshead/game"
	utils "github.com/minaorangina/sheepshead/internal"
	"github.com/minaorangina/sheepshead/players"
	"github.com/minaorangina/sheepshead/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameEngineTestTimeout = 200 * time.Millisecond

func newTestEngine(t *testing.T) (*gameEngine, context.CancelFunc) {
	t.Helper()
	ge, err := NewGameEngine(GameEngineOpts{
		GameID:    "some-game-id",
		CreatorID: "creator",
		SeedFn:    func() string { return "hub" },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go ge.Listen(ctx)
	t.Cleanup(cancel)
	return ge, cancel
}

func seatPlayers(t *testing.T, ge *gameEngine, n int) []*players.TestPlayer {
	t.Helper()
	ps := players.SomePlayers(n)
	for i, p := range ps {
		utils.AssertNoError(t, ge.AddPlayer(p))
		hello, ok := p.NextOf(protocol.Hello, gameEngineTestTimeout)
		require.True(t, ok, "no Hello for player %d", i)
		require.NotNil(t, hello.Seat)
		require.Equal(t, i, *hello.Seat)
	}
	return ps
}

func TestNewGameEngine(t *testing.T) {
	t.Run("requires a game ID", func(t *testing.T) {
		_, err := NewGameEngine(GameEngineOpts{})
		utils.AssertErrored(t, err)
	})

	t.Run("starts idle", func(t *testing.T) {
		ge, err := NewGameEngine(GameEngineOpts{GameID: "abc", CreatorID: "me"})
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, ge.ID(), "abc")
		utils.AssertEqual(t, ge.CreatorID(), "me")
		utils.AssertEqual(t, ge.PlayState(), Idle)
		utils.AssertEqual(t, ge.Phase(), "")
		assert.Empty(t, ge.Players())
	})
}

func TestGameEngineRegister(t *testing.T) {
	t.Run("joiners are greeted and announced", func(t *testing.T) {
		ge, _ := newTestEngine(t)
		ps := seatPlayers(t, ge, 2)

		self, ok := ps[0].NextOf(protocol.NewJoiner, gameEngineTestTimeout)
		require.True(t, ok)
		utils.AssertEqual(t, self.Joiner.PlayerID, ps[0].ID())

		msg, ok := ps[0].NextOf(protocol.NewJoiner, gameEngineTestTimeout)
		require.True(t, ok)
		utils.AssertEqual(t, msg.Joiner.PlayerID, ps[1].ID())
		utils.AssertEqual(t, msg.Joiner.Seat, 1)
		utils.AssertEqual(t, msg.PlayerID, ps[0].ID())

		utils.AssertEqual(t, len(ge.Players()), 2)
	})

	t.Run("a sixth player is refused", func(t *testing.T) {
		ge, _ := newTestEngine(t)
		seatPlayers(t, ge, game.NumSeats)

		err := ge.AddPlayer(players.APlayer("late", "Late"))
		require.ErrorIs(t, err, ErrTableFull)
	})

	t.Run("a rejoining player gets the hand back", func(t *testing.T) {
		ge, _ := newTestEngine(t)
		ps := seatPlayers(t, ge, game.NumSeats)
		ps[0].Do(protocol.InboundMessage{Command: protocol.StartHand})
		_, ok := ps[2].NextOf(protocol.Dealt, gameEngineTestTimeout)
		require.True(t, ok)

		again := players.APlayer(ps[2].ID(), ps[2].Name())
		utils.AssertNoError(t, ge.AddPlayer(again))

		hello, ok := again.NextOf(protocol.Hello, gameEngineTestTimeout)
		require.True(t, ok)
		utils.AssertEqual(t, *hello.Seat, 2)

		state, ok := again.NextOf(protocol.State, gameEngineTestTimeout)
		require.True(t, ok)
		assert.Len(t, state.State.Hands[2], 6)
		assert.True(t, state.State.Hands[2][0].Known())
		utils.AssertEqual(t, len(ge.Players()), game.NumSeats)
	})

	t.Run("the old connection leaving does not drop the new one", func(t *testing.T) {
		ge, _ := newTestEngine(t)
		ps := seatPlayers(t, ge, game.NumSeats)

		again := players.APlayer(ps[0].ID(), ps[0].Name())
		utils.AssertNoError(t, ge.AddPlayer(again))
		_, ok := again.NextOf(protocol.Hello, gameEngineTestTimeout)
		require.True(t, ok)

		// register has already hung up on the old connection
		ps[0].Leave()
		time.Sleep(20 * time.Millisecond)

		current, ok := ge.Players().Find(ps[0].ID())
		require.True(t, ok)
		assert.True(t, current == players.Player(again))
		_, seated := ge.table.SeatOf(ps[0].ID())
		utils.AssertTrue(t, seated)

		again.Do(protocol.InboundMessage{Command: protocol.StartHand})
		dealt, ok := again.NextOf(protocol.Dealt, gameEngineTestTimeout)
		require.True(t, ok)
		assert.True(t, dealt.State.Hands[0][0].Known())
	})
}

func TestGameEngineHand(t *testing.T) {
	ge, _ := newTestEngine(t)
	ps := seatPlayers(t, ge, game.NumSeats)

	t.Run("StartHand deals each seat its own view", func(t *testing.T) {
		ps[0].Do(protocol.InboundMessage{Command: protocol.StartHand, Seed: "seed-A"})

		for i, p := range ps {
			msg, ok := p.NextOf(protocol.Dealt, gameEngineTestTimeout)
			require.True(t, ok, "player %d was not dealt in", i)
			utils.AssertEqual(t, *msg.Seat, i)
			assert.Empty(t, msg.State.Seed)
			for seat, hand := range msg.State.Hands {
				require.Len(t, hand, 6)
				utils.AssertEqual(t, hand[0].Known(), seat == i)
			}
		}

		utils.Within(t, gameEngineTestTimeout, func() {
			for ge.PlayState() != InProgress {
				time.Sleep(time.Millisecond)
			}
		})
		utils.AssertEqual(t, ge.Phase(), "Bidding")
	})

	t.Run("a rejected command only goes back to its sender", func(t *testing.T) {
		ps[3].Do(protocol.InboundMessage{Command: protocol.Bid, Bid: "Pick"})

		msg, ok := ps[3].NextOf(protocol.Error, gameEngineTestTimeout)
		require.True(t, ok)
		utils.AssertEqual(t, msg.Error, game.ErrNotYourTurn.Error())
		utils.AssertEqual(t, msg.Message, "TurnViolation")

		for _, p := range []*players.TestPlayer{ps[0], ps[1], ps[2], ps[4]} {
			_, got := p.NextOf(protocol.Error, 20*time.Millisecond)
			assert.False(t, got)
		}
	})

	t.Run("a bid reaches everyone", func(t *testing.T) {
		ps[1].Do(protocol.InboundMessage{Command: protocol.Bid, Bid: "Pick"})

		for _, p := range ps {
			msg, ok := p.NextOf(protocol.BiddingUpdated, gameEngineTestTimeout)
			require.True(t, ok)
			utils.AssertEqual(t, msg.Message, "Seat 1 picks.")
			utils.AssertEqual(t, *msg.State.Picker, 1)
		}
		utils.AssertEqual(t, ge.Phase(), "Blind")
	})

	t.Run("only the picker sees the blind", func(t *testing.T) {
		ps[1].Do(protocol.InboundMessage{Command: protocol.TakeBlind})

		picker, ok := ps[1].NextOf(protocol.BlindTaken, gameEngineTestTimeout)
		require.True(t, ok)
		assert.Len(t, picker.State.Hands[1], 8)

		other, ok := ps[4].NextOf(protocol.BlindTaken, gameEngineTestTimeout)
		require.True(t, ok)
		for _, c := range other.State.Hands[1] {
			assert.False(t, c.Known())
		}
	})

	t.Run("state on request", func(t *testing.T) {
		ps[4].Do(protocol.InboundMessage{Command: protocol.RequestState})

		msg, ok := ps[4].NextOf(protocol.State, gameEngineTestTimeout)
		require.True(t, ok)
		utils.AssertEqual(t, msg.State.Phase, "Bury")

		_, got := ps[0].NextOf(protocol.State, 20*time.Millisecond)
		assert.False(t, got)
	})
}

func TestGameEngineUnregister(t *testing.T) {
	ge, _ := newTestEngine(t)
	ps := seatPlayers(t, ge, 2)

	ps[1].Leave()

	utils.Within(t, gameEngineTestTimeout, func() {
		for len(ge.Players()) != 1 {
			time.Sleep(time.Millisecond)
		}
	})
	_, ok := ge.Players().Find(ps[1].ID())
	assert.False(t, ok)

	t.Log("and the freed seat goes to the next joiner")
	next := players.APlayer("next", "Next")
	utils.AssertNoError(t, ge.AddPlayer(next))
	hello, ok := next.NextOf(protocol.Hello, gameEngineTestTimeout)
	require.True(t, ok)
	utils.AssertEqual(t, *hello.Seat, 1)
}

func TestGameEngineStopsWithContext(t *testing.T) {
	ge, err := NewGameEngine(GameEngineOpts{GameID: "stopper"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ge.Listen(ctx)
		close(done)
	}()
	cancel()

	utils.Within(t, gameEngineTestTimeout, func() {
		<-done
	})
}
