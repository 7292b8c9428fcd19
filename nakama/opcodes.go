package nakama

import "github.com/minaorangina/sheepshead/protocol"

// MatchName is the authoritative match handler name registered with Nakama.
const MatchName = "sheepshead"

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartHand    int64 = 1
	OpRequestState int64 = 2
	OpBid          int64 = 3
	OpTakeBlind    int64 = 4
	OpBury         int64 = 5
	OpCall         int64 = 6
	OpPlay         int64 = 7

	// Server -> Client events, each sent privately with the recipient's view
	OpHello          int64 = 101
	OpNewJoiner      int64 = 102
	OpDealt          int64 = 103
	OpState          int64 = 104
	OpBiddingUpdated int64 = 105
	OpBlindTaken     int64 = 106
	OpBuryDone       int64 = 107
	OpCalled         int64 = 108
	OpCardPlayed     int64 = 109
	OpTrickTaken     int64 = 110
	OpHandEnded      int64 = 111
	OpError          int64 = 112
)

var inboundOps = map[int64]protocol.Cmd{
	OpStartHand:    protocol.StartHand,
	OpRequestState: protocol.RequestState,
	OpBid:          protocol.Bid,
	OpTakeBlind:    protocol.TakeBlind,
	OpBury:         protocol.Bury,
	OpCall:         protocol.Call,
	OpPlay:         protocol.Play,
}

var outboundOps = map[protocol.Cmd]int64{
	protocol.Hello:          OpHello,
	protocol.NewJoiner:      OpNewJoiner,
	protocol.Dealt:          OpDealt,
	protocol.State:          OpState,
	protocol.BiddingUpdated: OpBiddingUpdated,
	protocol.BlindTaken:     OpBlindTaken,
	protocol.BuryDone:       OpBuryDone,
	protocol.Called:         OpCalled,
	protocol.CardPlayed:     OpCardPlayed,
	protocol.TrickTaken:     OpTrickTaken,
	protocol.HandEnded:      OpHandEnded,
	protocol.Error:          OpError,
}

// CommandFor maps a client op code to the command it carries.
func CommandFor(op int64) (protocol.Cmd, bool) {
	cmd, ok := inboundOps[op]
	return cmd, ok
}

// OpCodeFor maps an outbound command to its op code.
func OpCodeFor(cmd protocol.Cmd) (int64, bool) {
	op, ok := outboundOps[cmd]
	return op, ok
}
