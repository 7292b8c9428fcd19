package engine

import (
	"github.com/minaorangina/sheepshead/game"
	"github.com/minaorangina/sheepshead/players"
	"github.com/minaorangina/sheepshead/protocol"
)

// RandomSeed returns a fresh seed for a hand nobody asked to replay.
func RandomSeed() string {
	return players.NewID()
}

// ErrorText is what a player is told about a rejected command. Internal
// faults are not theirs to see.
func ErrorText(err error) string {
	if game.KindOf(err) == game.InternalConsistencyFault {
		return "something went wrong with this hand"
	}
	return err.Error()
}

// ErrorMessage is the outbound message for a rejected command.
func ErrorMessage(err error) protocol.OutboundMessage {
	msg := protocol.OutboundMessage{
		Command: protocol.Error,
		Error:   ErrorText(err),
	}
	if kind := game.KindOf(err); kind != 0 {
		msg.Message = kind.String()
	}
	return msg
}
