package protocol

import "fmt"

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota

	// inbound, player to table
	StartHand
	RequestState
	Bid
	TakeBlind
	Bury
	Call
	Play

	// outbound, table to player
	Hello
	NewJoiner
	Dealt
	State
	BiddingUpdated
	BlindTaken
	BuryDone
	Called
	CardPlayed
	TrickTaken
	HandEnded
	Error
)

var CmdNames = map[Cmd]string{
	Null:           "Null",
	StartHand:      "StartHand",
	RequestState:   "RequestState",
	Bid:            "Bid",
	TakeBlind:      "TakeBlind",
	Bury:           "Bury",
	Call:           "Call",
	Play:           "Play",
	Hello:          "Hello",
	NewJoiner:      "NewJoiner",
	Dealt:          "Dealt",
	State:          "State",
	BiddingUpdated: "BiddingUpdated",
	BlindTaken:     "BlindTaken",
	BuryDone:       "BuryDone",
	Called:         "Called",
	CardPlayed:     "CardPlayed",
	TrickTaken:     "TrickTaken",
	HandEnded:      "HandEnded",
	Error:          "Error",
}

var NameToCmd = func() map[string]Cmd {
	m := make(map[string]Cmd, len(CmdNames))
	for c, name := range CmdNames {
		m[name] = c
	}
	return m
}()

func (c Cmd) String() string {
	if name, ok := CmdNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Cmd(%d)", int(c))
}

// Inbound reports whether players may send c.
func (c Cmd) Inbound() bool {
	return c >= StartHand && c <= Play
}

// MarshalText sends commands by name.
func (c Cmd) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText reads a command name.
func (c *Cmd) UnmarshalText(text []byte) error {
	cmd, ok := NameToCmd[string(text)]
	if !ok {
		return fmt.Errorf("unknown command %q", string(text))
	}
	*c = cmd
	return nil
}
