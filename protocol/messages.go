package protocol

import (
	"github.com/minaorangina/sheepshead/deck"
)

type Player struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
	Seat     int    `json:"seat"`
}

// CallPayload is the picker's call: either Solo or a named card.
type CallPayload struct {
	Solo bool       `json:"solo,omitempty"`
	Card *deck.Card `json:"card,omitempty"`
}

// InboundMessage is a message from Player to the table
type InboundMessage struct {
	PlayerID string       `json:"playerID"`
	Command  Cmd          `json:"command"`
	Seed     string       `json:"seed,omitempty"`
	Bid      string       `json:"bid,omitempty"`
	Cards    []deck.Card  `json:"cards,omitempty"`
	Call     *CallPayload `json:"call,omitempty"`
	Card     *deck.Card   `json:"card,omitempty"`
}

// OutboundMessage is a message from the table to Player
type OutboundMessage struct {
	PlayerID     string     `json:"playerID"`
	Command      Cmd        `json:"command"`
	Seat         *int       `json:"seat,omitempty"`
	State        *StateView `json:"state,omitempty"`
	Announcement string     `json:"announcement,omitempty"`
	Message      string     `json:"message,omitempty"`
	Joiner       *Player    `json:"joiner,omitempty"`
	Tally        *TallyView `json:"tally,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// TallyView is the end-of-hand point split.
type TallyView struct {
	PickerSide int `json:"pickerSidePoints"`
	Defenders  int `json:"defendersPoints"`
}
