package engine

import (
	"errors"
	"fmt"

	"github.com/minaorangina/sheepshead/deck"
	"github.com/minaorangina/sheepshead/game"
	"github.com/minaorangina/sheepshead/protocol"
)

var (
	ErrWrongPlayerCount = fmt.Errorf("exactly %d players required", game.NumSeats)
	ErrTableFull        = errors.New("table is full")
	ErrNoHand           = errors.New("no hand in progress")
	ErrUnknownPlayer    = errors.New("player is not seated at this table")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingCard      = errors.New("missing card")
)

// Seated is a player holding a seat.
type Seated struct {
	PlayerID string
	Name     string
	Seat     game.Seat
}

// Event is something a table tells its players after an action. To is a
// single recipient, or NoSeat for everyone.
type Event struct {
	Command      protocol.Cmd
	To           game.Seat
	Announcement string
	Message      string
	Tally        *game.Points
}

// Table is one table's seating and the hand in progress. It is not safe
// for concurrent use: each transport drives a Table from one goroutine.
type Table struct {
	rules  game.Ruleset
	seedFn func() string

	seats  [game.NumSeats]*Seated
	state  *game.State
	dealer game.Seat
	hands  int
}

// NewTable constructs an empty table. seedFn supplies a seed when a
// StartHand does not carry one.
func NewTable(rules game.Ruleset, seedFn func() string) *Table {
	if seedFn == nil {
		seedFn = RandomSeed
	}
	return &Table{rules: rules, seedFn: seedFn, dealer: game.NoSeat}
}

// Sit seats playerID, returning the seat they already had if any.
// Otherwise they take the lowest free seat.
func (t *Table) Sit(playerID, name string) (game.Seat, error) {
	if seat, ok := t.SeatOf(playerID); ok {
		t.seats[seat].Name = name
		return seat, nil
	}
	for i, s := range t.seats {
		if s == nil {
			seat := game.Seat(i)
			t.seats[i] = &Seated{PlayerID: playerID, Name: name, Seat: seat}
			return seat, nil
		}
	}
	return game.NoSeat, ErrTableFull
}

// Stand frees playerID's seat. Mid-hand seats are kept so the player can
// come back to their cards.
func (t *Table) Stand(playerID string) {
	seat, ok := t.SeatOf(playerID)
	if !ok || t.InHand() {
		return
	}
	t.seats[seat] = nil
}

func (t *Table) SeatOf(playerID string) (game.Seat, bool) {
	for i, s := range t.seats {
		if s != nil && s.PlayerID == playerID {
			return game.Seat(i), true
		}
	}
	return game.NoSeat, false
}

// Seated lists the occupied seats in seat order.
func (t *Table) Seated() []Seated {
	out := []Seated{}
	for _, s := range t.seats {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

func (t *Table) Full() bool {
	return len(t.Seated()) == game.NumSeats
}

// State is the hand in progress, or nil.
func (t *Table) State() *game.State {
	return t.state
}

// InHand reports whether a hand has been dealt and is not over.
func (t *Table) InHand() bool {
	return t.state != nil && t.state.Phase != game.PhaseDone
}

// Phase names the current phase, or "" before the first deal.
func (t *Table) Phase() string {
	if t.state == nil {
		return ""
	}
	return t.state.Phase.String()
}

// Message builds the outbound message for ev as seat sees it.
func (t *Table) Message(ev Event, seat game.Seat) protocol.OutboundMessage {
	var msg protocol.OutboundMessage
	if t.state != nil {
		msg = game.BuildMessage(t.state, seat, ev.Command)
	} else {
		msg = protocol.OutboundMessage{Command: ev.Command}
	}
	msg.Announcement = ev.Announcement
	msg.Message = ev.Message
	if ev.Tally != nil {
		msg.Tally = ev.Tally.View()
	}
	return msg
}

// Apply runs one player command against the table. A rejected command
// returns an error and leaves the table as it was.
func (t *Table) Apply(seat game.Seat, msg protocol.InboundMessage) ([]Event, error) {
	if !seat.Valid() || t.seats[seat] == nil {
		return nil, ErrUnknownPlayer
	}

	switch msg.Command {
	case protocol.StartHand:
		return t.startHand(msg.Seed)
	case protocol.RequestState:
		if t.state == nil {
			return nil, ErrNoHand
		}
		return []Event{{Command: protocol.State, To: seat}}, nil
	}

	if t.state == nil {
		return nil, ErrNoHand
	}
	s := t.state

	switch msg.Command {
	case protocol.Bid:
		bid, err := game.ParseBid(msg.Bid)
		if err != nil {
			return nil, &game.Error{Kind: game.MalformedAction, Reason: fmt.Errorf("%w: %q", game.ErrUnknownBid, msg.Bid)}
		}
		if err := game.ApplyBid(s, seat, bid); err != nil {
			return nil, err
		}
		return broadcast(protocol.BiddingUpdated, game.DescribeBid(s, seat, bid)), nil

	case protocol.TakeBlind:
		if err := game.TakeBlind(s, seat); err != nil {
			return nil, err
		}
		return broadcast(protocol.BlindTaken, fmt.Sprintf("Seat %d took the blind.", seat)), nil

	case protocol.Bury:
		if err := game.ApplyBury(s, seat, msg.Cards); err != nil {
			return nil, err
		}
		return broadcast(protocol.BuryDone, fmt.Sprintf("Seat %d buried %d cards.", seat, len(msg.Cards))), nil

	case protocol.Call:
		call, err := game.CallFromPayload(msg.Call)
		if err != nil {
			return nil, err
		}
		if err := game.ApplyCall(s, seat, call); err != nil {
			return nil, err
		}
		return []Event{{Command: protocol.Called, To: game.NoSeat, Announcement: game.Announcement(s, call)}}, nil

	case protocol.Play:
		return t.play(seat, msg.Card)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, msg.Command)
}

func (t *Table) startHand(seed string) ([]Event, error) {
	if !t.Full() {
		return nil, ErrWrongPlayerCount
	}
	if seed == "" {
		seed = t.seedFn()
	}

	dealer := game.Seat(0)
	if t.hands > 0 {
		dealer = t.dealer.Next()
	}

	s, err := game.TryNewHand(dealer, seed, t.rules)
	if err != nil {
		return nil, err
	}

	t.state = s
	t.dealer = dealer
	t.hands++
	return broadcast(protocol.Dealt, fmt.Sprintf("Hand %d dealt by seat %d.", t.hands, dealer)), nil
}

func (t *Table) play(seat game.Seat, card *deck.Card) ([]Event, error) {
	if card == nil {
		return nil, &game.Error{Kind: game.MalformedAction, Reason: ErrMissingCard}
	}
	s := t.state
	tricks := game.TricksPlayed(s)

	if err := game.ApplyPlay(s, seat, *card); err != nil {
		return nil, err
	}

	events := broadcast(protocol.CardPlayed, game.DescribePlay(seat, *card))
	if game.TricksPlayed(s) > tricks {
		events = append(events, broadcast(protocol.TrickTaken, game.DescribeTrick(s.LastTrick))...)
	}
	if s.Phase == game.PhaseDone {
		points, err := game.Tally(s)
		if err != nil {
			return nil, err
		}
		events = append(events, Event{
			Command: protocol.HandEnded,
			To:      game.NoSeat,
			Message: game.DescribeTally(points),
			Tally:   &points,
		})
	}
	return events, nil
}

func broadcast(cmd protocol.Cmd, message string) []Event {
	return []Event{{Command: cmd, To: game.NoSeat, Message: message}}
}
