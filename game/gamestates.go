package game

import "fmt"

// Seat identifies a place at the table, 0 to 4.
type Seat int

const (
	// NoSeat marks an unset seat (no picker yet, no bidder left, spectator).
	NoSeat Seat = -1

	// NumSeats is the fixed table size.
	NumSeats = 5
)

// Valid reports whether s is a real seat.
func (s Seat) Valid() bool {
	return s >= 0 && s < NumSeats
}

// Next returns the seat to the left (clockwise).
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// Phase represents the stages of a hand
type Phase int

const (
	PhaseBidding Phase = iota
	PhaseBlind
	PhaseBury
	PhaseCall
	PhasePlay
	PhaseDone
)

var phaseNames = []string{"Bidding", "Blind", "Bury", "Call", "Play", "Done"}

func (p Phase) String() string {
	if p < PhaseBidding || p > PhaseDone {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText lets phases appear by name in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Bid is a seat's bidding decision
type Bid int

const (
	NoBid Bid = iota
	Pick
	Pass
)

func (b Bid) String() string {
	switch b {
	case Pick:
		return "Pick"
	case Pass:
		return "Pass"
	default:
		return ""
	}
}

// ParseBid reads "Pick" or "Pass".
func ParseBid(s string) (Bid, error) {
	switch s {
	case "Pick":
		return Pick, nil
	case "Pass":
		return Pass, nil
	}
	return NoBid, fmt.Errorf("unknown bid %q", s)
}
