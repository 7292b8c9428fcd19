package game

import (
	"fmt"

	"github.com/minaorangina/sheepshead/deck"
	"github.com/minaorangina/sheepshead/protocol"
)

// BuildMessage is the base message for one seat: cmd plus that seat's view
// of s.
func BuildMessage(s *State, viewer Seat, cmd protocol.Cmd) protocol.OutboundMessage {
	return protocol.OutboundMessage{
		Command: cmd,
		Seat:    seatRef(viewer),
		State:   POV(s, viewer),
	}
}

// Announcement describes a resolved call for the whole table. payload is
// what the picker asked for; s.Called is what took effect.
func Announcement(s *State, payload Call) string {
	switch p := payload.(type) {
	case Solo:
		return "Picker declared Solo."
	case CardCall:
		if _, forced := s.Called.(Solo); forced {
			return "Picker holds every fail Ace and Ten and must play Solo."
		}
		if p.Card.Rank == deck.Ten {
			return fmt.Sprintf("Picker called the %s (forced Ten).", p.Card.Label())
		}
		return fmt.Sprintf("Picker called the %s.", p.Card.Label())
	}
	return ""
}

func bidMessage(seat Seat, bid Bid) string {
	if bid == Pick {
		return fmt.Sprintf("Seat %d picks.", seat)
	}
	return fmt.Sprintf("Seat %d passes.", seat)
}

// DescribeBid is the table message after seat bids. An all-pass is called
// out because nothing more can happen until the hand is re-dealt.
func DescribeBid(s *State, seat Seat, bid Bid) string {
	msg := bidMessage(seat, bid)
	if s.Phase == PhaseBidding && CurrentBidder(s) == NoSeat {
		msg += " Everyone passed."
	}
	return msg
}

// DescribePlay is the table message after a card lands.
func DescribePlay(seat Seat, c deck.Card) string {
	return fmt.Sprintf("Seat %d played the %s.", seat, c.Label())
}

// DescribeTrick is the table message after a trick is taken.
func DescribeTrick(t *Trick) string {
	winner := WinnerOfTrick(t)
	return fmt.Sprintf("Seat %d took the trick for %d points.", winner, sumPoints(t.Cards()))
}

// DescribeTally is the table message at the end of a hand.
func DescribeTally(p Points) string {
	return fmt.Sprintf("Picker's side %d, defenders %d.", p.PickerSide, p.Defenders)
}
