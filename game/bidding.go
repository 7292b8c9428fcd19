package game

// CurrentBidder returns the first seat, clockwise from the dealer's left,
// that has not bid yet. It returns NoSeat outside Bidding or once all five
// have bid.
func CurrentBidder(s *State) Seat {
	if s.Phase != PhaseBidding {
		return NoSeat
	}
	for _, seat := range SeatingOrder(s.Dealer) {
		if s.Bids[seat] == NoBid {
			return seat
		}
	}
	return NoSeat
}

// LegalBids returns Pick and Pass for the current bidder and nothing for
// anyone else.
func LegalBids(s *State, seat Seat) []Bid {
	if bidder := CurrentBidder(s); bidder == NoSeat || bidder != seat {
		return []Bid{}
	}
	return []Bid{Pick, Pass}
}

// ApplyBid records seat's bid. The first Pick makes seat the picker and
// moves the hand to Blind.
//
// When all five seats pass the hand stays in Bidding with nobody left to
// bid. There is no re-deal or forced pick here; the table decides what to
// do next.
func ApplyBid(s *State, seat Seat, bid Bid) error {
	if s.Phase != PhaseBidding {
		return phaseViolation(PhaseBidding, s.Phase)
	}
	if !seat.Valid() {
		return violation(MalformedAction, ErrUnknownSeat)
	}
	if CurrentBidder(s) != seat {
		return violation(TurnViolation, ErrNotYourTurn)
	}
	if s.Bids[seat] != NoBid {
		return violation(TurnViolation, ErrAlreadyBid)
	}
	if bid != Pick && bid != Pass {
		return violation(MalformedAction, ErrUnknownBid)
	}

	s.Bids[seat] = bid
	if bid == Pick {
		s.Picker = seat
		s.Phase = PhaseBlind
		s.Turn = seat
		return nil
	}

	if next := CurrentBidder(s); next != NoSeat {
		s.Turn = next
	}
	return nil
}
