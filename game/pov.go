package game

import (
	"github.com/minaorangina/sheepshead/protocol"
)

// POV projects s as viewer sees it. Other seats' hands are face down; a
// viewer of NoSeat (logs, replays) sees everything. The blind is face up
// only for the picker between taking it and calling. The seed deals every
// hand, so seated viewers only get it once the hand is Done. s is not
// modified.
func POV(s *State, viewer Seat) *protocol.StateView {
	all := !viewer.Valid()

	v := &protocol.StateView{
		Viewer: seatRef(viewer),
		Rules: protocol.RulesView{
			Players:                    s.Rules.Players,
			BlindSize:                  s.Rules.BlindSize,
			BuryCount:                  s.Rules.BuryCount,
			RequirePickerHasSuitToCall: s.Rules.RequirePickerHasSuitToCall,
		},
		Dealer:        int(s.Dealer),
		Phase:         s.Phase.String(),
		Hands:         make([][]protocol.CardView, NumSeats),
		Bids:          make([]string, NumSeats),
		Picker:        seatRef(s.Picker),
		PartnerCalled: s.PartnerCalled,
		Leader:        int(s.Leader),
		Turn:          int(s.Turn),
		Trick:         trickView(s.Trick),
		LastTrick:     trickView(s.LastTrick),
		Taken:         make([][]protocol.CardView, NumSeats),
		LegalBids:     []string{},
		LegalCalls:    []protocol.CallView{},
		LegalPlays:    []protocol.CardView{},
	}

	if all || s.Phase == PhaseDone {
		v.Seed = s.Seed
	}

	for i := range s.Hands {
		seat := Seat(i)
		if all || seat == viewer {
			v.Hands[i] = protocol.ShowCards(s.Hands[i])
		} else {
			v.Hands[i] = protocol.HideCards(len(s.Hands[i]))
		}
		v.Bids[i] = s.Bids[i].String()
		v.Taken[i] = protocol.ShowCards(s.Taken[i])
	}

	blindOpen := s.Picker.Valid() && (s.Phase == PhaseBlind || s.Phase == PhaseBury || s.Phase == PhaseCall)
	if all || (blindOpen && viewer == s.Picker) {
		v.Blind = protocol.ShowCards(s.Blind)
	} else {
		v.Blind = protocol.HideCards(len(s.Blind))
	}

	if all || viewer == s.Picker {
		v.Buried = protocol.ShowCards(s.Buried)
	} else {
		v.Buried = protocol.HideCards(len(s.Buried))
	}

	if s.Phase == PhaseBidding {
		v.BidTurn = seatRef(CurrentBidder(s))
	}

	if s.Called != nil {
		v.Called = callView(s.Called)
	}
	if all || PartnerRevealed(s) {
		v.Partner = seatRef(s.Partner)
	}

	if viewer.Valid() {
		for _, b := range LegalBids(s, viewer) {
			v.LegalBids = append(v.LegalBids, b.String())
		}
		for _, c := range LegalCalls(s, viewer) {
			v.LegalCalls = append(v.LegalCalls, *callView(c))
		}
		if viewer == s.Turn {
			v.LegalPlays = protocol.ShowCards(LegalPlays(s, viewer))
		}
	}

	return v
}

// CallFromPayload turns a wire call into a Call. A payload with neither
// Solo nor a card is malformed.
func CallFromPayload(p *protocol.CallPayload) (Call, error) {
	switch {
	case p == nil:
		return nil, violation(MalformedAction, ErrMissingCall)
	case p.Solo:
		return Solo{}, nil
	case p.Card != nil:
		return CardCall{Card: *p.Card}, nil
	}
	return nil, violation(MalformedAction, ErrMissingCall)
}

func callView(c Call) *protocol.CallView {
	switch c := c.(type) {
	case Solo:
		return &protocol.CallView{Solo: true}
	case CardCall:
		cv := protocol.ShowCard(c.Card)
		return &protocol.CallView{Card: &cv}
	}
	return nil
}

func trickView(t *Trick) *protocol.TrickView {
	if t == nil {
		return nil
	}
	tv := &protocol.TrickView{Leader: int(t.Leader), Plays: make([]protocol.PlayView, 0, len(t.Plays))}
	for _, p := range t.Plays {
		tv.Plays = append(tv.Plays, protocol.PlayView{Seat: int(p.Seat), Card: protocol.ShowCard(p.Card)})
	}
	return tv
}

func seatRef(s Seat) *int {
	if !s.Valid() {
		return nil
	}
	n := int(s)
	return &n
}

// View converts a tally for the wire.
func (p Points) View() *protocol.TallyView {
	return &protocol.TallyView{PickerSide: p.PickerSide, Defenders: p.Defenders}
}
