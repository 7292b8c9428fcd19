package game

import (
	"errors"
	"fmt"
)

// Kind classifies why an action was rejected.
type Kind int

const (
	_ Kind = iota
	PhaseViolation
	TurnViolation
	RoleViolation
	QuantityViolation
	HoldingViolation
	CallLegalityViolation
	PlayViolation
	MalformedAction
	InternalConsistencyFault
)

var kindNames = map[Kind]string{
	PhaseViolation:           "PhaseViolation",
	TurnViolation:            "TurnViolation",
	RoleViolation:            "RoleViolation",
	QuantityViolation:        "QuantityViolation",
	HoldingViolation:         "HoldingViolation",
	CallLegalityViolation:    "CallLegalityViolation",
	PlayViolation:            "PlayViolation",
	MalformedAction:          "MalformedAction",
	InternalConsistencyFault: "InternalConsistencyFault",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	ErrInvalidPhase   = errors.New("action not allowed in this phase")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrAlreadyBid     = errors.New("already bid")
	ErrNotPicker      = errors.New("only the picker can do that")
	ErrWrongBuryCount = errors.New("wrong number of cards to bury")
	ErrCardNotInHand  = errors.New("card not in hand")
	ErrMustFollow     = errors.New("must follow the led suit")
	ErrUnknownSeat    = errors.New("unknown seat")
	ErrUnknownBid     = errors.New("bid must be Pick or Pass")
	ErrMissingCall    = errors.New("call must be Solo or a card")
	ErrDealMiscount   = errors.New("deal consumed incorrect number of cards")
	ErrBrokenState    = errors.New("hand state is inconsistent")

	// Partner call reasons, checked in this order.
	ErrNotFailAceOrTen        = errors.New("must call a fail Ace or (if forced) a fail Ten")
	ErrNoFailCardInCalledSuit = errors.New("you must hold at least one fail card in the called suit")
	ErrTenWithoutAllAces      = errors.New("cannot call a Ten unless you hold all fail Aces")
	ErrMustCallTen            = errors.New("picker holds all fail Aces; must call a Ten instead")
	ErrCalledAceHeld          = errors.New("cannot call a fail Ace you hold")
	ErrCalledTenHeld          = errors.New("cannot call a fail Ten you hold")
	ErrCalledBuried           = errors.New("cannot call a card you buried")
)

// Error is returned by every rejected engine operation. Reason wraps one of
// the sentinel errors above, so callers can use errors.Is on the reason or
// switch on Kind.
type Error struct {
	Kind   Kind
	Reason error
}

func (e *Error) Error() string {
	return e.Reason.Error()
}

func (e *Error) Unwrap() error {
	return e.Reason
}

func violation(kind Kind, reason error) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func phaseViolation(want, got Phase) *Error {
	return violation(PhaseViolation, fmt.Errorf("%w: need %s, hand is in %s", ErrInvalidPhase, want, got))
}

// KindOf returns the Kind of an engine error, or 0 if err is not one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
