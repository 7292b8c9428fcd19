package game

// Ruleset holds the options for one hand. Players, BlindSize and BuryCount
// are fixed for this variant; other values make NewHand fail its card count.
type Ruleset struct {
	Players   int `json:"players"`
	BlindSize int `json:"blindSize"`
	BuryCount int `json:"buryCount"`

	// RequirePickerHasSuitToCall is a house rule: the picker must hold a fail
	// card of the called suit.
	RequirePickerHasSuitToCall bool `json:"requirePickerHasSuitToCall"`
}

// DefaultRuleset returns the standard five-handed rules.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Players:   NumSeats,
		BlindSize: 2,
		BuryCount: 2,
	}
}
