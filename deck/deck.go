package deck

import "unicode/utf16"

// Size is the number of cards in a Sheepshead deck
const Size = 32

// Deck represents a deck of cards
type Deck []Card

// New creates the 32-card deck, suit-major and rank-minor.
// The order is fixed so that Shuffle is reproducible.
func New() Deck {
	cards := make(Deck, 0, Size)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle returns a permutation of d that depends only on d and seed.
// The receiver is not modified.
//
// The seed string is folded to 32 bits with FNV-1a over its UTF-16 code
// units, which drives an xorshift32 generator feeding a Fisher-Yates pass.
// Changing any of these steps changes every recorded deal.
func (d Deck) Shuffle(seed string) Deck {
	next := xorshift32(SeedToUint32(seed))
	shuffled := make(Deck, len(d))
	copy(shuffled, d)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(next() * float64(i+1))
		// next() can return exactly 1.0
		if j > i {
			j = i
		}
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Deal deals n cards from the top of the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	if n < 0 || n > len(*d) {
		return []Card{}
	}
	dealt := make([]Card, n)
	copy(dealt, (*d)[:n])
	*d = (*d)[n:]
	return dealt
}

const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619
)

// SeedToUint32 folds a seed string to 32 bits.
func SeedToUint32(seed string) uint32 {
	h := fnvOffset32
	for _, unit := range utf16.Encode([]rune(seed)) {
		h ^= uint32(unit)
		h *= fnvPrime32
	}
	return h
}

// xorshift32 returns a generator of floats in [0, 1].
func xorshift32(seed uint32) func() float64 {
	x := seed
	return func() float64 {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		return float64(x) / float64(0xFFFFFFFF)
	}
}
