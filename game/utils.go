package game

import "github.com/minaorangina/sheepshead/deck"

func cloneCards(cards []deck.Card) []deck.Card {
	return append([]deck.Card{}, cards...)
}

// removeCards returns hand without one copy of each card in remove. It
// reports the first card that could not be found, leaving hand untouched.
func removeCards(hand, remove []deck.Card) ([]deck.Card, *deck.Card) {
	rest := cloneCards(hand)
	for i := range remove {
		idx := deck.Index(rest, remove[i])
		if idx < 0 {
			return hand, &remove[i]
		}
		rest = append(rest[:idx], rest[idx+1:]...)
	}
	return rest, nil
}

func holdsFailSuit(hand []deck.Card, s deck.Suit) bool {
	for _, c := range hand {
		if c.Suit == s && IsFail(c) {
			return true
		}
	}
	return false
}

func holdsFail(hand []deck.Card, c deck.Card) bool {
	return IsFail(c) && deck.Contains(hand, c)
}

func holdsAllFail(hand []deck.Card, r deck.Rank) bool {
	for _, s := range deck.FailSuits {
		if !holdsFail(hand, deck.NewCard(r, s)) {
			return false
		}
	}
	return true
}

func sumPoints(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += CardPoints(c)
	}
	return total
}
