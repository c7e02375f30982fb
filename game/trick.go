package game

import "fmt"

// leadSuit is the suit of the first card that is not the Fool.
func leadSuit(trick []Card) (Suit, bool) {
	for _, c := range trick {
		if c != Fool {
			return c.Suit(), true
		}
	}
	return 0, false
}

// beats reports whether c takes the trick from best under the given lead.
func beats(c, best Card, lead Suit) bool {
	switch {
	case c == Fool:
		return false
	case best == Fool:
		return c.IsTrump() || c.Suit() == lead
	case c.IsTrump() && !best.IsTrump():
		return true
	case c.IsTrump():
		return c.Rank() > best.Rank()
	case best.IsTrump():
		return false
	default:
		return c.Suit() == lead && c.Rank() > best.Rank()
	}
}

// TrickWinner returns the position within trick of the winning card. A trump
// beats any other card, otherwise the highest card of the lead suit wins.
// Off-suit cards and the Fool never win, unless the Fool is alone.
func TrickWinner(trick []Card) (int, error) {
	if len(trick) == 0 || len(trick) > Players {
		return 0, fmt.Errorf("trick of %d cards: %w", len(trick), ErrRange)
	}
	lead, ok := leadSuit(trick)
	if !ok {
		return 0, nil
	}
	best := 0
	for k, c := range trick {
		if c > Card(LastCardCode) {
			return 0, fmt.Errorf("card %d in trick: %w", uint8(c), ErrRange)
		}
		if beats(c, trick[best], lead) {
			best = k
		}
	}
	return best, nil
}
