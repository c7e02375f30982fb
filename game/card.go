package game

import "fmt"

// Card is a card code in [0, 77]. Suited cards come in blocks of 14
// (spades, hearts, clubs, diamonds), trumps follow with the Fool first.
type Card uint8

type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
	Trumps
)

const (
	Fool  Card = 56
	Petit Card = 57
	Monde Card = 77
)

const (
	Jack   = 10
	Knight = 11
	Queen  = 12
	King   = 13
)

var suitNames = [...]string{"Spades", "Hearts", "Clubs", "Diamonds", "Trumps"}

var rankNames = [...]string{"Ace", "2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Knight", "Queen", "King"}

func NewCard(value uint8) (Card, error) {
	if value > LastCardCode {
		return 0, fmt.Errorf("card %d: %w", value, ErrRange)
	}
	return Card(value), nil
}

func (c Card) Action() Action {
	return Action{Kind: KindCard, Value: uint8(c)}
}

func (c Card) Suit() Suit {
	if c >= Fool {
		return Trumps
	}
	return Suit(c / SuitSize)
}

// Rank is 0-13 within a suit (Ace to King) and 0-21 within trumps (Fool to Monde).
func (c Card) Rank() int {
	if c >= Fool {
		return int(c - Fool)
	}
	return int(c % SuitSize)
}

func (c Card) IsTrump() bool {
	return c.Suit() == Trumps
}

func (c Card) IsKing() bool {
	return c < Fool && c.Rank() == King
}

func (c Card) IsBout() bool {
	return c == Fool || c == Petit || c == Monde
}

// Points is the card's value under French Tarot counting; a full deck is worth 91.
func (c Card) Points() float64 {
	if c.IsBout() || c.IsKing() {
		return 4.5
	}
	if c.IsTrump() {
		return 0.5
	}
	switch c.Rank() {
	case Queen:
		return 3.5
	case Knight:
		return 2.5
	case Jack:
		return 1.5
	default:
		return 0.5
	}
}

func (c Card) String() string {
	switch {
	case c > Card(LastCardCode):
		return fmt.Sprintf("card(%d)", uint8(c))
	case c == Fool:
		return "The Fool"
	case c == Petit:
		return "The Petit"
	case c == Monde:
		return "The Monde"
	case c.IsTrump():
		return fmt.Sprintf("Trump %d", c.Rank())
	default:
		return fmt.Sprintf("%s of %s", rankNames[c.Rank()], suitNames[c.Suit()])
	}
}

func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return fmt.Sprintf("suit(%d)", uint8(s))
}
