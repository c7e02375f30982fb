package game

import "fmt"

// Bid is a bid code in [78, 82], ranked from Pass to Garde Contre.
type Bid uint8

const (
	BidPass Bid = Bid(FirstBidCode) + iota
	BidPetit
	BidGarde
	BidGardeSans
	BidGardeContre
)

var bidNames = [...]string{"Passe", "Petit", "Garde", "Garde Sans", "Garde Contre"}

var bidMultipliers = [...]int{0, 1, 2, 4, 6}

func NewBid(value uint8) (Bid, error) {
	if value < FirstBidCode || value > LastBidCode {
		return 0, fmt.Errorf("bid %d: %w", value, ErrRange)
	}
	return Bid(value), nil
}

func (b Bid) Valid() bool {
	return b >= BidPass && b <= BidGardeContre
}

func (b Bid) Action() Action {
	return Action{Kind: KindBid, Value: uint8(b)}
}

// Rank is 0 for a pass up to 4 for Garde Contre.
func (b Bid) Rank() int {
	return int(b - BidPass)
}

// Multiplier scales the contract score; a pass has none.
func (b Bid) Multiplier() int {
	if !b.Valid() {
		return 0
	}
	return bidMultipliers[b.Rank()]
}

// RevealsChien tells whether the chien is shown and taken by the taker.
func (b Bid) RevealsChien() bool {
	return b == BidPetit || b == BidGarde
}

func (b Bid) String() string {
	if !b.Valid() {
		return fmt.Sprintf("bid(%d)", uint8(b))
	}
	return bidNames[b.Rank()]
}
