package game

const (
	Players       = 4
	DeckSize      = 78
	HandSize      = 18
	ChienSize     = 6
	TricksPerHand = HandSize // a hand is over once every card is played
	TrickSlots    = 19       // capacity of the trick history
	SuitSize      = 14
	TrumpCount    = 22
)

// Action codes share one byte: cards, then bids, then declarations.
const (
	FirstCardCode        uint8 = 0
	LastCardCode         uint8 = FirstCardCode + DeckSize - 1
	FirstBidCode         uint8 = LastCardCode + 1
	LastBidCode          uint8 = FirstBidCode + 4
	FirstDeclarationCode uint8 = LastBidCode + 1
	LastDeclarationCode  uint8 = FirstDeclarationCode + 4
)

const (
	ChelemBonus         = 200.0
	ChelemBonusDeclared = 400.0
	PetitAuBoutBonus    = 10.0
	ContractBase        = 25.0

	RewardScale = 100.0
)
