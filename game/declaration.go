package game

import "fmt"

// Declaration is a declaration code in [83, 87].
type Declaration uint8

const (
	DeclareNone Declaration = Declaration(FirstDeclarationCode) + iota
	DeclareChelem
	DeclareSinglePoignee
	DeclareDoublePoignee
	DeclareTriplePoignee
)

var declarationNames = [...]string{"None", "Chelem", "Single Poignee", "Double Poignee", "Triple Poignee"}

var poigneeTiers = [...]struct {
	declaration Declaration
	minTrumps   int
	bonus       float64
}{
	{DeclareSinglePoignee, 10, 20},
	{DeclareDoublePoignee, 13, 30},
	{DeclareTriplePoignee, 15, 40},
}

func NewDeclaration(value uint8) (Declaration, error) {
	if value < FirstDeclarationCode || value > LastDeclarationCode {
		return 0, fmt.Errorf("declaration %d: %w", value, ErrRange)
	}
	return Declaration(value), nil
}

func (d Declaration) Valid() bool {
	return d >= DeclareNone && d <= DeclareTriplePoignee
}

func (d Declaration) Action() Action {
	return Action{Kind: KindDeclaration, Value: uint8(d)}
}

func (d Declaration) IsPoignee() bool {
	return d >= DeclareSinglePoignee && d <= DeclareTriplePoignee
}

// MinTrumps is the trump count a poignée tier requires, 0 for other declarations.
func (d Declaration) MinTrumps() int {
	for _, tier := range poigneeTiers {
		if tier.declaration == d {
			return tier.minTrumps
		}
	}
	return 0
}

// PoigneeBonus is the unsigned bonus of a poignée tier, 0 for other declarations.
func (d Declaration) PoigneeBonus() float64 {
	for _, tier := range poigneeTiers {
		if tier.declaration == d {
			return tier.bonus
		}
	}
	return 0
}

func (d Declaration) String() string {
	if !d.Valid() {
		return fmt.Sprintf("declaration(%d)", uint8(d))
	}
	return declarationNames[d-DeclareNone]
}
