package game

type Phase int

const (
	Bidding Phase = iota
	Chien
	ChelemDeclaration
	PoigneeDeclaration
	Playing
	End
)

func (p Phase) String() string {
	switch p {
	case Bidding:
		return "Bidding"
	case Chien:
		return "Chien"
	case ChelemDeclaration:
		return "ChelemDeclaration"
	case PoigneeDeclaration:
		return "PoigneeDeclaration"
	case Playing:
		return "Playing"
	case End:
		return "End"
	default:
		return "Unknown"
	}
}

// IsDeclaration reports whether p is one of the two declaration phases.
func (p Phase) IsDeclaration() bool {
	return p == ChelemDeclaration || p == PoigneeDeclaration
}
