package game

import "fmt"

// Kind discriminates the three action families.
type Kind uint8

const (
	KindCard Kind = iota
	KindBid
	KindDeclaration
)

func (k Kind) String() string {
	switch k {
	case KindCard:
		return "card"
	case KindBid:
		return "bid"
	case KindDeclaration:
		return "declaration"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) bounds() (uint8, uint8, bool) {
	switch k {
	case KindCard:
		return FirstCardCode, LastCardCode, true
	case KindBid:
		return FirstBidCode, LastBidCode, true
	case KindDeclaration:
		return FirstDeclarationCode, LastDeclarationCode, true
	default:
		return 0, 0, false
	}
}

// Action is the kind-agnostic wrapper the search tree keys its children by.
// Value is the raw single-byte code.
type Action struct {
	Kind  Kind
	Value uint8
}

// NewAction checks that value lies in the code block reserved for kind.
func NewAction(kind Kind, value uint8) (Action, error) {
	lo, hi, ok := kind.bounds()
	if !ok {
		return Action{}, fmt.Errorf("unknown action kind %d: %w", uint8(kind), ErrRange)
	}
	if value < lo || value > hi {
		return Action{}, fmt.Errorf("%s code %d not in [%d, %d]: %w", kind, value, lo, hi, ErrRange)
	}
	return Action{Kind: kind, Value: value}, nil
}

// ParseAction decodes a wire code, inferring its kind from the block it falls in.
func ParseAction(code uint8) (Action, error) {
	switch {
	case code <= LastCardCode:
		return Action{Kind: KindCard, Value: code}, nil
	case code <= LastBidCode:
		return Action{Kind: KindBid, Value: code}, nil
	case code <= LastDeclarationCode:
		return Action{Kind: KindDeclaration, Value: code}, nil
	default:
		return Action{}, fmt.Errorf("action code %d: %w", code, ErrRange)
	}
}

// Code is the wire encoding of the action.
func (a Action) Code() uint8 {
	return a.Value
}

func (a Action) narrow(kind Kind) error {
	if a.Kind != kind {
		return fmt.Errorf("narrowing %s action %d to %s: %w", a.Kind, a.Value, kind, ErrKind)
	}
	_, err := NewAction(a.Kind, a.Value)
	return err
}

func (a Action) Card() (Card, error) {
	if err := a.narrow(KindCard); err != nil {
		return 0, err
	}
	return Card(a.Value), nil
}

func (a Action) Bid() (Bid, error) {
	if err := a.narrow(KindBid); err != nil {
		return 0, err
	}
	return Bid(a.Value), nil
}

func (a Action) Declaration() (Declaration, error) {
	if err := a.narrow(KindDeclaration); err != nil {
		return 0, err
	}
	return Declaration(a.Value), nil
}

// Less orders actions by kind, then by raw value.
func (a Action) Less(b Action) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return a.Value < b.Value
}

func (a Action) String() string {
	switch a.Kind {
	case KindCard:
		return Card(a.Value).String()
	case KindBid:
		return Bid(a.Value).String()
	case KindDeclaration:
		return Declaration(a.Value).String()
	default:
		return fmt.Sprintf("action(%d)", a.Value)
	}
}
