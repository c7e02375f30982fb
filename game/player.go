package game

import "fmt"

// Player is a seat index in [0, Players).
type Player int8

// NoPlayer marks an unset seat, e.g. the taker before bidding completes.
const NoPlayer Player = -1

func (p Player) Valid() bool {
	return p >= 0 && p < Players
}

func (p Player) Next() Player {
	return (p + 1) % Players
}

// Offset is the seat reached after moving n places from p.
func (p Player) Offset(n int) Player {
	return Player((int(p) + n) % Players)
}

func (p Player) String() string {
	if !p.Valid() {
		return "nobody"
	}
	return fmt.Sprintf("player%d", int(p))
}
