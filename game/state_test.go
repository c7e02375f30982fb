package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeal(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		s := Deal(newRand(seed))

		var union CardSet
		for p := Player(0); p < Players; p++ {
			require.Equal(t, HandSize, s.Hands[p].Len())
			require.True(t, union.Intersect(s.Hands[p]).IsEmpty(), "hands must not overlap")
			union = union.Union(s.Hands[p])
		}
		require.Equal(t, ChienSize, s.ChienSet().Len())
		require.True(t, union.Intersect(s.ChienSet()).IsEmpty())
		require.Equal(t, AllCards, union.Union(s.ChienSet()))

		require.Equal(t, Bidding, s.Phase)
		require.Equal(t, Player(0), s.Current)
		require.Equal(t, NoPlayer, s.Taker)
		require.NoError(t, s.Validate())
	}
}

func TestNewGameState(t *testing.T) {
	deck := AllCards.Cards()
	hands := func() [][]Card {
		out := make([][]Card, Players)
		for p := range out {
			out[p] = append([]Card(nil), deck[ChienSize+p*HandSize:ChienSize+(p+1)*HandSize]...)
		}
		return out
	}

	t.Run("building from a complete deal", func(t *testing.T) {
		s, err := NewGameState(hands(), deck[:ChienSize])
		require.NoError(t, err)
		require.NoError(t, s.Validate())
		require.True(t, s.Hands[0].Has(6))
	})

	t.Run("rejecting wrong sizes", func(t *testing.T) {
		_, err := NewGameState(hands()[:3], deck[:ChienSize])
		require.ErrorIs(t, err, ErrRange)

		_, err = NewGameState(hands(), deck[:5])
		require.ErrorIs(t, err, ErrRange)

		short := hands()
		short[2] = short[2][:17]
		_, err = NewGameState(short, deck[:ChienSize])
		require.ErrorIs(t, err, ErrRange)
	})

	t.Run("rejecting duplicated and unknown cards", func(t *testing.T) {
		dup := hands()
		dup[1][0] = dup[0][0]
		_, err := NewGameState(dup, deck[:ChienSize])
		require.ErrorIs(t, err, ErrRange)

		bad := hands()
		bad[3][5] = 90
		_, err = NewGameState(bad, deck[:ChienSize])
		require.ErrorIs(t, err, ErrRange)
	})
}

func TestClone(t *testing.T) {
	s := dealWithGarde(t, 3, BidGarde)
	playUntil(t, s, newRand(3), func(s *GameState) bool { return s.TricksCounter == 4 })

	c := s.Clone()
	require.Equal(t, *s, *c)

	c.Hands[0] = CardSet{}
	c.Tricks[0].Cards[0] = Monde
	c.Bids[0] = BidGardeContre
	c.Discard[0] = 0
	require.NotEqual(t, s.Hands[0], c.Hands[0], "mutating the clone must not touch the original")
	require.NotEqual(t, s.Bids[0], c.Bids[0])
	require.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	t.Run("detecting a lost card", func(t *testing.T) {
		s := Deal(newRand(4))
		s.Hands[1] = s.Hands[1].Without(s.Hands[1].Cards()[0])
		require.ErrorIs(t, s.Validate(), ErrRange)
	})

	t.Run("detecting a duplicated card", func(t *testing.T) {
		s := Deal(newRand(4))
		s.Hands[1] = s.Hands[1].With(s.Hands[0].Cards()[0])
		require.ErrorIs(t, s.Validate(), ErrRange)
	})

	t.Run("detecting a counter out of bounds", func(t *testing.T) {
		s := Deal(newRand(4))
		s.TrickCounter = Players
		require.ErrorIs(t, s.Validate(), ErrRange)
	})

	t.Run("holding through a whole hand", func(t *testing.T) {
		s := dealWithGarde(t, 5, BidPetit)
		playUntil(t, s, newRand(5), nil)
		require.NoError(t, s.Validate())
	})
}
