package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// requirePublicKept checks that d agrees with s on everything observer knows.
func requirePublicKept(t *testing.T, s, d *GameState, observer Player) {
	t.Helper()
	require.NoError(t, d.Validate())
	require.Equal(t, s.Hands[observer], d.Hands[observer])
	require.Equal(t, s.Phase, d.Phase)
	require.Equal(t, s.Current, d.Current)
	require.Equal(t, s.Taker, d.Taker)
	require.Equal(t, s.Bids, d.Bids)
	require.Equal(t, s.Declarations, d.Declarations)
	require.Equal(t, s.Tricks, d.Tricks)
	require.Equal(t, s.Winners, d.Winners)
	require.Equal(t, s.CurrentTrick, d.CurrentTrick)
	require.Equal(t, s.DiscardCounter, d.DiscardCounter)
	for p := Player(0); p < Players; p++ {
		require.Equal(t, s.Hands[p].Len(), d.Hands[p].Len(), "hand sizes are public")
	}
}

func TestDeterminize(t *testing.T) {
	t.Run("during bidding", func(t *testing.T) {
		s := Deal(newRand(1))
		apply(t, s, BidPetit.Action())
		changed := false
		for seed := uint64(1); seed <= 10; seed++ {
			d, err := Determinize(s, 1, newRand(seed))
			require.NoError(t, err)
			requirePublicKept(t, s, d, 1)
			if d.Hands[0] != s.Hands[0] || d.ChienSet() != s.ChienSet() {
				changed = true
			}
		}
		require.True(t, changed, "hidden cards must be redistributed")
	})

	t.Run("a defender mid-hand", func(t *testing.T) {
		s := dealWithGarde(t, 2, BidGarde)
		playUntil(t, s, newRand(2), func(s *GameState) bool { return s.TricksCounter == 6 && s.TrickCounter == 2 })
		observer := s.Taker.Next()

		for seed := uint64(1); seed <= 10; seed++ {
			d, err := Determinize(s, observer, newRand(seed))
			require.NoError(t, err)
			requirePublicKept(t, s, d, observer)
			require.Equal(t, s.Chien, d.Chien, "the revealed chien is public")

			discard := d.DiscardSet()
			require.Equal(t, ChienSize, discard.Len())
			for _, c := range discard.Cards() {
				require.False(t, c.IsKing() || c.IsBout(), "%s cannot be in the discard", c)
			}
			unplayed := s.ChienSet().Minus(s.PlayedCards())
			for p := Player(0); p < Players; p++ {
				if p != s.Taker {
					require.True(t, d.Hands[p].Intersect(unplayed).IsEmpty(), "chien cards stay with the taker or the discard")
				}
			}
		}
	})

	t.Run("the taker keeps its discard", func(t *testing.T) {
		s := dealWithGarde(t, 3, BidPetit)
		playUntil(t, s, newRand(3), func(s *GameState) bool { return s.TricksCounter == 3 })
		d, err := Determinize(s, s.Taker, newRand(4))
		require.NoError(t, err)
		requirePublicKept(t, s, d, s.Taker)
		require.Equal(t, s.Discard, d.Discard)
	})

	t.Run("hidden chien after a garde sans", func(t *testing.T) {
		s := dealWithGarde(t, 4, BidGardeSans)
		playUntil(t, s, newRand(4), func(s *GameState) bool { return s.TricksCounter == 2 })
		d, err := Determinize(s, s.Taker, newRand(5))
		require.NoError(t, err)
		requirePublicKept(t, s, d, s.Taker)
		require.Equal(t, d.ChienSet(), d.DiscardSet())
	})

	t.Run("hidden chien right after the bidding", func(t *testing.T) {
		s := dealWithGarde(t, 10, BidGardeContre)
		require.Equal(t, ChelemDeclaration, s.Phase)
		for _, observer := range []Player{s.Taker, s.Taker.Next()} {
			changed := false
			for seed := uint64(1); seed <= 10; seed++ {
				d, err := Determinize(s, observer, newRand(seed))
				require.NoError(t, err)
				requirePublicKept(t, s, d, observer)
				require.Equal(t, d.ChienSet(), d.DiscardSet())
				if d.ChienSet() != s.ChienSet() {
					changed = true
				}
			}
			require.True(t, changed, "%s never saw the chien", observer)
		}
	})

	t.Run("a partial discard is replayed for other seats", func(t *testing.T) {
		s := dealWithGarde(t, 5, BidGarde)
		playUntil(t, s, newRand(5), func(s *GameState) bool { return s.DiscardCounter == 3 })
		d, err := Determinize(s, 0, newRand(6))
		require.NoError(t, err)
		requirePublicKept(t, s, d, 0)
		require.Equal(t, s.Chien, d.Chien)
		require.Equal(t, s.Hands[0], d.Hands[0])
	})

	t.Run("players who failed to follow never get the suit back", func(t *testing.T) {
		s := dealWithGarde(t, 6, BidGarde)
		playUntil(t, s, newRand(6), func(s *GameState) bool { return s.TricksCounter == 8 })
		voids := inferVoids(s)
		for seed := uint64(1); seed <= 10; seed++ {
			d, err := Determinize(s, s.Current, newRand(seed))
			require.NoError(t, err)
			for p := Player(0); p < Players; p++ {
				if p != s.Current {
					require.True(t, d.Hands[p].Intersect(voids[p]).IsEmpty(), "%s void in %s", p, voids[p])
				}
			}
		}
	})

	t.Run("the search can play out a determinization", func(t *testing.T) {
		s := dealWithGarde(t, 7, BidGarde)
		playUntil(t, s, newRand(7), func(s *GameState) bool { return s.TricksCounter == 10 })
		state, err := s.Determinize(s.Current, newRand(8))
		require.NoError(t, err)
		d := state.(*GameState)
		playUntil(t, d, newRand(9), nil)
		require.True(t, d.IsTerminal())
	})

	t.Run("rejecting an invalid observer", func(t *testing.T) {
		_, err := Determinize(Deal(newRand(1)), NoPlayer, newRand(1))
		require.ErrorIs(t, err, ErrRange)
	})
}

func TestInferVoids(t *testing.T) {
	s := &GameState{Phase: Playing, Leader: 2, TrickCounter: 3}
	s.CurrentTrick = [Players]Card{18, 2, 20} // Hearts 5, Spades 3, Hearts 7
	voids := inferVoids(s)

	p := Player(3)
	require.True(t, voids[p].Has(27), "no hearts above the 5")
	require.True(t, voids[p].Has(Monde), "and no trump either")
	require.False(t, voids[p].Has(15), "a low heart is still possible")
	require.True(t, voids[0].IsEmpty(), "seat 0 followed suit")
	require.True(t, voids[2].IsEmpty(), "the leader is free")
}
