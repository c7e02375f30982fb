package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// finishedHand lays the deck out in order: the first six cards are the
// discard, the rest form 18 tricks all led by seat 0 and won by winner.
func finishedHand(bid Bid, winner Player) *GameState {
	s := &GameState{
		Phase:          End,
		Taker:          0,
		TakerBid:       bid,
		Leader:         winner,
		BidCounter:     Players,
		DiscardCounter: ChienSize,
		TricksCounter:  TricksPerHand,
		FoolPlayer:     NoPlayer,
		FoolTrickIndex: -1,
	}
	deck := AllCards.Cards()
	copy(s.Discard[:], deck[:ChienSize])
	copy(s.Chien[:], deck[:ChienSize])
	for i := 0; i < TricksPerHand; i++ {
		s.Tricks[i].Leader = 0
		copy(s.Tricks[i].Cards[:], deck[ChienSize+i*Players:])
		s.Winners[i] = winner
		for k, c := range s.Tricks[i].Cards {
			if c == Fool {
				s.FoolPlayer = s.Tricks[i].Player(k)
				s.FoolTrickIndex = i
			}
		}
	}
	return s
}

func TestScore(t *testing.T) {
	t.Run("a garde chelem by the taker", func(t *testing.T) {
		s := finishedHand(BidGarde, 0)
		require.Equal(t, Player(2), s.FoolPlayer)
		require.NoError(t, s.Validate())

		b, err := Score(s)
		require.NoError(t, err)
		require.Equal(t, 86.5, b.Points, "everything but the defenders' Fool")
		require.Equal(t, 2, b.Bouts)
		require.Equal(t, 41.0, b.Threshold)
		require.True(t, b.Made)
		require.Equal(t, 141.0, b.Contract)
		require.Equal(t, 0.0, b.PetitAuBout)
		require.Equal(t, ChelemBonus, b.Chelem)
		require.Equal(t, 341.0, b.Total)

		results := Results(s)
		require.Equal(t, 341.0, results[0])
		for p := 1; p < Players; p++ {
			require.InDelta(t, -341.0/3, results[p], 1e-9)
		}
	})

	t.Run("petit au bout and a poignee", func(t *testing.T) {
		s := finishedHand(BidGarde, 0)
		// Swap the Petit into the last trick.
		s.Tricks[11].Cards[1], s.Tricks[17].Cards[0] = s.Tricks[17].Cards[0], s.Tricks[11].Cards[1]
		s.Declarations[1] = DeclareSinglePoignee
		s.DeclaredTrumps[1] = 11

		b, err := Score(s)
		require.NoError(t, err)
		require.Equal(t, 20.0, b.PetitAuBout)
		require.Equal(t, 20.0, b.Poignee)
		require.Equal(t, 141.0+20+20+200, b.Total)
	})

	t.Run("a poignee short of trumps counts against its tier", func(t *testing.T) {
		s := finishedHand(BidGarde, 0)
		s.Declarations[2] = DeclareDoublePoignee
		s.DeclaredTrumps[2] = 11
		b, err := Score(s)
		require.NoError(t, err)
		require.Equal(t, -30.0, b.Poignee)
	})

	t.Run("a failed garde without a trick", func(t *testing.T) {
		s := finishedHand(BidGarde, 1)
		b, err := Score(s)
		require.NoError(t, err)
		require.Equal(t, 3.0, b.Points, "only the discard")
		require.Equal(t, 0, b.Bouts)
		require.Equal(t, 51.0, b.Threshold)
		require.False(t, b.Made)
		require.Equal(t, -146.0, b.Contract)
		require.Equal(t, -ChelemBonus, b.Chelem)
		require.Equal(t, -346.0, b.Total)
	})

	t.Run("garde contre leaves the discard to the defence", func(t *testing.T) {
		s := finishedHand(BidGardeContre, 1)
		b, err := Score(s)
		require.NoError(t, err)
		require.Equal(t, 0.0, b.Points)
		require.Equal(t, -(25.0+51)*6, b.Contract)
	})

	t.Run("thresholds by bouts", func(t *testing.T) {
		require.Equal(t, [...]float64{51, 46, 41, 36}, thresholds)

		// Tricks worth 12+12+9+5 and six of 2 points, plus the 3 point
		// discard: 53 points without a bout.
		s := finishedHand(BidPetit, 1)
		for _, i := range []int{1, 8, 5, 4, 0, 2, 3, 6, 7, 9} {
			s.Winners[i] = 0
		}
		b, err := Score(s)
		require.NoError(t, err)
		require.Equal(t, 53.0, b.Points)
		require.Equal(t, 0, b.Bouts)
		require.Equal(t, 51.0, b.Threshold)
		require.True(t, b.Made)
		require.Equal(t, 27.0, b.Contract)
		require.Equal(t, 27.0, b.Total)
	})

	t.Run("a declared chelem", func(t *testing.T) {
		s := finishedHand(BidPetit, 0)
		s.ChelemDeclared = true
		b, err := Score(s)
		require.NoError(t, err)
		require.Equal(t, ChelemBonusDeclared, b.Chelem)

		s = finishedHand(BidPetit, 0)
		s.ChelemDeclared = true
		s.Winners[4], s.Winners[9] = 1, 2
		b, err = Score(s)
		require.NoError(t, err)
		require.Equal(t, -ChelemBonus, b.Chelem)
	})

	t.Run("the Fool's half point", func(t *testing.T) {
		s := finishedHand(BidPetit, 0)
		s.Winners[0] = 2 // the defence has a trick to pay from
		base, err := Score(s)
		require.NoError(t, err)

		s.FoolPaid = true
		paid, err := Score(s)
		require.NoError(t, err)
		require.Equal(t, base.Points+0.5, paid.Points)
	})

	t.Run("refusing an unfinished hand", func(t *testing.T) {
		_, err := Score(Deal(newRand(1)))
		require.ErrorIs(t, err, ErrPhase)
		require.Equal(t, []float64{0, 0, 0, 0}, Deal(newRand(1)).Rewards())
	})
}

func TestFoolSettlement(t *testing.T) {
	s := finishedHand(BidPetit, 0)
	s.Winners[0] = 1
	s.settleFool()
	require.True(t, s.FoolPaid, "the defence lost the Fool's trick but won another")

	s = finishedHand(BidPetit, 0)
	s.settleFool()
	require.False(t, s.FoolPaid, "the defence has nothing to pay with")

	s = finishedHand(BidPetit, 1)
	s.settleFool()
	require.False(t, s.FoolPaid, "the Fool's own side won its trick")
}
