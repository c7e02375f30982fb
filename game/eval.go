package game

// Weight orders actions for the greedy Min and Max strategies: cards by
// point value, then by rank, bids and declarations by their code.
func Weight(a Action) float64 {
	if a.Kind != KindCard {
		return float64(a.Value)
	}
	c := Card(a.Value)
	return c.Points()*100 + float64(c.Rank())
}
