package engine

// NextTurn moves Current one seat in the direction of play, passing over
// players who have gone out. It gives up after one full lap, which only
// happens when every other player is out. TurnCount advances once per call.
func (g *Game) NextTurn() {
	n := len(g.Players)
	if n == 0 {
		return
	}

	for attempts := 0; attempts < n; attempts++ {
		if g.Direction == Clockwise {
			g.Current = (g.Current + 1) % n
		} else {
			g.Current = (g.Current - 1 + n) % n
		}
		if !g.Players[g.Current].IsOut {
			break
		}
	}

	g.TurnCount++
}

// IsGameOver returns true once at most one player still holds cards.
func (g *Game) IsGameOver() bool {
	return g.ActivePlayers() <= 1
}
