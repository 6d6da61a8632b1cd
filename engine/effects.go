package engine

// Resolution reports what ResolveEffects discharged.
type Resolution struct {
	Type    EffectType
	Player  int // the player who drew, or the player whose turn the skips started from
	Drawn   int
	Skipped int
}

// ResolveEffects discharges the pending effect against the current player once
// their decision for the turn is final.
//
//   - two, jack → the current player draws Count cards
//   - seven     → the turn advances Count times, one skip per advance
//
// The effect is cleared afterwards. Nothing happens when no effect is pending.
func (g *Game) ResolveEffects() Resolution {
	if g.State != StatePlaying || !g.Pending.Active() {
		return Resolution{Type: EffectNone, Player: g.Current}
	}

	res := Resolution{Type: g.Pending.Type, Player: g.Current}

	switch g.Pending.Type {
	case EffectTwo, EffectJack:
		res.Drawn = g.DrawCards(g.Current, g.Pending.Count)
	case EffectSeven:
		for i := 0; i < g.Pending.Count; i++ {
			g.NextTurn()
			res.Skipped++
		}
	}

	g.Pending.clear()
	return res
}

// ProcessEffects is ResolveEffects without the report.
func (g *Game) ProcessEffects() { g.ResolveEffects() }
