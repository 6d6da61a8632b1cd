package engine

// Play plays one or more cards of a single rank from the player's hand.
//
// cards[0] must be playable on its own; the rest ride along as a stack. The
// whole group must be in the player's hand. nominated is the suit named when
// the group is Aces or Jokers and is ignored otherwise. On any error the game
// is left untouched.
func (g *Game) Play(playerID int, cards []Card, nominated uint8) error {
	if g.State != StatePlaying {
		return ErrGameNotPlaying
	}
	p := g.Player(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if p.IsOut {
		return ErrPlayerOut
	}
	if len(cards) == 0 {
		return ErrEmptyPlay
	}

	lead := cards[0]
	for _, c := range cards {
		if !c.Valid() {
			return ErrInvalidCard
		}
		if c.Rank() != lead.Rank() {
			return ErrMixedRanks
		}
	}
	if !g.CanPlayCard(lead) {
		return ErrIllegalCard
	}
	if nominates(lead) && nominated != SuitNone && nominated > SuitSpades {
		return ErrInvalidSuit
	}

	remaining, ok := removeCards(p.Hand, cards)
	if !ok {
		return ErrCardNotInHand
	}

	p.Hand = remaining
	g.Discard = append(g.Discard, cards...)
	g.applyPlayEffects(playerID, lead, len(cards), nominated)

	// Going out.
	if len(p.Hand) == 0 {
		p.IsOut = true
		g.WinnerCount++
		p.FinishPosition = g.WinnerCount
	}
	if g.IsGameOver() {
		g.State = StateFinished
	}

	g.assertInvariants()
	return nil
}

// PlayCards is Play reporting only success.
func (g *Game) PlayCards(playerID int, cards []Card, nominated uint8) bool {
	return g.Play(playerID, cards, nominated) == nil
}

// nominates reports whether playing c names a suit.
func nominates(c Card) bool {
	return c.Rank() == RankAce || c.IsJoker()
}

// applyPlayEffects dispatches on the lead card of a rank-homogeneous group of n cards.
func (g *Game) applyPlayEffects(playerID int, lead Card, n int, nominated uint8) {
	// A play that neither stacks onto nor counters the pending effect discharges it.
	if g.Pending.Active() && !continuesEffect(g.Pending.Type, lead) {
		g.Pending.clear()
	}

	switch {
	case lead.Rank() == RankTwo:
		g.accumulate(EffectTwo, lead.AttackValue()*n, playerID)

	case lead.Rank() == RankSeven:
		g.accumulate(EffectSeven, n, playerID)

	case lead.IsBlackJack():
		g.accumulate(EffectJack, lead.AttackValue()*n, playerID)

	case lead.IsRedJack() && g.Pending.Type == EffectJack:
		g.Pending.Count -= 5 * n
		if g.Pending.Count <= 0 {
			g.Pending.clear()
		}

	case lead.Rank() == RankQueen:
		// One reversal per Queen: an even stack leaves direction unchanged.
		for i := 0; i < n; i++ {
			g.Direction ^= 1
		}

	case nominates(lead):
		// One nomination regardless of stack size.
		g.NominatedSuit = nominated

	default:
		g.NominatedSuit = SuitNone
	}
}

// continuesEffect reports whether playing c stacks onto or counters an effect of type t.
func continuesEffect(t EffectType, c Card) bool {
	switch t {
	case EffectTwo:
		return c.Rank() == RankTwo
	case EffectSeven:
		return c.Rank() == RankSeven
	case EffectJack:
		return c.IsJack()
	}
	return false
}

// accumulate adds amount to the pending effect of type t, starting it if needed.
// A counter by the same rank escalates rather than cancels.
func (g *Game) accumulate(t EffectType, amount, source int) {
	if g.Pending.Type != t {
		g.Pending.Type = t
		g.Pending.Count = 0
	}
	g.Pending.Count += amount
	g.Pending.SourcePlayer = source
}

// removeCards returns hand without one copy of each card in played, keeping the
// relative order of what remains. ok is false if any card is missing, in which
// case hand is not modified.
func removeCards(hand, played []Card) (remaining []Card, ok bool) {
	taken := make([]bool, len(hand))
	for _, pc := range played {
		found := false
		for i, hc := range hand {
			if !taken[i] && hc == pc {
				taken[i] = true
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	remaining = make([]Card, 0, len(hand)-len(played))
	for i, hc := range hand {
		if !taken[i] {
			remaining = append(remaining, hc)
		}
	}
	return remaining, true
}

// DrawCards moves up to n cards from the deck into the player's hand and
// returns how many were drawn. An empty deck is refilled from the discard
// pile; if both are exhausted the draw stops short.
func (g *Game) DrawCards(playerID, n int) int {
	if g.State != StatePlaying {
		return 0
	}
	p := g.Player(playerID)
	if p == nil || p.IsOut {
		return 0
	}

	drawn := 0
	for drawn < n {
		if len(g.Deck) == 0 && !g.attemptReshuffle() {
			break
		}
		last := len(g.Deck) - 1
		p.Hand = append(p.Hand, g.Deck[last])
		g.Deck = g.Deck[:last]
		drawn++
	}

	g.assertInvariants()
	return drawn
}

// attemptReshuffle moves every discard except the top card into the deck and
// shuffles it with a fresh seed. Returns false if there was nothing to move.
func (g *Game) attemptReshuffle() bool {
	// Need at least 2 cards in discard (one stays, rest go to the deck).
	if len(g.Discard) <= 1 {
		return false
	}

	top := g.Discard[len(g.Discard)-1]
	g.Deck = append(g.Deck[:0], g.Discard[:len(g.Discard)-1]...)
	g.Discard = append(g.Discard[:0], top)

	Shuffle(g.Deck, g.nextSeed())
	return true
}
