package engine

// CanPlayOn is the legality predicate as a pure function of the top card, the
// nominated suit, the pending effect and the candidate card.
//
// With an effect pending, only a card that stacks onto or counters it is legal:
//   - two   → any 2
//   - seven → any 7
//   - jack  → any Jack, but only while the top card is a black Jack
//
// Otherwise a Joker is always legal; a nomination admits only its suit; with no
// nomination the card must match the top card by suit or rank.
func CanPlayOn(top Card, nominated uint8, pending PendingEffect, card Card) bool {
	if !card.Valid() || !top.Valid() {
		return false
	}

	if pending.Active() {
		switch pending.Type {
		case EffectTwo:
			return card.Rank() == RankTwo
		case EffectSeven:
			return card.Rank() == RankSeven
		case EffectJack:
			if top.IsBlackJack() {
				return card.IsJack()
			}
		}
	}

	if card.IsJoker() {
		return true
	}
	if nominated != SuitNone {
		return card.Suit() == nominated
	}
	return Matches(card, top)
}

// CanPlayCard reports whether card may be played on the current discard.
func (g *Game) CanPlayCard(card Card) bool {
	if g.State != StatePlaying || len(g.Discard) == 0 {
		return false
	}
	return CanPlayOn(g.TopCard(), g.NominatedSuit, g.Pending, card)
}

// MustPlay returns true if the player holds at least one playable card.
// A player who can play may not draw instead.
func (g *Game) MustPlay(playerID int) bool {
	p := g.Player(playerID)
	if p == nil {
		return false
	}
	for _, c := range p.Hand {
		if g.CanPlayCard(c) {
			return true
		}
	}
	return false
}

// ValidPlays returns every playable card in the player's hand, in hand order.
// Equal cards are listed once per copy.
func (g *Game) ValidPlays(playerID int) []Card {
	p := g.Player(playerID)
	if p == nil {
		return nil
	}
	var out []Card
	for _, c := range p.Hand {
		if g.CanPlayCard(c) {
			out = append(out, c)
		}
	}
	return out
}

// GetValidPlays returns the cards in playerID's hand that may lead a play.
// It is nil when it is not playerID's turn.
func (g *Game) GetValidPlays(playerID int) []Card {
	if playerID != g.Current {
		return nil
	}
	return g.ValidPlays(playerID)
}

// ValidStacks returns, for every playable card in hand order, the largest
// stack it can lead: the card itself followed by every other card of the
// same rank in hand order.
func (g *Game) ValidStacks(playerID int) [][]Card {
	p := g.Player(playerID)
	if p == nil {
		return nil
	}
	var out [][]Card
	for i, lead := range p.Hand {
		if !g.CanPlayCard(lead) {
			continue
		}
		stack := []Card{lead}
		for j, c := range p.Hand {
			if j != i && c.Rank() == lead.Rank() {
				stack = append(stack, c)
			}
		}
		out = append(out, stack)
	}
	return out
}
