package engine

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of a dealt game:
//   - every card is inside the closed domain
//   - deck + discard + hands == DeckSize
//   - no standard card appears twice; exactly NumJokers jokers in ultimate mode
//   - Current is a seat index and finished players hold no cards
//
// A game still waiting for players holds no cards and always validates.
func (g *Game) Validate() error {
	if g.State == StateWaiting {
		return nil
	}
	if g.Current < 0 || g.Current >= len(g.Players) {
		return fmt.Errorf("current player index %d out of range [0,%d)", g.Current, len(g.Players))
	}

	seen := make(map[Card]int, UltimateDeck)
	total := 0
	count := func(where string, cards []Card) error {
		for _, c := range cards {
			if !c.Valid() {
				return fmt.Errorf("%s holds invalid card 0x%02x", where, uint8(c))
			}
			seen[c]++
		}
		total += len(cards)
		return nil
	}

	if err := count("deck", g.Deck); err != nil {
		return err
	}
	if err := count("discard", g.Discard); err != nil {
		return err
	}
	for i := range g.Players {
		p := &g.Players[i]
		if err := count(fmt.Sprintf("player %d", i), p.Hand); err != nil {
			return err
		}
		if p.IsOut && len(p.Hand) != 0 {
			return fmt.Errorf("player %d is out but holds %d cards", i, len(p.Hand))
		}
	}

	if total != g.DeckSize() {
		return fmt.Errorf("card count drift: %d cards in play, want %d", total, g.DeckSize())
	}
	for c, n := range seen {
		if c == Joker {
			if n != NumJokers {
				return fmt.Errorf("found %d jokers, want %d", n, NumJokers)
			}
			continue
		}
		if n != 1 {
			return fmt.Errorf("card %s appears %d times", c, n)
		}
	}
	return nil
}

// assertInvariants panics if Validate fails. A failure here is a bug in the
// engine, never a consequence of caller input.
func (g *Game) assertInvariants() {
	if err := g.Validate(); err != nil {
		panic("engine: invariant violated: " + err.Error())
	}
}

// SelfTest checks the card encoding and deals a throwaway 4-player game,
// returning the first failure.
func SelfTest() error {
	if c := NewCard(SuitHearts, RankAce); uint8(c) != 0x0E {
		return fmt.Errorf("ace of hearts encodes as 0x%02x, want 0x0e", uint8(c))
	}
	if !NewCard(SuitSpades, RankJack).IsBlackJack() {
		return errors.New("jack of spades is not a black jack")
	}
	if !NewCard(SuitHearts, RankJack).IsRedJack() {
		return errors.New("jack of hearts is not a red jack")
	}

	g := NewGame(4, Rules{Seed: 1})
	if g.State != StateWaiting {
		return fmt.Errorf("new game in state %s, want %s", g.State, StateWaiting)
	}
	for i := 0; i < 4; i++ {
		if _, err := g.Register(fmt.Sprintf("P%d", i), false); err != nil {
			return fmt.Errorf("register: %w", err)
		}
	}
	if err := g.Start(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	return g.Validate()
}
