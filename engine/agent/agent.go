// Package agent picks moves for computer-controlled seats.
//
// It only ever chooses a legal move; it does not plan ahead.
package agent

import engine "github.com/jason-s-yu/rachel/engine"

// Move is a decision for one turn: either a play or a draw.
type Move struct {
	Draw  bool
	Cards []engine.Card
	Suit  uint8 // nomination for Aces and Jokers, SuitNone otherwise
}

// Agent chooses a move for playerID on the game's current state.
type Agent interface {
	Choose(g *engine.Game, playerID int) Move
}

// FirstLegal plays the first legal card in hand order. With Stack set it also
// plays every other card of the same rank. It draws only when nothing is legal.
type FirstLegal struct {
	Stack bool
}

// Choose implements Agent.
func (a FirstLegal) Choose(g *engine.Game, playerID int) Move {
	stacks := g.ValidStacks(playerID)
	if len(stacks) == 0 {
		return Move{Draw: true, Suit: engine.SuitNone}
	}

	cards := stacks[0][:1]
	if a.Stack {
		cards = stacks[0]
	}
	cards = append([]engine.Card(nil), cards...)

	suit := engine.SuitNone
	if r := cards[0].Rank(); r == engine.RankAce || r == engine.RankJoker {
		suit = NominateSuit(g.Player(playerID).Hand, cards)
	}
	return Move{Cards: cards, Suit: suit}
}

// NominateSuit returns the suit held most often in hand once played has left
// it. Ties go to the lower suit; an empty remainder nominates Hearts.
func NominateSuit(hand, played []engine.Card) uint8 {
	var counts [4]int
	skip := make(map[engine.Card]int, len(played))
	for _, c := range played {
		skip[c]++
	}
	for _, c := range hand {
		if skip[c] > 0 {
			skip[c]--
			continue
		}
		if s := c.Suit(); s <= engine.SuitSpades {
			counts[s]++
		}
	}

	best := engine.SuitHearts
	for s := engine.SuitDiamonds; s <= engine.SuitSpades; s++ {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}

// Apply carries out m for playerID: a play goes through Game.Play, a draw
// takes one card. It returns the error from Play, if any.
func Apply(g *engine.Game, playerID int, m Move) error {
	if m.Draw {
		g.DrawCards(playerID, 1)
		return nil
	}
	return g.Play(playerID, m.Cards, m.Suit)
}
