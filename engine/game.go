// Package engine implements the rules of Rachel, a shedding card game in the
// Crazy Eights family.
//
// A Game owns every card for its lifetime. Players' hands, the deck and the
// discard pile are disjoint slices over that inventory, and the total is
// conserved across every operation. The engine is single-threaded: a driver
// owns the Game and serializes all calls into it.
package engine

import "fmt"

// GamePhase is the lifecycle stage of a game.
type GamePhase uint8

const (
	StateWaiting  GamePhase = iota // registering players
	StatePlaying                   // cards are being played
	StateFinished                  // at most one player still holds cards
)

func (s GamePhase) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	}
	return fmt.Sprintf("GamePhase(%d)", uint8(s))
}

// Direction is the order in which turns pass.
type Direction uint8

const (
	Clockwise        Direction = 0
	CounterClockwise Direction = 1
)

func (d Direction) String() string {
	if d == CounterClockwise {
		return "counter-clockwise"
	}
	return "clockwise"
}

// Player holds one participant's hand and standing.
type Player struct {
	ID             int
	Name           string
	Hand           []Card
	IsOut          bool
	IsAI           bool
	FinishPosition int // 0 while still playing
}

// HandLen returns the number of cards in the player's hand.
func (p *Player) HandLen() int { return len(p.Hand) }

// Game holds the complete state of a Rachel game.
//
// Fields are exported so front-ends can render them; mutate only through methods.
type Game struct {
	Players []Player
	Deck    []Card // draw from the end
	Discard []Card // top card is the last element

	Current       int
	Direction     Direction
	NominatedSuit uint8 // SuitNone when no nomination is in force
	Pending       PendingEffect

	TurnCount   int
	WinnerCount int
	State       GamePhase

	StartingHandSize int
	Rules            Rules

	rng lcg
}

// NewGame initializes a game in the waiting state. playerCount sizes the
// starting hand until Start recomputes it from the registered players.
func NewGame(playerCount int, rules Rules) *Game {
	g := &Game{
		Players:          make([]Player, 0, MaxPlayers),
		NominatedSuit:    SuitNone,
		State:            StateWaiting,
		StartingHandSize: CalculateHandSize(playerCount),
		Rules:            rules,
		rng:              newLCG(rules.Seed),
	}
	g.Pending.clear()
	return g
}

// Register adds a player while the game is waiting and returns its id.
func (g *Game) Register(name string, isAI bool) (int, error) {
	if g.State != StateWaiting {
		return -1, ErrRegistrationClosed
	}
	if len(g.Players) >= MaxPlayers {
		return -1, ErrTooManyPlayers
	}
	id := len(g.Players)
	g.Players = append(g.Players, Player{ID: id, Name: name, IsAI: isAI})
	return id, nil
}

// AddPlayer is Register reporting only success.
func (g *Game) AddPlayer(name string, isAI bool) bool {
	_, err := g.Register(name, isAI)
	return err == nil
}

// Start builds and shuffles the deck, deals, and flips the first discard.
// The flipped card triggers no effect.
func (g *Game) Start() error {
	if g.State != StateWaiting {
		return ErrRegistrationClosed
	}
	if len(g.Players) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	g.StartingHandSize = CalculateHandSize(len(g.Players))

	deck := CreateDeck(g.Rules.UltimateMode)
	Shuffle(deck, g.Rules.Seed)

	for i := range g.Players {
		g.Players[i].Hand = make([]Card, 0, g.StartingHandSize)
	}
	// Deal one card at a time round the table, from the end of the deck.
	for c := 0; c < g.StartingHandSize; c++ {
		for p := range g.Players {
			n := len(deck) - 1
			g.Players[p].Hand = append(g.Players[p].Hand, deck[n])
			deck = deck[:n]
		}
	}

	n := len(deck) - 1
	g.Discard = append(make([]Card, 0, len(deck)+1), deck[n])
	g.Deck = deck[:n]

	g.State = StatePlaying
	g.Current = 0
	g.Direction = Clockwise
	g.NominatedSuit = SuitNone
	g.Pending.clear()
	g.TurnCount = 0
	g.WinnerCount = 0

	g.assertInvariants()
	return nil
}

// StartGame is Start reporting only success.
func (g *Game) StartGame() bool { return g.Start() == nil }

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// PlayerCount returns the number of registered players.
func (g *Game) PlayerCount() int { return len(g.Players) }

// DeckSize returns the number of cards the game conserves: 52 or 56.
func (g *Game) DeckSize() int { return g.Rules.deckSize() }

// TopCard returns the top card of the discard pile, or NoCard if empty.
func (g *Game) TopCard() Card {
	if len(g.Discard) == 0 {
		return NoCard
	}
	return g.Discard[len(g.Discard)-1]
}

// CurrentPlayer returns the player whose turn it is, or nil before the deal.
func (g *Game) CurrentPlayer() *Player {
	if g.Current < 0 || g.Current >= len(g.Players) {
		return nil
	}
	return &g.Players[g.Current]
}

// Player returns the player with the given id, or nil.
func (g *Game) Player(id int) *Player {
	if id < 0 || id >= len(g.Players) {
		return nil
	}
	return &g.Players[id]
}

// ActivePlayers returns how many players still hold cards.
func (g *Game) ActivePlayers() int {
	n := 0
	for i := range g.Players {
		if !g.Players[i].IsOut {
			n++
		}
	}
	return n
}

// Standings returns player ids in finishing order, followed by the players
// still holding cards in seat order.
func (g *Game) Standings() []int {
	out := make([]int, 0, len(g.Players))
	for pos := 1; pos <= g.WinnerCount; pos++ {
		for i := range g.Players {
			if g.Players[i].FinishPosition == pos {
				out = append(out, i)
			}
		}
	}
	for i := range g.Players {
		if !g.Players[i].IsOut {
			out = append(out, i)
		}
	}
	return out
}

// nextSeed draws a fresh shuffle seed from the game's stream.
func (g *Game) nextSeed() uint32 {
	return g.rng.next()<<15 | g.rng.next()
}
