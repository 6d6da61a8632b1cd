// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"

	engine "github.com/jason-s-yu/rachel/engine"
)

// ObfPlayerState represents the state of a single player, obfuscated for a specific observer.
type ObfPlayerState struct {
	PlayerID       uuid.UUID `json:"playerId"`
	Name           string    `json:"name"`
	IsAI           bool      `json:"isAi"`
	HandSize       int       `json:"handSize"`
	IsOut          bool      `json:"isOut"`
	FinishPosition int       `json:"finishPosition,omitempty"`
	IsCurrentTurn  bool      `json:"isCurrentTurn"`
	// Hand is populated only for the player requesting the state ('self').
	Hand []EventCard `json:"hand,omitempty"`
	// ValidPlays lists the requester's playable cards while it is their turn.
	ValidPlays []EventCard `json:"validPlays,omitempty"`
}

// ObfGameState represents the overall game state, obfuscated for a specific observer.
type ObfGameState struct {
	GameID          uuid.UUID        `json:"gameId"`
	Started         bool             `json:"started"`
	GameOver        bool             `json:"gameOver"`
	CurrentPlayerID uuid.UUID        `json:"currentPlayerId"`
	TurnCount       int              `json:"turnCount"`
	Direction       string           `json:"direction"`
	DeckSize        int              `json:"deckSize"`
	DiscardSize     int              `json:"discardSize"`
	DiscardTop      *EventCard       `json:"discardTop,omitempty"`
	NominatedSuit   string           `json:"nominatedSuit,omitempty"`
	PendingEffect   string           `json:"pendingEffect,omitempty"`
	PendingCount    int              `json:"pendingCount,omitempty"`
	UltimateMode    bool             `json:"ultimateMode"`
	Players         []ObfPlayerState `json:"players"`
}

// SyncState returns a snapshot of the game as forPlayer may see it: every
// hand size, but only forPlayer's own cards.
func (g *RachelGame) SyncState(forPlayer uuid.UUID) ObfGameState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.obfuscatedState(forPlayer)
}

// SendSyncState sends the player their obfuscated state as a private event.
func (g *RachelGame) SendSyncState(playerID uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	state := g.obfuscatedState(playerID)
	g.fireEventToPlayer(playerID, GameEvent{Type: EventPrivateSyncState, State: &state})
}

// obfuscatedState builds the snapshot for forPlayer.
// Assumes lock is held by caller.
func (g *RachelGame) obfuscatedState(forPlayer uuid.UUID) ObfGameState {
	e := g.Engine
	obf := ObfGameState{
		GameID:       g.ID,
		Started:      g.Started,
		GameOver:     g.GameOver,
		TurnCount:    e.TurnCount,
		Direction:    e.Direction.String(),
		DeckSize:     len(e.Deck),
		DiscardSize:  len(e.Discard),
		UltimateMode: g.Rules.UltimateMode,
	}

	active := g.Started && !g.GameOver
	if active {
		obf.CurrentPlayerID = g.EngineToPlayer[e.Current]
	}
	if top := e.TopCard(); top.Valid() {
		tc := toEventCard(top)
		obf.DiscardTop = &tc
	}
	if e.NominatedSuit != engine.SuitNone {
		obf.NominatedSuit = engine.SuitName(e.NominatedSuit)
	}
	if e.Pending.Active() {
		obf.PendingEffect = e.Pending.Type.String()
		obf.PendingCount = e.Pending.Count
	}

	obf.Players = make([]ObfPlayerState, len(g.Players))
	for i, pl := range g.Players {
		ep := e.Player(i)
		ps := ObfPlayerState{
			PlayerID:       pl.ID,
			Name:           pl.Name,
			IsAI:           pl.IsAI,
			HandSize:       ep.HandLen(),
			IsOut:          ep.IsOut,
			FinishPosition: ep.FinishPosition,
			IsCurrentTurn:  active && e.Current == i,
		}
		if pl.ID == forPlayer {
			ps.Hand = toEventCards(ep.Hand)
			if ps.IsCurrentTurn {
				ps.ValidPlays = toEventCards(e.ValidPlays(i))
			}
		}
		obf.Players[i] = ps
	}
	return obf
}
