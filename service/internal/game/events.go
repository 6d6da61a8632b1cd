// internal/game/events.go
package game

import (
	"github.com/google/uuid"

	engine "github.com/jason-s-yu/rachel/engine"
)

// GameEventType represents the type of a game-related event.
type GameEventType string

// Public events go to every player through BroadcastFn; private events go to
// a single human player through BroadcastToPlayerFn.
const (
	EventGameStart    GameEventType = "game_start"    // Public: cards dealt, first card flipped.
	EventPlayerTurn   GameEventType = "player_turn"   // Public: the named player is to act.
	EventPlayerPlay   GameEventType = "player_play"   // Public: cards played, with any nomination.
	EventPlayerDraw   GameEventType = "player_draw"   // Public: a voluntary draw (count only).
	EventPenaltyDraw  GameEventType = "penalty_draw"  // Public: a two or jack penalty was taken.
	EventTurnsSkipped GameEventType = "turns_skipped" // Public: a seven effect skipped turns.
	EventPlayerOut    GameEventType = "player_out"    // Public: a player emptied their hand.
	EventGameEnd      GameEventType = "game_end"      // Public: final standings.

	EventPrivateHand      GameEventType = "private_hand"       // Private: the player's full hand.
	EventPrivateDraw      GameEventType = "private_draw"       // Private: the cards just drawn.
	EventPrivateSyncState GameEventType = "private_sync_state" // Private: full obfuscated state.
)

// EventUser identifies a player within a GameEvent payload.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// EventCard describes a face-up card.
type EventCard struct {
	Code string `json:"code"` // short form, e.g. "10H" or "JK"
	Rank string `json:"rank"`
	Suit string `json:"suit,omitempty"` // empty for jokers
}

// GameEvent is the structure broadcast for every state change.
type GameEvent struct {
	Type  GameEventType `json:"type"`
	User  *EventUser    `json:"user,omitempty"`  // The player acting or affected.
	Cards []EventCard   `json:"cards,omitempty"` // Cards played, drawn or held.
	Suit  string        `json:"suit,omitempty"`  // Nominated suit, if any.
	Count int           `json:"count,omitempty"` // Cards drawn or turns skipped.

	Payload map[string]interface{} `json:"payload,omitempty"`

	State *ObfGameState `json:"state,omitempty"` // Full obfuscated state for sync events.
}

// toEventCard converts an engine card for the wire.
func toEventCard(c engine.Card) EventCard {
	ec := EventCard{Code: c.String(), Rank: engine.RankString(c.Rank())}
	if !c.IsJoker() {
		ec.Suit = engine.SuitName(c.Suit())
	}
	return ec
}

func toEventCards(cs []engine.Card) []EventCard {
	out := make([]EventCard, len(cs))
	for i, c := range cs {
		out[i] = toEventCard(c)
	}
	return out
}
