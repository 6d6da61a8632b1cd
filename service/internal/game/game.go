// internal/game/game.go
package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/rachel/engine"
	"github.com/jason-s-yu/rachel/engine/agent"
)

// Errors returned by the session layer. Engine refusals are wrapped and can be
// matched with errors.Is against the engine's sentinels.
var (
	ErrNotStarted     = errors.New("game has not started")
	ErrAlreadyStarted = errors.New("game has already started")
	ErrGameOver       = errors.New("game is over")
	ErrUnknownPlayer  = errors.New("player is not seated in this game")
	ErrNotYourTurn    = errors.New("it is not your turn")
	ErrMustPlay       = errors.New("you must play if you can")
)

// DefaultTurnLimit bounds a game so that a cycle of draws cannot run forever.
const DefaultTurnLimit = 10000

// OnGameEndFunc is executed once when a game ends. It receives the game ID and
// the player IDs in finishing order, the last holding cards at the end.
type OnGameEndFunc func(gameID uuid.UUID, standings []uuid.UUID)

// Player is a seat in a RachelGame.
type Player struct {
	ID   uuid.UUID
	Name string
	IsAI bool
}

// RachelGame wraps one engine.Game with player identities, turn enforcement,
// automatic AI turns and event broadcasting.
type RachelGame struct {
	ID    uuid.UUID
	Rules engine.Rules

	Players []*Player

	// Engine integration: authoritative game state.
	Engine         *engine.Game
	PlayerToEngine map[uuid.UUID]int // Service player ID -> engine seat.
	EngineToPlayer []uuid.UUID       // Engine seat -> service player ID.

	// Agent picks moves for AI seats.
	Agent agent.Agent

	// TurnLimit ends the game as stalled once the engine's turn count
	// reaches it. Zero means no limit.
	TurnLimit int

	Started  bool
	GameOver bool
	Stalled  bool // ended before only one player held cards

	// emptyTurns counts consecutive turns that neither played nor drew a card.
	emptyTurns  int
	actionIndex int

	Mu sync.Mutex

	// Communication Callbacks
	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	OnGameEnd           OnGameEndFunc

	log *logrus.Entry
}

// NewRachelGame creates a game waiting for players. A zero rules.Seed is
// replaced with a random one; the seed in use is kept in Rules for replay.
func NewRachelGame(rules engine.Rules) *RachelGame {
	if rules.Seed == 0 {
		rules.Seed = engine.RandomSeed()
	}
	id := uuid.New()
	return &RachelGame{
		ID:             id,
		Rules:          rules,
		Engine:         engine.NewGame(engine.MaxPlayers, rules),
		PlayerToEngine: make(map[uuid.UUID]int),
		Agent:          agent.FirstLegal{},
		TurnLimit:      DefaultTurnLimit,
		log:            logrus.WithField("game", id),
	}
}

// AddPlayer seats a new player and returns their ID.
func (g *RachelGame) AddPlayer(name string, isAI bool) (uuid.UUID, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Started {
		return uuid.Nil, ErrAlreadyStarted
	}
	seat, err := g.Engine.Register(name, isAI)
	if err != nil {
		return uuid.Nil, fmt.Errorf("add player %q: %w", name, err)
	}

	p := &Player{ID: uuid.New(), Name: name, IsAI: isAI}
	g.Players = append(g.Players, p)
	g.PlayerToEngine[p.ID] = seat
	g.EngineToPlayer = append(g.EngineToPlayer, p.ID)

	g.log.WithFields(logrus.Fields{"player": p.ID, "seat": seat, "ai": isAI}).Infof("Player %s added.", name)
	g.logAction(p.ID, "player_add", map[string]interface{}{"name": name, "ai": isAI})
	return p.ID, nil
}

// Start deals the cards and runs turns until a human player has to act or
// the game ends.
func (g *RachelGame) Start() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Started {
		return ErrAlreadyStarted
	}
	if err := g.Engine.Start(); err != nil {
		return fmt.Errorf("start game %s: %w", g.ID, err)
	}
	g.Started = true

	g.log.WithFields(logrus.Fields{
		"players":  len(g.Players),
		"hand":     g.Engine.StartingHandSize,
		"ultimate": g.Rules.UltimateMode,
		"seed":     g.Rules.Seed,
	}).Info("Game started.")
	g.logAction(uuid.Nil, string(EventGameStart), nil)

	g.fireEvent(GameEvent{
		Type:  EventGameStart,
		Cards: []EventCard{toEventCard(g.Engine.TopCard())},
		Payload: map[string]interface{}{
			"handSize": g.Engine.StartingHandSize,
			"players":  len(g.Players),
		},
	})
	for _, p := range g.Players {
		g.sendHand(p.ID)
	}

	g.beginTurn()
	return nil
}

// HandlePlay plays cards from playerID's hand. suit is the nomination for
// Aces and Jokers and is ignored otherwise.
func (g *RachelGame) HandlePlay(playerID uuid.UUID, cards []engine.Card, suit uint8) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	seat, err := g.checkTurn(playerID)
	if err != nil {
		return err
	}
	if err := g.play(seat, cards, suit); err != nil {
		return err
	}
	g.beginTurn()
	return nil
}

// HandleDraw takes the draw action for playerID. With a two or jack penalty
// pending the player accepts it and keeps the turn. Otherwise drawing is only
// allowed when nothing in hand can be played; one card is drawn and the turn
// passes.
func (g *RachelGame) HandleDraw(playerID uuid.UUID) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	seat, err := g.checkTurn(playerID)
	if err != nil {
		return err
	}
	if err := g.draw(seat); err != nil {
		return err
	}
	g.beginTurn()
	return nil
}

// checkTurn validates that playerID may act now and returns their seat.
// Assumes lock is held by caller.
func (g *RachelGame) checkTurn(playerID uuid.UUID) (int, error) {
	if !g.Started {
		return -1, ErrNotStarted
	}
	if g.GameOver {
		return -1, ErrGameOver
	}
	seat, ok := g.PlayerToEngine[playerID]
	if !ok {
		return -1, ErrUnknownPlayer
	}
	if seat != g.Engine.Current {
		return -1, ErrNotYourTurn
	}
	return seat, nil
}

// play applies a play for seat and passes the turn.
// Assumes lock is held by caller.
func (g *RachelGame) play(seat int, cards []engine.Card, suit uint8) error {
	pid := g.EngineToPlayer[seat]
	if err := g.Engine.Play(seat, cards, suit); err != nil {
		g.log.WithFields(logrus.Fields{"player": pid, "cards": cards}).Debugf("Play refused: %v", err)
		return fmt.Errorf("play %v: %w", cards, err)
	}
	g.emptyTurns = 0

	ev := GameEvent{
		Type:  EventPlayerPlay,
		User:  g.eventUser(seat),
		Cards: toEventCards(cards),
	}
	if g.Engine.NominatedSuit != engine.SuitNone {
		ev.Suit = engine.SuitName(g.Engine.NominatedSuit)
	}
	if g.Engine.Pending.Active() {
		ev.Payload = map[string]interface{}{
			"effect": g.Engine.Pending.Type.String(),
			"count":  g.Engine.Pending.Count,
		}
	}
	g.fireEvent(ev)
	g.logAction(pid, string(EventPlayerPlay), map[string]interface{}{"cards": cards, "suit": ev.Suit})
	g.sendHand(pid)

	p := g.Engine.Player(seat)
	if p.IsOut {
		g.log.WithFields(logrus.Fields{"player": pid, "position": p.FinishPosition}).Info("Player went out.")
		g.fireEvent(GameEvent{
			Type:    EventPlayerOut,
			User:    g.eventUser(seat),
			Payload: map[string]interface{}{"position": p.FinishPosition},
		})
	}

	if !g.Engine.IsGameOver() {
		g.Engine.NextTurn()
	}
	return nil
}

// draw handles the draw action for seat.
// Assumes lock is held by caller.
func (g *RachelGame) draw(seat int) error {
	pending := g.Engine.Pending
	if pending.Active() && (pending.Type == engine.EffectTwo || pending.Type == engine.EffectJack) {
		g.resolvePending()
		return nil
	}
	if g.Engine.MustPlay(seat) {
		return ErrMustPlay
	}

	pid := g.EngineToPlayer[seat]
	before := g.Engine.Player(seat).HandLen()
	n := g.Engine.DrawCards(seat, 1)
	if n == 0 {
		g.emptyTurns++
	} else {
		g.emptyTurns = 0
	}

	g.fireEvent(GameEvent{Type: EventPlayerDraw, User: g.eventUser(seat), Count: n})
	g.logAction(pid, string(EventPlayerDraw), map[string]interface{}{"count": n})
	g.sendDrawn(seat, before)

	g.Engine.NextTurn()
	return nil
}

// resolvePending discharges the pending effect against the current player
// and reports it.
// Assumes lock is held by caller.
func (g *RachelGame) resolvePending() engine.Resolution {
	seat := g.Engine.Current
	pid := g.EngineToPlayer[seat]
	before := g.Engine.Player(seat).HandLen()

	res := g.Engine.ResolveEffects()
	fields := logrus.Fields{"player": pid, "effect": res.Type.String()}

	switch res.Type {
	case engine.EffectTwo, engine.EffectJack:
		if res.Drawn > 0 {
			g.emptyTurns = 0
		}
		g.log.WithFields(fields).Debugf("Penalty of %d cards taken.", res.Drawn)
		g.fireEvent(GameEvent{
			Type:    EventPenaltyDraw,
			User:    g.eventUser(seat),
			Count:   res.Drawn,
			Payload: map[string]interface{}{"effect": res.Type.String()},
		})
		g.logAction(pid, string(EventPenaltyDraw), map[string]interface{}{"count": res.Drawn})
		g.sendDrawn(seat, before)

	case engine.EffectSeven:
		g.log.WithFields(fields).Debugf("%d turns skipped.", res.Skipped)
		g.fireEvent(GameEvent{Type: EventTurnsSkipped, User: g.eventUser(seat), Count: res.Skipped})
		g.logAction(pid, string(EventTurnsSkipped), map[string]interface{}{"count": res.Skipped})
	}
	return res
}

// beginTurn starts the current player's turn. Pending effects the player
// cannot answer are discharged first. AI seats are played out here, so on
// return either a human player is to act or the game is over.
// Assumes lock is held by caller.
func (g *RachelGame) beginTurn() {
	for !g.GameOver {
		if g.Engine.State != engine.StatePlaying {
			g.endGame()
			return
		}
		if g.emptyTurns >= g.Engine.ActivePlayers() {
			g.Stalled = true
			g.log.Warn("No player can play or draw; ending game.")
			g.endGame()
			return
		}
		if g.TurnLimit > 0 && g.Engine.TurnCount >= g.TurnLimit {
			g.Stalled = true
			g.log.Warnf("Turn limit %d reached; ending game.", g.TurnLimit)
			g.endGame()
			return
		}

		seat := g.Engine.Current
		if g.Engine.Pending.Active() && !g.Engine.MustPlay(seat) {
			if res := g.resolvePending(); res.Type == engine.EffectSeven {
				continue
			}
		}

		g.fireEvent(g.turnEvent(seat))

		p := g.Players[seat]
		if !p.IsAI {
			return
		}
		g.runAI(seat)
	}
}

// runAI makes one move for an AI seat.
// Assumes lock is held by caller.
func (g *RachelGame) runAI(seat int) {
	m := g.Agent.Choose(g.Engine, seat)
	if !m.Draw {
		err := g.play(seat, m.Cards, m.Suit)
		if err == nil {
			return
		}
		g.log.WithField("player", g.EngineToPlayer[seat]).Errorf("AI move rejected, drawing instead: %v", err)
	}
	if err := g.draw(seat); err != nil {
		// Holding a legal card the agent did not pick; play the first one.
		plays := g.Engine.ValidPlays(seat)
		if perr := g.play(seat, plays[:1], agent.NominateSuit(g.Engine.Player(seat).Hand, plays[:1])); perr != nil {
			g.log.WithField("player", g.EngineToPlayer[seat]).Errorf("AI could not move: %v", perr)
			g.Engine.NextTurn()
		}
	}
}

// turnEvent builds the player_turn notification for seat.
func (g *RachelGame) turnEvent(seat int) GameEvent {
	payload := map[string]interface{}{
		"turn":      g.Engine.TurnCount,
		"direction": g.Engine.Direction.String(),
		"top":       g.Engine.TopCard().String(),
	}
	if g.Engine.Pending.Active() {
		payload["effect"] = g.Engine.Pending.Type.String()
		payload["count"] = g.Engine.Pending.Count
	}
	ev := GameEvent{Type: EventPlayerTurn, User: g.eventUser(seat), Payload: payload}
	if g.Engine.NominatedSuit != engine.SuitNone {
		ev.Suit = engine.SuitName(g.Engine.NominatedSuit)
	}
	return ev
}

// endGame broadcasts the final standings and triggers OnGameEnd.
// OnGameEnd runs with the lock held and must not call back into the game.
// Assumes lock is held by caller.
func (g *RachelGame) endGame() {
	if g.GameOver {
		return
	}
	g.GameOver = true

	standings := g.standings()
	names := make([]string, len(standings))
	ids := make([]string, len(standings))
	for i, id := range standings {
		names[i] = g.Players[g.PlayerToEngine[id]].Name
		ids[i] = id.String()
	}

	g.log.WithFields(logrus.Fields{
		"turns":   g.Engine.TurnCount,
		"stalled": g.Stalled,
	}).Infof("Game ended. Standings: %v", names)
	g.logAction(uuid.Nil, string(EventGameEnd), map[string]interface{}{"standings": ids, "stalled": g.Stalled})

	g.fireEvent(GameEvent{
		Type: EventGameEnd,
		Payload: map[string]interface{}{
			"standings": ids,
			"names":     names,
			"turns":     g.Engine.TurnCount,
			"stalled":   g.Stalled,
		},
	})

	if g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, standings)
	}
}

// Standings returns player IDs in finishing order, the players still holding
// cards last.
func (g *RachelGame) Standings() []uuid.UUID {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.standings()
}

func (g *RachelGame) standings() []uuid.UUID {
	seats := g.Engine.Standings()
	out := make([]uuid.UUID, len(seats))
	for i, s := range seats {
		out[i] = g.EngineToPlayer[s]
	}
	return out
}

// CurrentPlayerID returns the player to act, or uuid.Nil when nobody is.
func (g *RachelGame) CurrentPlayerID() uuid.UUID {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if !g.Started || g.GameOver {
		return uuid.Nil
	}
	return g.EngineToPlayer[g.Engine.Current]
}

// Hand returns a copy of the player's hand.
func (g *RachelGame) Hand(playerID uuid.UUID) ([]engine.Card, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	seat, ok := g.PlayerToEngine[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	return append([]engine.Card(nil), g.Engine.Player(seat).Hand...), nil
}

// eventUser identifies the player at seat.
func (g *RachelGame) eventUser(seat int) *EventUser {
	p := g.Players[seat]
	return &EventUser{ID: p.ID, Name: p.Name}
}

// sendHand sends the player their full hand.
// Assumes lock is held by caller.
func (g *RachelGame) sendHand(playerID uuid.UUID) {
	seat := g.PlayerToEngine[playerID]
	g.fireEventToPlayer(playerID, GameEvent{
		Type:  EventPrivateHand,
		Cards: toEventCards(g.Engine.Player(seat).Hand),
	})
}

// sendDrawn sends the player the cards appended to their hand past index from.
// Assumes lock is held by caller.
func (g *RachelGame) sendDrawn(seat, from int) {
	hand := g.Engine.Player(seat).Hand
	if from >= len(hand) {
		return
	}
	g.fireEventToPlayer(g.EngineToPlayer[seat], GameEvent{
		Type:  EventPrivateDraw,
		Cards: toEventCards(hand[from:]),
		Count: len(hand) - from,
	})
}

// fireEvent broadcasts an event to all players via the BroadcastFn callback.
// Assumes lock is held by caller.
func (g *RachelGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// fireEventToPlayer sends an event to a single human player. AI seats have no
// listener and are skipped.
// Assumes lock is held by caller.
func (g *RachelGame) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if g.BroadcastToPlayerFn == nil {
		return
	}
	seat, ok := g.PlayerToEngine[playerID]
	if !ok || g.Players[seat].IsAI {
		return
	}
	g.BroadcastToPlayerFn(playerID, ev)
}

// logAction records a numbered action at debug level.
// Assumes lock is held by caller.
func (g *RachelGame) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	entry := g.log.WithFields(logrus.Fields{
		"action": g.actionIndex,
		"type":   actionType,
	})
	if actorID != uuid.Nil {
		entry = entry.WithField("player", actorID)
	}
	if len(payload) > 0 {
		entry = entry.WithFields(payload)
	}
	entry.Debug("action")
}
