package engine

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Refused plays leave the game untouched
// ---------------------------------------------------------------------------

func TestPlayRejections(t *testing.T) {
	tests := []struct {
		name      string
		hand      []string
		top       string
		play      []string
		nominated uint8
		player    int
		wantErr   error
	}{
		{"mixed ranks", []string{"5H", "7H"}, "5D", []string{"5H", "7H"}, SuitNone, 0, ErrMixedRanks},
		{"mixed special ranks", []string{"2H", "7H"}, "3H", []string{"2H", "7H"}, SuitNone, 0, ErrMixedRanks},
		{"not in hand", []string{"5H"}, "5D", []string{"5C"}, SuitNone, 0, ErrCardNotInHand},
		{"second card not in hand", []string{"5H", "9C"}, "5D", []string{"5H", "5S"}, SuitNone, 0, ErrCardNotInHand},
		{"same card twice", []string{"5H", "9C"}, "5D", []string{"5H", "5H"}, SuitNone, 0, ErrCardNotInHand},
		{"illegal lead", []string{"9S", "9H"}, "5D", []string{"9S", "9H"}, SuitNone, 0, ErrIllegalCard},
		{"empty", []string{"5H"}, "5D", nil, SuitNone, 0, ErrEmptyPlay},
		{"unknown player", []string{"5H"}, "5D", []string{"5H"}, SuitNone, 7, ErrUnknownPlayer},
		{"bad nomination", []string{"AH"}, "5H", []string{"AH"}, 9, 0, ErrInvalidSuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newDealtGame(t, 2, Rules{Seed: 21})
			giveHand(t, g, 0, cards(t, tt.hand...)...)
			setTop(t, g, mustCard(t, tt.top))
			before := snapshot(g)

			err := g.Play(tt.player, cards(t, tt.play...), tt.nominated)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Play err = %v, want %v", err, tt.wantErr)
			}
			if g.PlayCards(tt.player, cards(t, tt.play...), tt.nominated) {
				t.Error("PlayCards reported success")
			}
			assertUnchanged(t, before, g)
		})
	}
}

func TestPlayInvalidCardRejected(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 21})
	before := snapshot(g)
	if err := g.Play(0, []Card{NoCard}, SuitNone); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("err = %v, want ErrInvalidCard", err)
	}
	assertUnchanged(t, before, g)
}

func TestPlayBeforeStart(t *testing.T) {
	g := NewGame(2, DefaultRules())
	g.AddPlayer("a", false)
	g.AddPlayer("b", false)
	if err := g.Play(0, []Card{Joker}, SuitHearts); !errors.Is(err, ErrGameNotPlaying) {
		t.Errorf("err = %v, want ErrGameNotPlaying", err)
	}
}

// ---------------------------------------------------------------------------
// Successful plays
// ---------------------------------------------------------------------------

// TestPlayMovesCards verifies hand order is preserved and the last card of the group becomes the top.
func TestPlayMovesCards(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 21})
	giveHand(t, g, 0, cards(t, "5H", "KC", "5S", "9D", "5C")...)
	setTop(t, g, mustCard(t, "5D"))
	discardLen := len(g.Discard)

	if err := g.Play(0, cards(t, "5S", "5H"), SuitNone); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if want := cards(t, "KC", "9D", "5C"); !sameCards(g.Players[0].Hand, want) {
		t.Errorf("hand = %v, want %v", g.Players[0].Hand, want)
	}
	if len(g.Discard) != discardLen+2 {
		t.Errorf("discard grew by %d, want 2", len(g.Discard)-discardLen)
	}
	if g.TopCard() != mustCard(t, "5H") {
		t.Errorf("top = %s, want 5H", g.TopCard())
	}
	if g.Discard[len(g.Discard)-2] != mustCard(t, "5S") {
		t.Errorf("under top = %s, want 5S", g.Discard[len(g.Discard)-2])
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// TestTwoStackEscalates pins the counter-by-2 behaviour: another 2 adds to the penalty.
func TestTwoStackEscalates(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 22})
	giveHand(t, g, 0, cards(t, "2H", "2S", "9C")...)
	giveHand(t, g, 1, cards(t, "2D", "4C")...)
	setTop(t, g, mustCard(t, "8H"))

	if err := g.Play(0, cards(t, "2H", "2S"), SuitNone); err != nil {
		t.Fatalf("Play 2H 2S: %v", err)
	}
	if g.Pending.Type != EffectTwo || g.Pending.Count != 4 || g.Pending.SourcePlayer != 0 {
		t.Fatalf("Pending = %+v, want two/4 from 0", g.Pending)
	}

	g.NextTurn()
	if g.CanPlayCard(mustCard(t, "4C")) {
		t.Error("4C playable against a pending two")
	}
	if err := g.Play(1, cards(t, "2D"), SuitNone); err != nil {
		t.Fatalf("Play 2D: %v", err)
	}
	if g.Pending.Type != EffectTwo || g.Pending.Count != 6 || g.Pending.SourcePlayer != 1 {
		t.Errorf("Pending = %+v, want two/6 from 1", g.Pending)
	}
}

func TestSevenStack(t *testing.T) {
	g := newDealtGame(t, 3, Rules{Seed: 23})
	giveHand(t, g, 0, cards(t, "7H", "7C", "9C")...)
	setTop(t, g, mustCard(t, "7D"))

	if err := g.Play(0, cards(t, "7H", "7C"), SuitNone); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.Pending.Type != EffectSeven || g.Pending.Count != 2 {
		t.Errorf("Pending = %+v, want seven/2", g.Pending)
	}
}

// TestBlackAndRedJacks verifies black Jacks add 5 each and red Jacks take 5 off, clearing at 0.
func TestBlackAndRedJacks(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 24})
	giveHand(t, g, 0, cards(t, "JS", "JC", "4D")...)
	giveHand(t, g, 1, cards(t, "JH", "JD", "9C")...)
	setTop(t, g, mustCard(t, "3S"))

	if err := g.Play(0, cards(t, "JS", "JC"), SuitNone); err != nil {
		t.Fatalf("Play black jacks: %v", err)
	}
	if g.Pending.Type != EffectJack || g.Pending.Count != 10 {
		t.Fatalf("Pending = %+v, want jack/10", g.Pending)
	}

	g.NextTurn()
	if g.CanPlayCard(mustCard(t, "9C")) {
		t.Error("9C (suit match) playable on a black jack attack")
	}
	if err := g.Play(1, cards(t, "JH"), SuitNone); err != nil {
		t.Fatalf("Play JH: %v", err)
	}
	if g.Pending.Type != EffectJack || g.Pending.Count != 5 {
		t.Fatalf("Pending = %+v, want jack/5 still active", g.Pending)
	}

	if err := g.Play(1, cards(t, "JD"), SuitNone); err != nil {
		t.Fatalf("Play JD: %v", err)
	}
	if g.Pending.Active() || g.Pending.Type != EffectNone {
		t.Errorf("Pending = %+v, want cleared", g.Pending)
	}
}

func TestAttackStackPenalty(t *testing.T) {
	tests := []struct {
		top   string
		stack []string
		want  PendingEffect
	}{
		{"9H", []string{"2H"}, PendingEffect{EffectTwo, 2, 0}},
		{"9H", []string{"2H", "2S", "2D"}, PendingEffect{EffectTwo, 6, 0}},
		{"9S", []string{"JS"}, PendingEffect{EffectJack, 5, 0}},
		{"9S", []string{"JS", "JC"}, PendingEffect{EffectJack, 10, 0}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.stack, " "), func(t *testing.T) {
			g := newDealtGame(t, 2, Rules{Seed: 32})
			stack := cards(t, tt.stack...)
			giveHand(t, g, 0, append(stack, mustCard(t, "4C"))...)
			setTop(t, g, mustCard(t, tt.top))

			if err := g.Play(0, stack, SuitNone); err != nil {
				t.Fatalf("Play %v: %v", tt.stack, err)
			}
			if g.Pending != tt.want {
				t.Errorf("Pending = %+v, want %+v", g.Pending, tt.want)
			}
			sum := 0
			for _, c := range stack {
				sum += c.AttackValue()
			}
			if g.Pending.Count != sum {
				t.Errorf("Count = %d, want the stack's attack value %d", g.Pending.Count, sum)
			}
		})
	}
}

func TestRedJackFloorsAtZero(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 25})
	giveHand(t, g, 0, cards(t, "JS", "4D")...)
	giveHand(t, g, 1, cards(t, "JH", "JD", "9C")...)
	setTop(t, g, mustCard(t, "3S"))

	if err := g.Play(0, cards(t, "JS"), SuitNone); err != nil {
		t.Fatalf("Play JS: %v", err)
	}
	if err := g.Play(1, cards(t, "JH", "JD"), SuitNone); err != nil {
		t.Fatalf("Play JH JD: %v", err)
	}
	if g.Pending.Type != EffectNone || g.Pending.Count != 0 {
		t.Errorf("Pending = %+v, want cleared", g.Pending)
	}
}

// TestRedJackWithoutAttack verifies a red Jack with nothing to counter behaves as an ordinary card.
func TestRedJackWithoutAttack(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 26})
	giveHand(t, g, 0, cards(t, "JH", "4D")...)
	setTop(t, g, mustCard(t, "5H"))
	g.NominatedSuit = SuitHearts

	if err := g.Play(0, cards(t, "JH"), SuitNone); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.Pending.Active() {
		t.Errorf("Pending = %+v, want none", g.Pending)
	}
	if g.NominatedSuit != SuitNone {
		t.Errorf("NominatedSuit = %d, want cleared", g.NominatedSuit)
	}
}

// TestJackAttackDischargedByOtherPlay verifies a play outside the jack category ends a half-countered attack.
func TestJackAttackDischargedByOtherPlay(t *testing.T) {
	g := newDealtGame(t, 3, Rules{Seed: 27})
	giveHand(t, g, 0, cards(t, "JS", "JC", "4D")...)
	giveHand(t, g, 1, cards(t, "JH", "9C")...)
	giveHand(t, g, 2, cards(t, "3H", "KS")...)
	setTop(t, g, mustCard(t, "3S"))

	if err := g.Play(0, cards(t, "JS", "JC"), SuitNone); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := g.Play(1, cards(t, "JH"), SuitNone); err != nil {
		t.Fatalf("Play JH: %v", err)
	}
	if !g.CanPlayCard(mustCard(t, "3H")) {
		t.Fatal("3H should match the red jack on top")
	}
	if err := g.Play(2, cards(t, "3H"), SuitNone); err != nil {
		t.Fatalf("Play 3H: %v", err)
	}
	if g.Pending.Active() {
		t.Errorf("Pending = %+v, want cleared", g.Pending)
	}
}

// TestQueenParity verifies one reversal per Queen.
func TestQueenParity(t *testing.T) {
	g := newDealtGame(t, 4, Rules{Seed: 28})
	giveHand(t, g, 0, cards(t, "QH", "QS", "QD", "4C")...)
	setTop(t, g, mustCard(t, "QC"))

	if err := g.Play(0, cards(t, "QH"), SuitNone); err != nil {
		t.Fatalf("Play QH: %v", err)
	}
	if g.Direction != CounterClockwise {
		t.Fatalf("Direction = %s after one queen", g.Direction)
	}
	if err := g.Play(0, cards(t, "QS", "QD"), SuitNone); err != nil {
		t.Fatalf("Play QS QD: %v", err)
	}
	if g.Direction != CounterClockwise {
		t.Errorf("Direction = %s after an even stack, want unchanged", g.Direction)
	}
}

// TestNominationLifecycle verifies Ace nomination persists through specials and clears on a plain card.
func TestNominationLifecycle(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 29})
	giveHand(t, g, 0, cards(t, "AH", "AD", "QS", "9S", "9H", "KC")...)
	setTop(t, g, mustCard(t, "5H"))

	if err := g.Play(0, cards(t, "AH", "AD"), SuitSpades); err != nil {
		t.Fatalf("Play aces: %v", err)
	}
	if g.NominatedSuit != SuitSpades {
		t.Fatalf("NominatedSuit = %d, want Spades", g.NominatedSuit)
	}
	if g.CanPlayCard(mustCard(t, "9H")) {
		t.Error("9H playable under a Spades nomination")
	}

	if err := g.Play(0, cards(t, "QS"), SuitNone); err != nil {
		t.Fatalf("Play QS: %v", err)
	}
	if g.NominatedSuit != SuitSpades {
		t.Error("a special card cleared the nomination")
	}

	if err := g.Play(0, cards(t, "9S"), SuitNone); err != nil {
		t.Fatalf("Play 9S: %v", err)
	}
	if g.NominatedSuit != SuitNone {
		t.Errorf("NominatedSuit = %d after a plain card, want none", g.NominatedSuit)
	}
	if !g.CanPlayCard(mustCard(t, "9H")) {
		t.Error("9H should match 9S by rank once the nomination is gone")
	}
}

func TestJokerNominates(t *testing.T) {
	g := newDealtGame(t, 2, Rules{UltimateMode: true, Seed: 30})
	giveHand(t, g, 0, Joker, mustCard(t, "4C"))
	setTop(t, g, mustCard(t, "5H"))

	if err := g.Play(0, []Card{Joker}, SuitClubs); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.NominatedSuit != SuitClubs {
		t.Errorf("NominatedSuit = %d, want Clubs", g.NominatedSuit)
	}
}

// TestGoingOut verifies finish positions and that a finished game accepts no more plays.
func TestGoingOut(t *testing.T) {
	g := newDealtGame(t, 3, Rules{Seed: 31})
	giveHand(t, g, 1, cards(t, "8H")...)
	giveHand(t, g, 2, cards(t, "8D")...)
	setTop(t, g, mustCard(t, "8C"))

	if err := g.Play(1, cards(t, "8H"), SuitNone); err != nil {
		t.Fatalf("Play: %v", err)
	}
	p := g.Player(1)
	if !p.IsOut || p.FinishPosition != 1 || g.WinnerCount != 1 {
		t.Fatalf("player 1 out=%v pos=%d winners=%d", p.IsOut, p.FinishPosition, g.WinnerCount)
	}
	if g.State != StatePlaying || g.IsGameOver() {
		t.Fatal("game ended with two players still holding cards")
	}
	if err := g.Play(1, cards(t, "8H"), SuitNone); !errors.Is(err, ErrPlayerOut) {
		t.Errorf("play after going out err = %v, want ErrPlayerOut", err)
	}

	if err := g.Play(2, cards(t, "8D"), SuitNone); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.Player(2).FinishPosition != 2 {
		t.Errorf("player 2 FinishPosition = %d, want 2", g.Player(2).FinishPosition)
	}
	if !g.IsGameOver() || g.State != StateFinished {
		t.Fatalf("IsGameOver=%v State=%s", g.IsGameOver(), g.State)
	}
	if g.Player(0).FinishPosition != 0 {
		t.Error("last player should have no finish position")
	}

	hand := g.Player(0).Hand
	if len(hand) > 0 {
		if err := g.Play(0, hand[:1], SuitHearts); !errors.Is(err, ErrGameNotPlaying) {
			t.Errorf("play after game over err = %v, want ErrGameNotPlaying", err)
		}
	}
	if n := g.DrawCards(0, 1); n != 0 {
		t.Errorf("DrawCards after game over drew %d", n)
	}
}

// ---------------------------------------------------------------------------
// Drawing
// ---------------------------------------------------------------------------

func TestDrawFromDeckEnd(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 40})
	n := len(g.Deck)
	want := []Card{g.Deck[n-1], g.Deck[n-2], g.Deck[n-3]}
	handLen := g.Players[1].HandLen()

	if got := g.DrawCards(1, 3); got != 3 {
		t.Fatalf("DrawCards = %d, want 3", got)
	}
	if !sameCards(g.Players[1].Hand[handLen:], want) {
		t.Errorf("drew %v, want %v", g.Players[1].Hand[handLen:], want)
	}
	if len(g.Deck) != n-3 {
		t.Errorf("deck = %d, want %d", len(g.Deck), n-3)
	}
}

// TestDrawReshuffle verifies an empty deck is refilled from the discard pile under the top card.
func TestDrawReshuffle(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 41})
	top := g.TopCard()
	// Bury the whole deck under the top card.
	g.Discard = append(append([]Card(nil), g.Deck...), top)
	g.Deck = g.Deck[:0]
	buried := len(g.Discard) - 1

	if got := g.DrawCards(0, 3); got != 3 {
		t.Fatalf("DrawCards = %d, want 3", got)
	}
	if len(g.Discard) != 1 || g.TopCard() != top {
		t.Errorf("discard = %v, want only %s", g.Discard, top)
	}
	if len(g.Deck) != buried-3 {
		t.Errorf("deck = %d, want %d", len(g.Deck), buried-3)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

// TestDrawExhausted verifies drawing stops short when neither pile can supply a card.
func TestDrawExhausted(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 42})
	g.Players[1].Hand = append(g.Players[1].Hand, g.Deck...)
	g.Deck = g.Deck[:0]
	handLen := g.Players[0].HandLen()

	if got := g.DrawCards(0, 5); got != 0 {
		t.Errorf("DrawCards = %d, want 0", got)
	}
	if g.Players[0].HandLen() != handLen {
		t.Error("hand changed on an exhausted draw")
	}

	// One buried card: draw stops after it.
	card := g.Players[1].Hand[0]
	g.Players[1].Hand = g.Players[1].Hand[1:]
	g.Discard = append([]Card{card}, g.Discard...)
	if got := g.DrawCards(0, 5); got != 1 {
		t.Errorf("DrawCards = %d, want 1", got)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestDrawRejectsUnknownPlayer(t *testing.T) {
	g := newDealtGame(t, 2, Rules{Seed: 43})
	if got := g.DrawCards(5, 1); got != 0 {
		t.Errorf("DrawCards(5) = %d, want 0", got)
	}
}
