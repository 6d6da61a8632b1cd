package engine

import (
	"fmt"
	"strings"
)

// Suit constants, packed into upper 4 bits of Card.
const (
	SuitHearts   uint8 = 0
	SuitDiamonds uint8 = 1
	SuitClubs    uint8 = 2
	SuitSpades   uint8 = 3
	SuitNone     uint8 = 4 // jokers, and "no nomination"
)

// Rank constants, packed into lower 4 bits of Card.
const (
	RankTwo   uint8 = 2
	RankThree uint8 = 3
	RankFour  uint8 = 4
	RankFive  uint8 = 5
	RankSix   uint8 = 6
	RankSeven uint8 = 7
	RankEight uint8 = 8
	RankNine  uint8 = 9
	RankTen   uint8 = 10
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13
	RankAce   uint8 = 14
	RankJoker uint8 = 15
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// NoCard represents the absence of a card. Rank 0 is outside the domain.
const NoCard Card = 0

// Joker is the single joker value; all four jokers of an ultimate deck are equal.
const Joker Card = Card(SuitNone<<4 | RankJoker)

// NewCard constructs a Card from suit and rank. Jokers always get SuitNone.
func NewCard(suit, rank uint8) Card {
	if rank == RankJoker {
		return Joker
	}
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// Valid reports whether c lies inside the closed card domain.
func (c Card) Valid() bool {
	r, s := c.Rank(), c.Suit()
	switch {
	case r == RankJoker:
		return s == SuitNone
	case r < RankTwo || r > RankAce:
		return false
	default:
		return s <= SuitSpades
	}
}

func (c Card) IsJoker() bool { return c.Rank() == RankJoker }
func (c Card) IsJack() bool  { return c.Rank() == RankJack }

// IsBlackJack reports a Jack of Clubs or Spades.
func (c Card) IsBlackJack() bool {
	return c.IsJack() && (c.Suit() == SuitClubs || c.Suit() == SuitSpades)
}

// IsRedJack reports a Jack of Hearts or Diamonds.
func (c Card) IsRedJack() bool {
	return c.IsJack() && (c.Suit() == SuitHearts || c.Suit() == SuitDiamonds)
}

// IsSpecial returns true for ranks that carry an effect: 2, 7, Jack, Queen, Ace, Joker.
func (c Card) IsSpecial() bool {
	switch c.Rank() {
	case RankTwo, RankSeven, RankJack, RankQueen, RankAce, RankJoker:
		return true
	}
	return false
}

// AttackValue returns how many cards a single copy of c makes the victim draw.
//   - Two → 2
//   - Black Jack → 5
//   - anything else → 0
func (c Card) AttackValue() int {
	switch {
	case c.Rank() == RankTwo:
		return 2
	case c.IsBlackJack():
		return 5
	}
	return 0
}

// Matches returns true if a and b share a suit or a rank. Jokers match anything.
func Matches(a, b Card) bool {
	if a.IsJoker() || b.IsJoker() {
		return true
	}
	return a.Suit() == b.Suit() || a.Rank() == b.Rank()
}

// ---------------------------------------------------------------------------
// Wire form
// ---------------------------------------------------------------------------

// Encode returns the single-byte wire form of c.
func (c Card) Encode() byte { return byte(c) }

// DecodeCard parses the single-byte wire form, rejecting values outside the domain.
func DecodeCard(b byte) (Card, error) {
	c := Card(b)
	if !c.Valid() {
		return NoCard, fmt.Errorf("%w: 0x%02x", ErrInvalidCard, b)
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Text form
// ---------------------------------------------------------------------------

var rankNames = [...]string{
	RankTwo: "2", RankThree: "3", RankFour: "4", RankFive: "5", RankSix: "6",
	RankSeven: "7", RankEight: "8", RankNine: "9", RankTen: "10",
	RankJack: "J", RankQueen: "Q", RankKing: "K", RankAce: "A", RankJoker: "JK",
}

var suitNames = [...]string{
	SuitHearts: "H", SuitDiamonds: "D", SuitClubs: "C", SuitSpades: "S", SuitNone: "",
}

// RankString returns the short name of a rank ("2".."10", "J", "Q", "K", "A", "JK").
func RankString(rank uint8) string {
	if int(rank) < len(rankNames) && rankNames[rank] != "" {
		return rankNames[rank]
	}
	return "?"
}

// SuitString returns the one-letter name of a suit, or "" for SuitNone.
func SuitString(suit uint8) string {
	if int(suit) < len(suitNames) {
		return suitNames[suit]
	}
	return "?"
}

// SuitName returns the full name of a suit.
func SuitName(suit uint8) string {
	switch suit {
	case SuitHearts:
		return "Hearts"
	case SuitDiamonds:
		return "Diamonds"
	case SuitClubs:
		return "Clubs"
	case SuitSpades:
		return "Spades"
	}
	return "None"
}

// String renders "10H", "QS", "JK".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	if c.IsJoker() {
		return "JK"
	}
	return RankString(c.Rank()) + SuitString(c.Suit())
}

// ParseCard is the inverse of Card.String. It is case-insensitive.
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "JK" {
		return Joker, nil
	}
	if len(s) < 2 {
		return NoCard, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	rankPart, suitPart := s[:len(s)-1], s[len(s)-1:]

	suit := SuitNone
	for i := SuitHearts; i <= SuitSpades; i++ {
		if suitNames[i] == suitPart {
			suit = i
		}
	}
	if suit == SuitNone {
		return NoCard, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	for r := RankTwo; r <= RankAce; r++ {
		if rankNames[r] == rankPart {
			return NewCard(suit, r), nil
		}
	}
	return NoCard, fmt.Errorf("%w: %q", ErrInvalidCard, s)
}

// ParseSuit accepts "H", "D", "C", "S" or the full suit name.
func ParseSuit(s string) (uint8, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i := SuitHearts; i <= SuitSpades; i++ {
		if s == suitNames[i] || s == strings.ToUpper(SuitName(i)) {
			return i, nil
		}
	}
	return SuitNone, fmt.Errorf("%w: %q", ErrInvalidSuit, s)
}

// ---------------------------------------------------------------------------
// Pending effect
// ---------------------------------------------------------------------------

// EffectType describes an accumulated effect owed by the upcoming player(s).
type EffectType uint8

const (
	EffectNone  EffectType = iota // 0
	EffectTwo                     // 1: draw count
	EffectSeven                   // 2: skip count
	EffectJack                    // 3: draw count (black jacks)
)

func (t EffectType) String() string {
	switch t {
	case EffectTwo:
		return "two"
	case EffectSeven:
		return "seven"
	case EffectJack:
		return "jack"
	}
	return "none"
}

// PendingEffect holds the effect waiting to be stacked, countered or discharged.
type PendingEffect struct {
	Type         EffectType
	Count        int // cards to draw (two, jack) or turns to skip (seven)
	SourcePlayer int // -1 when none
}

// Active reports whether anything is owed.
func (p PendingEffect) Active() bool { return p.Type != EffectNone && p.Count > 0 }

func (p *PendingEffect) clear() {
	p.Type = EffectNone
	p.Count = 0
	p.SourcePlayer = -1
}
