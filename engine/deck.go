package engine

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// ---------------------------------------------------------------------------
// Linear congruential generator, reproducible across platforms.
// ---------------------------------------------------------------------------

type lcg struct {
	state uint32
}

func newLCG(seed uint32) lcg { return lcg{state: seed} }

// next returns a value in [0, 32768).
func (r *lcg) next() uint32 {
	r.state = r.state*1103515245 + 12345
	return (r.state / 65536) % 32768
}

// RandomSeed returns a non-zero seed from the operating system's entropy
// source, falling back to the clock if it is unavailable.
func RandomSeed() uint32 {
	var b [4]byte
	for i := 0; i < 8; i++ {
		if _, err := rand.Read(b[:]); err != nil {
			break
		}
		if s := binary.LittleEndian.Uint32(b[:]); s != 0 {
			return s
		}
	}
	return uint32(time.Now().UnixNano()) | 1
}

// CreateDeck returns the 52 standard cards ordered by suit then rank,
// followed by 4 jokers when includeJokers is set.
func CreateDeck(includeJokers bool) []Card {
	size := StandardDeck
	if includeJokers {
		size = UltimateDeck
	}
	deck := make([]Card, 0, size)
	for suit := SuitHearts; suit <= SuitSpades; suit++ {
		for rank := RankTwo; rank <= RankAce; rank++ {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	if includeJokers {
		for i := 0; i < NumJokers; i++ {
			deck = append(deck, Joker)
		}
	}
	return deck
}

// Shuffle permutes cards in place with a Fisher-Yates shuffle driven by an
// LCG seeded with seed. The same seed always yields the same permutation.
func Shuffle(cards []Card, seed uint32) {
	rng := newLCG(seed)
	for i := len(cards) - 1; i > 0; i-- {
		j := int(rng.next() % uint32(i+1))
		cards[i], cards[j] = cards[j], cards[i]
	}
}
