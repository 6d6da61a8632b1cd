package engine

const (
	MaxPlayers   = 8
	MinPlayers   = 2
	MaxHandSize  = 52 // theoretical
	StandardDeck = 52
	UltimateDeck = 56 // with 4 jokers
	NumJokers    = UltimateDeck - StandardDeck
)

// Version is the rules revision this engine implements.
const Version = "1.0.0"

// Rules holds the per-game configuration.
type Rules struct {
	UltimateMode bool   // adds 4 wild jokers
	Seed         uint32 // seeds the opening shuffle and every reshuffle
}

// DefaultRules returns a standard 52-card game with a fresh random seed.
// Set Seed explicitly to replay a game.
func DefaultRules() Rules {
	return Rules{Seed: RandomSeed()}
}

// deckSize returns the number of cards in play for these rules.
func (r Rules) deckSize() int {
	if r.UltimateMode {
		return UltimateDeck
	}
	return StandardDeck
}

// CalculateHandSize returns the starting hand size for playerCount players.
// Keeps a reasonable buffer in the deck after dealing.
func CalculateHandSize(playerCount int) int {
	switch playerCount {
	case 2, 3, 4, 5:
		return 7
	case 6, 7:
		return 6
	case 8:
		return 5
	default:
		return 7
	}
}
