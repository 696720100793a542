package blackjack

// Options are options for creating a new game of Secret Deck Blackjack
type Options struct {
	NumDecks      int // number of 52-card decks in the shoe. Default: 4
	MaxRounds     int // rounds before the session ends. Default: 6
	SwapsPerRound int // card replacements allowed per round. Default: 3
	StartingChips int // Default: 10000
	TargetBalance int // chip balance that wins the game. Default: 1000000
	BustLimit     int // Default: 21, raised at runtime by rule effects
	Seed          int64
}

// DefaultOptions returns the default options for a game
func DefaultOptions() Options {
	return Options{
		NumDecks:      4,
		MaxRounds:     6,
		SwapsPerRound: 3,
		StartingChips: 10000,
		TargetBalance: 1000000,
		BustLimit:     21,
	}
}
