package deck

import (
	"fmt"

	"secretdeck-server/internal/rng"
)

// cardsPerDeck is the size of a single standard deck
const cardsPerDeck = 52

// Shoe is a multi-deck draw pool. Cards live in one of two piles: remaining
// (undrawn) and discarded (drawn or otherwise removed from play). The two
// piles always add up to the full card universe of numDecks decks.
//
// Exactly one deck's worth of cards is flagged secret; secret cards are what
// the hold-type secret rules key off of.
type Shoe struct {
	numDecks  int
	remaining []*Card
	discarded []*Card
	previewed []*Card
	rng       rng.Generator
}

// NewShoe returns a shoe built from numDecks decks. The generator is the only
// source of randomness; pass rng.NewSeeded(seed) for deterministic draws.
func NewShoe(numDecks int, gen rng.Generator) *Shoe {
	if numDecks < 1 {
		panic(fmt.Sprintf("shoe requires at least one deck, got %d", numDecks))
	}

	if gen == nil {
		gen = rng.Crypto{}
	}

	s := &Shoe{
		numDecks: numDecks,
		rng:      gen,
	}

	s.buildUniverse()
	return s
}

func (s *Shoe) buildUniverse() {
	cards := make([]*Card, 0, s.numDecks*cardsPerDeck)
	for d := 0; d < s.numDecks; d++ {
		secret := d == s.numDecks-1
		for _, suit := range []Suit{Clubs, Diamonds, Hearts, Spades} {
			for rank := 2; rank <= Ace; rank++ {
				cards = append(cards, &Card{
					Rank:   rank,
					Suit:   suit,
					Secret: secret,
				})
			}
		}
	}

	s.remaining = cards
	s.discarded = make([]*Card, 0, s.numDecks*cardsPerDeck)
}

// Draw removes and returns a uniformly random card from the remaining pile
// and moves it to the discard pile. If a preview is pending, the previewed
// cards are returned first, in order. An empty remaining pile triggers an
// implicit reshuffle.
func (s *Shoe) Draw() *Card {
	if len(s.previewed) > 0 {
		card := s.previewed[0]
		s.previewed = s.previewed[1:]
		s.take(card)
		return card
	}

	if len(s.remaining) == 0 {
		s.Reshuffle()
	}

	if len(s.remaining) == 0 {
		panic("card universe is empty")
	}

	i := s.rng.Intn(len(s.remaining))
	card := s.remaining[i]
	s.take(card)
	return card
}

// SpecialDraw is the biased draw used by the replace action. Among remaining
// cards with blackjack value >= 5, a secret card is chosen 70% of the time
// when one exists, otherwise a non-secret eligible card. With no eligible
// cards at all it falls back to a uniform draw.
func (s *Shoe) SpecialDraw() *Card {
	if len(s.remaining) == 0 {
		s.Reshuffle()
	}

	var secret, normal []*Card
	for _, card := range s.remaining {
		if card.BlackjackValue() < 5 {
			continue
		}

		if card.Secret {
			secret = append(secret, card)
		} else {
			normal = append(normal, card)
		}
	}

	var card *Card
	switch {
	case len(secret) > 0 && s.rng.Intn(100) < 70:
		card = secret[s.rng.Intn(len(secret))]
	case len(normal) > 0:
		card = normal[s.rng.Intn(len(normal))]
	case len(secret) > 0:
		card = secret[s.rng.Intn(len(secret))]
	default:
		if len(s.remaining) == 0 {
			panic("card universe is empty")
		}

		card = s.remaining[s.rng.Intn(len(s.remaining))]
	}

	s.dropPreview(card)
	s.take(card)
	return card
}

// Peek returns n cards chosen uniformly at random without replacement from
// the remaining pile, without removing them. The previewed cards are cached
// so that subsequent Draw calls return exactly these cards in order.
// Returns nil when n is out of range.
func (s *Shoe) Peek(n int) []*Card {
	if n <= 0 || n > len(s.remaining) {
		return nil
	}

	s.previewed = s.previewed[:0]

	pool := make([]*Card, len(s.remaining))
	copy(pool, s.remaining)

	peeked := make([]*Card, n)
	for i := 0; i < n; i++ {
		j := s.rng.Intn(len(pool))
		peeked[i] = pool[j]
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}

	s.previewed = append(s.previewed, peeked...)
	return peeked
}

// Discard makes sure the card is in the discard pile. Cards drawn from the
// shoe are discarded at draw time, so a swapped-out card usually already
// lives there; the card is only moved if a reshuffle put it back in the
// remaining pile.
func (s *Shoe) Discard(card *Card) {
	s.dropPreview(card)
	for i, c := range s.remaining {
		if c == card {
			s.remaining = append(s.remaining[:i], s.remaining[i+1:]...)
			s.discarded = append(s.discarded, card)
			return
		}
	}
}

// dropPreview removes the card from the pending preview so a later Draw
// cannot promise a card that already left the remaining pile
func (s *Shoe) dropPreview(card *Card) {
	for i, c := range s.previewed {
		if c == card {
			s.previewed = append(s.previewed[:i], s.previewed[i+1:]...)
			return
		}
	}
}

// Reshuffle moves all discarded cards back into the remaining pile and drops
// any pending preview.
func (s *Shoe) Reshuffle() {
	s.remaining = append(s.remaining, s.discarded...)
	s.discarded = s.discarded[:0]
	s.previewed = nil
}

// Remaining returns the number of undrawn cards
func (s *Shoe) Remaining() int {
	return len(s.remaining)
}

// DiscardedCount returns the number of cards in the discard pile
func (s *Shoe) DiscardedCount() int {
	return len(s.discarded)
}

// NumDecks returns the number of decks the shoe was built from
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// take moves the card from remaining to discarded
func (s *Shoe) take(card *Card) {
	for i, c := range s.remaining {
		if c == card {
			s.remaining = append(s.remaining[:i], s.remaining[i+1:]...)
			s.discarded = append(s.discarded, card)
			return
		}
	}

	panic(fmt.Sprintf("card %s is not in the remaining pile", card))
}
