package blackjack

import (
	"fmt"

	"secretdeck-server/pkg/deck"
)

// noSelection marks a hand without a selected card
const noSelection = -1

// Hand is a player or dealer hand: an ordered card sequence, the wager
// committed to it, and the extra points granted by hold-type rule effects.
type Hand struct {
	cards       deck.Hand
	wager       int
	extraPoints int
	halvePoints bool
	selected    int
}

func newHand() *Hand {
	return &Hand{
		cards:    make(deck.Hand, 0, 8),
		selected: noSelection,
	}
}

// reset clears the cards and per-round modifiers. The wager survives the
// reset: bets are committed before the cards are dealt.
func (h *Hand) reset() {
	h.cards = h.cards[:0]
	h.extraPoints = 0
	h.halvePoints = false
	h.selected = noSelection
}

// Cards returns the cards in the hand
func (h *Hand) Cards() deck.Hand {
	return h.cards
}

// Wager returns the chips committed to the hand this round
func (h *Hand) Wager() int {
	return h.wager
}

// ExtraPoints returns the current hold-effect point modifier
func (h *Hand) ExtraPoints() int {
	return h.extraPoints
}

// AddCard appends a card to the hand. Scoring happens on demand, not here.
func (h *Hand) AddCard(card *deck.Card) {
	h.cards.AddCard(card)
}

// IsPair returns true if the hand holds exactly two cards of equal rank
func (h *Hand) IsPair() bool {
	return len(h.cards) == 2 && h.cards[0].Rank == h.cards[1].Rank
}

// Select marks the card at the given index as selected
func (h *Hand) Select(index int) error {
	if index < 0 || index >= len(h.cards) {
		return fmt.Errorf("no card at index %d", index)
	}

	h.selected = index
	return nil
}

// Deselect clears the selection
func (h *Hand) Deselect() {
	h.selected = noSelection
}

// SelectedCard returns the currently selected card, or nil
func (h *Hand) SelectedCard() *deck.Card {
	if h.selected == noSelection {
		return nil
	}

	return h.cards[h.selected]
}

// ReplaceSelected swaps the selected card for newCard and returns the removed
// card. The selection is cleared afterwards.
func (h *Hand) ReplaceSelected(newCard *deck.Card) (*deck.Card, error) {
	if h.selected == noSelection {
		return nil, ErrNoSelection
	}

	removed := h.cards[h.selected]
	h.cards[h.selected] = newCard
	h.selected = noSelection
	return removed, nil
}

// replaceCard swaps the card (by identity) for newCard and returns true if
// the card was found. Used by the swap-with-dealer draw effect.
func (h *Hand) replaceCard(card, newCard *deck.Card) bool {
	for i, c := range h.cards {
		if c == card {
			h.cards[i] = newCard
			return true
		}
	}

	return false
}

// Split moves the second card of a pair into a new hand carrying the same
// wager, leaving this hand with the first card only
func (h *Hand) Split() (*Hand, error) {
	if !h.IsPair() {
		return nil, ErrNotAPair
	}

	split := newHand()
	split.AddCard(h.cards.RemoveAt(1))
	split.wager = h.wager
	h.selected = noSelection
	return split, nil
}

// softPoints returns the soft-ace-adjusted card total, before extra points.
// Aces count 11 until the total exceeds 21, then demote to 1 one at a time.
func (h *Hand) softPoints() int {
	points := 0
	aces := 0
	for _, card := range h.cards {
		points += card.BlackjackValue()
		if card.Rank == deck.Ace {
			aces++
		}
	}

	for points > 21 && aces > 0 {
		points -= 10
		aces--
	}

	return points
}

func (h *Hand) String() string {
	return h.cards.String()
}
