package deck

// Hand represents an ordered collection of cards. Order is significant: some
// secret-rule effects act on the card to the right of another card.
type Hand []*Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h *Hand) HasCard(card *Card) bool {
	for _, c := range *h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// RemoveAt removes and returns the card at the given index, or nil if the
// index is out of range
func (h *Hand) RemoveAt(index int) *Card {
	if index < 0 || index >= len(*h) {
		return nil
	}

	card := (*h)[index]
	*h = append((*h)[:index], (*h)[index+1:]...)
	return card
}

// FirstCard returns the first card in the hand or nil if the cards are empty
func (h Hand) FirstCard() *Card {
	if len(h) == 0 {
		return nil
	}

	return h[0]
}

// LastCard returns the last card in the hand or nil if the cards are empty
func (h Hand) LastCard() *Card {
	n := len(h)
	if n == 0 {
		return nil
	}

	return h[n-1]
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
