package blackjack

import (
	"encoding/json"
	"fmt"

	"secretdeck-server/internal/rng"
	"secretdeck-server/pkg/deck"
)

// RuleCategory is the trigger category of a secret rule
type RuleCategory string

// rule categories
const (
	CategoryHold    RuleCategory = "hold"
	CategoryDraw    RuleCategory = "draw"
	CategoryDiscard RuleCategory = "discard"
)

// HoldEffect is a continuously re-evaluated effect applied for every secret
// card currently held
type HoldEffect int

// hold effects
const (
	// HoldRaiseBustLimit raises the round's bust limit by one
	HoldRaiseBustLimit HoldEffect = iota

	// HoldAddRightNeighborPoints adds the point value of the card immediately
	// to the right of the secret card
	HoldAddRightNeighborPoints

	// HoldDoubleBonusIfDoubleDown doubles the scalar bonus on double-down hands
	HoldDoubleBonusIfDoubleDown

	// HoldAddSuitCount adds the count of other same-suit cards in the hand
	HoldAddSuitCount

	// HoldSubtractSuitCount subtracts the count of other same-suit cards in the hand
	HoldSubtractSuitCount

	// HoldScalarAbove17 doubles the scalar bonus above 17 points, halves it otherwise
	HoldScalarAbove17

	// HoldScalarBelow17 doubles the scalar bonus below 17 points, halves it otherwise
	HoldScalarBelow17

	numHoldEffects
)

// DrawEffect fires once when a new card enters a hand via hit or replace
type DrawEffect int

// draw effects
const (
	// DrawRevealDealerHand reveals the dealer's hole card
	DrawRevealDealerHand DrawEffect = iota

	// DrawExtraHit grants the hand an immediate free hit
	DrawExtraHit

	// DrawSwapWithDealer swaps the drawn card with the dealer's hole card
	DrawSwapWithDealer

	numDrawEffects
)

// DiscardEffect fires once when a card leaves a hand via replace
type DiscardEffect int

// discard effects
const (
	// DiscardRefundHalfWager immediately refunds half the hand's wager
	DiscardRefundHalfWager DiscardEffect = iota

	// DiscardRaiseBustLimit raises the bust limit by two for the rest of the round
	DiscardRaiseBustLimit

	// DiscardHalveFinalPoints halves the hand's final points at resolution
	DiscardHalveFinalPoints

	// DiscardGiveCardToDealer gives the discarded card to the dealer instead of the shoe
	DiscardGiveCardToDealer

	numDiscardEffects
)

// Rule is one active secret rule. Exactly one of the concrete rule types
// implements it per category, so effect dispatch is a type switch rather
// than an unchecked numeric switch.
type Rule interface {
	Category() RuleCategory
	validate() error
}

// HoldRule is a hold-category secret rule
type HoldRule struct {
	Effect HoldEffect `json:"effect"`

	// TriggerRank and TriggerSuit are set on the wildcard slot only; the
	// current effect catalog does not read them
	TriggerRank int       `json:"triggerRank,omitempty"`
	TriggerSuit deck.Suit `json:"triggerSuit,omitempty"`
}

// Category returns the hold category
func (r HoldRule) Category() RuleCategory { return CategoryHold }

func (r HoldRule) validate() error {
	if r.Effect < 0 || r.Effect >= numHoldEffects {
		return fmt.Errorf("hold effect out of range: %d", r.Effect)
	}

	return nil
}

// DrawRule is a draw-category secret rule
type DrawRule struct {
	Effect      DrawEffect `json:"effect"`
	TriggerRank int        `json:"triggerRank,omitempty"`
	TriggerSuit deck.Suit  `json:"triggerSuit,omitempty"`
}

// Category returns the draw category
func (r DrawRule) Category() RuleCategory { return CategoryDraw }

func (r DrawRule) validate() error {
	if r.Effect < 0 || r.Effect >= numDrawEffects {
		return fmt.Errorf("draw effect out of range: %d", r.Effect)
	}

	return nil
}

// DiscardRule is a discard-category secret rule
type DiscardRule struct {
	Effect      DiscardEffect `json:"effect"`
	TriggerRank int           `json:"triggerRank,omitempty"`
	TriggerSuit deck.Suit     `json:"triggerSuit,omitempty"`
}

// Category returns the discard category
func (r DiscardRule) Category() RuleCategory { return CategoryDiscard }

func (r DiscardRule) validate() error {
	if r.Effect < 0 || r.Effect >= numDiscardEffects {
		return fmt.Errorf("discard effect out of range: %d", r.Effect)
	}

	return nil
}

// activeRules is the number of secret rules in play each round
const activeRules = 4

// randomRules generates the four secret rules for a round: one hold, one
// discard, one draw, and a wildcard of random category carrying a trigger
// rank. Rules apply in slot order; same-category rules compound.
func randomRules(gen rng.Generator) [activeRules]Rule {
	var rules [activeRules]Rule
	rules[0] = HoldRule{Effect: HoldEffect(gen.Intn(int(numHoldEffects)))}
	rules[1] = DiscardRule{Effect: DiscardEffect(gen.Intn(int(numDiscardEffects)))}
	rules[2] = DrawRule{Effect: DrawEffect(gen.Intn(int(numDrawEffects)))}

	rank := 2 + gen.Intn(deck.Ace-1)
	switch RuleCategory([]RuleCategory{CategoryHold, CategoryDraw, CategoryDiscard}[gen.Intn(3)]) {
	case CategoryHold:
		rules[3] = HoldRule{Effect: HoldEffect(gen.Intn(int(numHoldEffects))), TriggerRank: rank}
	case CategoryDraw:
		rules[3] = DrawRule{Effect: DrawEffect(gen.Intn(int(numDrawEffects))), TriggerRank: rank}
	case CategoryDiscard:
		rules[3] = DiscardRule{Effect: DiscardEffect(gen.Intn(int(numDiscardEffects))), TriggerRank: rank}
	}

	for _, rule := range rules {
		if err := rule.validate(); err != nil {
			panic(err)
		}
	}

	return rules
}

// ruleJSON is the wire form of a rule
type ruleJSON struct {
	Category RuleCategory `json:"category"`
	Effect   int          `json:"effect"`
}

// marshalRules renders the active rules for state views
func marshalRules(rules [activeRules]Rule) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(rules))
	for _, rule := range rules {
		var effect int
		switch r := rule.(type) {
		case HoldRule:
			effect = int(r.Effect)
		case DrawRule:
			effect = int(r.Effect)
		case DiscardRule:
			effect = int(r.Effect)
		default:
			panic(fmt.Sprintf("unknown rule type: %T", rule))
		}

		b, err := json.Marshal(ruleJSON{Category: rule.Category(), Effect: effect})
		if err != nil {
			panic(err)
		}

		out = append(out, b)
	}

	return out
}
