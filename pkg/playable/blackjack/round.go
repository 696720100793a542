package blackjack

import (
	"fmt"

	"secretdeck-server/pkg/deck"
)

// RoundState is the state of the current round
type RoundState string

// round state constants
const (
	// RoundStateStart means a round is in progress and play actions are legal
	RoundStateStart RoundState = "start"

	// RoundStateEnd means the round has resolved (or has not begun)
	RoundStateEnd RoundState = "end"
)

// reshuffleThreshold triggers a proactive reshuffle at round start when the
// remaining pile falls below two decks' worth of cards
const reshuffleThreshold = 2 * 52

// dealerStandsAt is the dealer's draw cutoff: the dealer draws until the
// soft-counted total reaches it
const dealerStandsAt = 17

// HandOutcome is how a hand fared against the dealer
type HandOutcome string

// hand outcomes
const (
	OutcomeWin  HandOutcome = "win"
	OutcomeLoss HandOutcome = "loss"
	OutcomePush HandOutcome = "push"
	OutcomeBust HandOutcome = "bust"
)

// HandResult is the resolution of a single player hand
type HandResult struct {
	Cards        deck.Hand   `json:"cards"`
	Points       int         `json:"points"`
	DealerPoints int         `json:"dealerPoints"`
	Outcome      HandOutcome `json:"outcome"`
	Wager        int         `json:"wager"`
	Payout       int         `json:"payout"`
}

// startOfRound clears the hands, reshuffles a low shoe, and deals the opening
// cards in standard order: player, dealer, player, dealer
func (g *Game) startOfRound() error {
	if len(g.playerHands) == 0 {
		return fmt.Errorf("cannot start a round without a player hand")
	}

	g.isSplit = false
	g.isDoubleDown = false
	g.discardBustRaises = 0
	g.holdBustRaises = 0
	g.scalarBonus = 1
	g.dealerRevealed = false
	g.lastResults = nil

	g.playerHands = g.playerHands[:1]
	g.playerHands[0].reset()
	g.dealerHand.reset()

	if g.shoe.Remaining() < reshuffleThreshold {
		g.shoe.Reshuffle()
	}

	g.playerHands[0].AddCard(g.shoe.Draw())
	g.dealerHand.AddCard(g.shoe.Draw())
	g.playerHands[0].AddCard(g.shoe.Draw())
	g.dealerHand.AddCard(g.shoe.Draw())

	g.roundState = RoundStateStart
	g.sendLogMessage("Round %d dealt", g.progress.CurrentRound())
	return nil
}

// bustLimit is the current limit a hand may reach without busting: the
// configured base plus any raises from discard and hold effects
func (g *Game) bustLimit() int {
	return g.options.BustLimit + g.discardBustRaises + g.holdBustRaises
}

// countPoints returns the hand's reported points: the soft-ace-adjusted card
// total plus the extra points granted by hold effects. Idempotent.
func (g *Game) countPoints(h *Hand) int {
	if h == nil {
		return 0
	}

	return h.softPoints() + h.extraPoints
}

// recomputeHoldEffects re-evaluates every hold-category rule against the
// cards currently held. Extra points, the scalar bonus, and hold-derived
// bust-limit raises are reset first, so repeated calls with no card changes
// yield identical results. Rules apply in slot order; same-category rules
// compound deliberately.
func (g *Game) recomputeHoldEffects(h *Hand) {
	h.extraPoints = 0
	g.holdBustRaises = 0
	g.scalarBonus = 1

	for _, rule := range g.rules {
		hold, ok := rule.(HoldRule)
		if !ok {
			continue
		}

		for i, card := range h.cards {
			if !card.Secret {
				continue
			}

			switch hold.Effect {
			case HoldRaiseBustLimit:
				g.holdBustRaises++
			case HoldAddRightNeighborPoints:
				if i+1 < len(h.cards) {
					h.extraPoints += h.cards[i+1].BlackjackValue()
				}
			case HoldDoubleBonusIfDoubleDown:
				if g.isDoubleDown {
					g.scalarBonus *= 2
				}
			case HoldAddSuitCount:
				h.extraPoints += h.suitCount(card)
			case HoldSubtractSuitCount:
				h.extraPoints -= h.suitCount(card)
			case HoldScalarAbove17:
				if g.countPoints(h) > 17 {
					g.scalarBonus *= 2
				} else {
					g.scalarBonus *= 0.5
				}
			case HoldScalarBelow17:
				if g.countPoints(h) < 17 {
					g.scalarBonus *= 2
				} else {
					g.scalarBonus *= 0.5
				}
			default:
				panic(fmt.Sprintf("unknown hold effect: %d", hold.Effect))
			}
		}
	}
}

// suitCount returns how many other cards in the hand share the card's suit
func (h *Hand) suitCount(card *deck.Card) int {
	count := 0
	for _, c := range h.cards {
		if c != card && c.Suit == card.Suit {
			count++
		}
	}

	return count
}

// onCardDrawn fires every active draw-category rule, once, after a new card
// entered the hand via hit or replace. Effects may recursively draw.
func (g *Game) onCardDrawn(card *deck.Card, h *Hand) {
	for _, rule := range g.rules {
		draw, ok := rule.(DrawRule)
		if !ok {
			continue
		}

		switch draw.Effect {
		case DrawRevealDealerHand:
			g.revealDealer()
		case DrawExtraHit:
			// terminates: each hit adds at least one point and the hit
			// gate rejects hands over 21
			_ = g.hit(h)
		case DrawSwapWithDealer:
			g.swapWithDealer(card, h)
		default:
			panic(fmt.Sprintf("unknown draw effect: %d", draw.Effect))
		}
	}
}

// swapWithDealer trades the drawn card for the dealer's hole card
func (g *Game) swapWithDealer(card *deck.Card, h *Hand) {
	holeCard := g.dealerHand.cards.FirstCard()
	if holeCard == nil || !h.replaceCard(card, holeCard) {
		return
	}

	g.dealerHand.cards[0] = card
	g.sendLogMessage("A drawn card was swapped with the dealer's hole card")
}

// onCardDiscarded fires every active discard-category rule, once, after a
// replace removed the card from the hand. Returns true if an effect
// redirected the card away from the shoe.
func (g *Game) onCardDiscarded(card *deck.Card, h *Hand) (redirected bool) {
	for _, rule := range g.rules {
		discard, ok := rule.(DiscardRule)
		if !ok {
			continue
		}

		switch discard.Effect {
		case DiscardRefundHalfWager:
			g.stats.AddChips(h.wager / 2)
			g.sendLogMessage("Half the wager was refunded")
		case DiscardRaiseBustLimit:
			g.discardBustRaises += 2
		case DiscardHalveFinalPoints:
			h.halvePoints = true
		case DiscardGiveCardToDealer:
			g.dealerHand.AddCard(card)
			redirected = true
		default:
			panic(fmt.Sprintf("unknown discard effect: %d", discard.Effect))
		}
	}

	return redirected
}

// hit draws one card for the hand. An armed bust-prevention item intercepts
// a hit that would bust: the wager is refunded and the round stands instead.
func (g *Game) hit(h *Hand) error {
	if g.roundState != RoundStateStart {
		return ErrRoundNotInProgress
	}

	if g.countPoints(h) > 21 {
		return ErrHandBusted
	}

	card := g.shoe.Draw()

	if g.burstPrevention && g.wouldBust(h, card) {
		g.burstPrevention = false
		g.stats.AddChips(h.wager)
		h.wager = 0
		g.sendLogMessage("Safety Net absorbed a busting %s; wager refunded", card)
		return g.stand()
	}

	h.AddCard(card)
	g.onCardDrawn(card, h)

	if g.roundState != RoundStateStart {
		// a draw effect already ended the round
		return nil
	}

	if g.allHandsBusted() {
		g.sendLogMessage("All hands busted")
		return g.stand()
	}

	return nil
}

// wouldBust reports whether adding the card would push the hand over the
// current bust limit
func (g *Game) wouldBust(h *Hand, card *deck.Card) bool {
	probe := &Hand{cards: append(h.cards.Clone(), card), extraPoints: h.extraPoints}
	return g.countPoints(probe) > g.bustLimit()
}

// allHandsBusted returns true when every player hand exceeds the bust limit
func (g *Game) allHandsBusted() bool {
	for _, h := range g.playerHands {
		if g.countPoints(h) <= g.bustLimit() {
			return false
		}
	}

	return true
}

// replace swaps the selected card for a special draw from the shoe, firing
// the draw effects for the incoming card and the discard effects for the
// outgoing one. Consumes one of the round's swaps.
func (g *Game) replace() error {
	if g.roundState != RoundStateStart {
		return ErrRoundNotInProgress
	}

	if !g.progress.HasSwapsRemaining() {
		return ErrNoSwapsRemaining
	}

	h := g.selectedHand()
	if h == nil {
		return ErrNoSelection
	}

	newCard := g.shoe.SpecialDraw()
	removed, err := h.ReplaceSelected(newCard)
	if err != nil {
		g.shoe.Discard(newCard)
		return err
	}

	g.progress.UseSwap()
	g.onCardDrawn(newCard, h)

	if !g.onCardDiscarded(removed, h) {
		g.shoe.Discard(removed)
	}

	for _, hand := range g.playerHands {
		hand.Deselect()
	}

	g.sendLogMessage("Replaced %s with %s", removed, newCard)
	return nil
}

// selectedHand returns the player hand with an active card selection, or nil
func (g *Game) selectedHand() *Hand {
	for _, h := range g.playerHands {
		if h.SelectedCard() != nil {
			return h
		}
	}

	return nil
}

// doubleDown doubles the primary hand's wager, draws exactly one card, and
// stands. Not available after a split.
func (g *Game) doubleDown() error {
	if g.roundState != RoundStateStart {
		return ErrRoundNotInProgress
	}

	if g.isSplit {
		return ErrAlreadySplit
	}

	primary := g.playerHands[0]
	if !g.stats.CanAfford(primary.wager) {
		return ErrInsufficientChips
	}

	g.isDoubleDown = true
	primary.Deselect()
	g.stats.RemoveChips(primary.wager)
	primary.wager *= 2

	primary.AddCard(g.shoe.Draw())
	g.sendLogMessage("Doubled down for ${%d}", primary.wager)

	return g.stand()
}

// split turns a pair into two hands with matching wagers and deals one new
// card to each. At most one split per round.
func (g *Game) split() error {
	if g.roundState != RoundStateStart {
		return ErrRoundNotInProgress
	}

	if g.isSplit {
		return ErrAlreadySplit
	}

	primary := g.playerHands[0]
	if !primary.IsPair() {
		return ErrNotAPair
	}

	if !g.stats.CanAfford(primary.wager) {
		return ErrInsufficientChips
	}

	g.isSplit = true
	splitHand, err := primary.Split()
	if err != nil {
		return err
	}

	g.stats.RemoveChips(primary.wager)
	g.playerHands = append(g.playerHands, splitHand)

	for _, h := range g.playerHands {
		h.AddCard(g.shoe.Draw())
	}

	g.sendLogMessage("Split into two hands of ${%d}", primary.wager)
	return nil
}

// stand finalizes the round: the dealer reveals and draws to 17, then every
// player hand is resolved and paid out
func (g *Game) stand() error {
	if g.roundState != RoundStateStart {
		return ErrRoundNotInProgress
	}

	for _, h := range g.playerHands {
		h.Deselect()
	}

	g.revealDealer()
	g.dealerPlay()

	results := make([]*HandResult, len(g.playerHands))
	for i, h := range g.playerHands {
		results[i] = g.resolveHand(h)
	}

	g.lastResults = results
	g.bonusMultiplier = 1
	g.stats.ClearBets()
	g.roundState = RoundStateEnd

	g.completeRound()
	return nil
}

// dealerPlay draws dealer cards until the soft-counted total reaches 17.
// Terminates: points are monotonically non-decreasing per draw and the shoe
// reshuffles rather than run dry.
func (g *Game) dealerPlay() {
	for g.countPoints(g.dealerHand) < dealerStandsAt {
		g.dealerHand.AddCard(g.shoe.Draw())
	}
}

// resolveHand recomputes hold effects, scores the hand against the dealer,
// and credits the payout. The hand's wager clears regardless of outcome.
func (g *Game) resolveHand(h *Hand) *HandResult {
	g.recomputeHoldEffects(h)

	points := g.countPoints(h)
	if h.halvePoints {
		points /= 2
	}

	dealerPoints := g.countPoints(g.dealerHand)

	result := &HandResult{
		Cards:        h.cards.Clone(),
		Points:       points,
		DealerPoints: dealerPoints,
		Wager:        h.wager,
	}

	switch {
	case points > g.bustLimit():
		result.Outcome = OutcomeBust
	case dealerPoints > 21 || points > dealerPoints:
		multiplier := 2
		if points == 21 && len(h.cards) == 2 {
			multiplier = 3
		}

		result.Outcome = OutcomeWin
		result.Payout = h.wager * multiplier * g.bonusMultiplier * int(g.scalarBonus)
	case points == dealerPoints && len(g.dealerHand.cards) < 5:
		result.Outcome = OutcomePush
		result.Payout = h.wager
	default:
		result.Outcome = OutcomeLoss
	}

	g.stats.AddChips(result.Payout)
	h.wager = 0

	g.sendLogMessage("%s: %d against dealer %d pays ${%d}", result.Outcome, points, dealerPoints, result.Payout)
	return result
}

// revealDealer exposes the dealer's hole card to state views
func (g *Game) revealDealer() {
	if g.dealerRevealed {
		return
	}

	g.dealerRevealed = true
	g.sendLogMessage("Dealer reveals %s", g.dealerHand.cards.FirstCard())
}
