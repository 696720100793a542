package blackjack

// GameState is the outer session state, gating which actions are legal
type GameState string

// game state constants
const (
	// StatePreparation resets round-local state and generates fresh secret rules
	StatePreparation GameState = "preparation"

	// StateBetting accepts bets until the player confirms
	StateBetting GameState = "betting"

	// StatePlaying delegates to the round controller
	StatePlaying GameState = "playing"

	// StateShopping allows item purchases before the next round
	StateShopping GameState = "shopping"

	// StateRoundEnd is a transient check between playing and shopping
	StateRoundEnd GameState = "round-end"

	// StateGameOver is terminal
	StateGameOver GameState = "game-over"
)

// PlayerStats tracks the chip economy for the session. All mutation goes
// through methods so the balance can never go negative and bets can never
// exceed the balance.
type PlayerStats struct {
	chips     int
	totalBets int
	items     map[ItemType]int
}

// NewPlayerStats returns stats with the given starting balance
func NewPlayerStats(startingChips int) *PlayerStats {
	return &PlayerStats{
		chips: startingChips,
		items: make(map[ItemType]int),
	}
}

// Chips returns the current balance
func (s *PlayerStats) Chips() int {
	return s.chips
}

// TotalBets returns the amount currently committed to bets
func (s *PlayerStats) TotalBets() int {
	return s.totalBets
}

// CanAfford returns true if the balance covers the amount
func (s *PlayerStats) CanAfford(amount int) bool {
	return s.chips >= amount
}

// AddChips credits the balance. Non-positive amounts are ignored.
func (s *PlayerStats) AddChips(amount int) {
	if amount <= 0 {
		return
	}

	s.chips += amount
}

// RemoveChips debits the balance. Returns false, leaving the balance
// unchanged, if the amount is not covered.
func (s *PlayerStats) RemoveChips(amount int) bool {
	if amount <= 0 || amount > s.chips {
		return false
	}

	s.chips -= amount
	return true
}

// AddBet moves chips from the balance into the pending bet. A bet that
// would overdraw the balance is rejected, not clamped.
func (s *PlayerStats) AddBet(amount int) bool {
	if amount <= 0 || amount > s.chips {
		return false
	}

	s.chips -= amount
	s.totalBets += amount
	return true
}

// ResetBets returns all pending bets to the balance
func (s *PlayerStats) ResetBets() {
	s.chips += s.totalBets
	s.totalBets = 0
}

// ClearBets zeroes the pending bet without refunding. Called once the bet
// has been committed to a hand's wager.
func (s *PlayerStats) ClearBets() {
	s.totalBets = 0
}

// AddItem adds an item to the owned multiset
func (s *PlayerStats) AddItem(item ItemType) {
	s.items[item]++
}

// HasItem returns true if at least one of the item is owned
func (s *PlayerStats) HasItem(item ItemType) bool {
	return s.items[item] > 0
}

// UseItem removes one of the item from the owned multiset
func (s *PlayerStats) UseItem(item ItemType) bool {
	if s.items[item] == 0 {
		return false
	}

	s.items[item]--
	if s.items[item] == 0 {
		delete(s.items, item)
	}

	return true
}

// Items returns a copy of the owned item multiset
func (s *PlayerStats) Items() map[ItemType]int {
	items := make(map[ItemType]int, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}

	return items
}

// GameProgress tracks the round counter and the per-round swap allowance
type GameProgress struct {
	maxRounds      int
	targetBalance  int
	swapsPerRound  int
	currentRound   int
	swapsRemaining int
}

// NewGameProgress returns progress positioned at round one
func NewGameProgress(maxRounds, targetBalance, swapsPerRound int) *GameProgress {
	p := &GameProgress{
		maxRounds:     maxRounds,
		targetBalance: targetBalance,
		swapsPerRound: swapsPerRound,
		currentRound:  1,
	}

	p.ResetSwaps()
	return p
}

// CurrentRound returns the 1-based round number
func (p *GameProgress) CurrentRound() int {
	return p.currentRound
}

// SwapsRemaining returns the card swaps left this round
func (p *GameProgress) SwapsRemaining() int {
	return p.swapsRemaining
}

// TargetBalance returns the balance that wins the game
func (p *GameProgress) TargetBalance() int {
	return p.targetBalance
}

// AdvanceRound increments the round counter and resets the swap allowance
func (p *GameProgress) AdvanceRound() {
	p.currentRound++
	p.ResetSwaps()
}

// UseSwap consumes one swap if any remain
func (p *GameProgress) UseSwap() bool {
	if p.swapsRemaining == 0 {
		return false
	}

	p.swapsRemaining--
	return true
}

// ResetSwaps restores the per-round swap allowance
func (p *GameProgress) ResetSwaps() {
	p.swapsRemaining = p.swapsPerRound
}

// IsLastRound returns true on the final round
func (p *GameProgress) IsLastRound() bool {
	return p.currentRound >= p.maxRounds
}

// HasSwapsRemaining returns true if a card swap is still available
func (p *GameProgress) HasSwapsRemaining() bool {
	return p.swapsRemaining > 0
}
