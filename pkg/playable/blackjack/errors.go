package blackjack

import "errors"

// ErrRoundNotInProgress is returned when a play action arrives outside an active round
var ErrRoundNotInProgress = errors.New("round is not in progress")

// ErrNotAPair is returned when a split is attempted without exactly two equal-rank cards
var ErrNotAPair = errors.New("hand is not a pair")

// ErrAlreadySplit is returned when the hand has already been split this round
var ErrAlreadySplit = errors.New("hand has already been split")

// ErrNoSelection is returned when a replace is attempted with no card selected
var ErrNoSelection = errors.New("no card is selected")

// ErrNoSwapsRemaining is returned when no card swaps are left this round
var ErrNoSwapsRemaining = errors.New("no swaps remaining this round")

// ErrInsufficientChips is returned when the balance cannot cover a bet or purchase
var ErrInsufficientChips = errors.New("insufficient chips")

// ErrNoBetPlaced is returned when the betting phase is confirmed without a bet
var ErrNoBetPlaced = errors.New("no bet has been placed")

// ErrHandBusted is returned when a hit is attempted on a busted hand
var ErrHandBusted = errors.New("hand has busted")

// ErrGameIsOver is returned when an action is attempted on an ended game
var ErrGameIsOver = errors.New("game is over")

// ErrItemNotOwned is returned when the player uses an item they do not own
var ErrItemNotOwned = errors.New("item is not owned")

// ErrItemNotUsable is returned when an item cannot be used in the current phase
var ErrItemNotUsable = errors.New("item cannot be used right now")
