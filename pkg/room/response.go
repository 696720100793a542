package room

import (
	"errors"

	"secretdeck-server/pkg/playable"
)

var errGameInProgress = errors.New("a game is already in progress")
var errNoActiveGame = errors.New("there is no active game")

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
