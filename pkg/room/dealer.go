package room

import (
	"sync"

	"github.com/sirupsen/logrus"

	"secretdeck-server/pkg/playable"
	"secretdeck-server/pkg/room/gamefactory"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
	stateGameEnded
)

// Dealer is responsible for controlling the game of a single session
type Dealer struct {
	pitBoss     *PitBoss
	sessionUUID string
	clients     map[*Client]bool
	lock        sync.RWMutex
	game        playable.Playable
	logMessages []*playable.LogMessage

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, sessionUUID string) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		sessionUUID:   sessionUUID,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithField("uuid", d.sessionUUID)

	log.Debug("creating dealer run loop")
	for {
		// a nil game log channel simply never fires
		var gameLogChan <-chan []*playable.LogMessage
		if d.game != nil {
			gameLogChan = d.game.LogChan()
		}

		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendSessionState()
			case stateGameEvent:
				d.sendGameData()
			case stateGameEnded:
				d.sendGameEnded()
				d.sendSessionState()
			}
		case messages := <-gameLogChan:
			d.addLogMessages(messages)
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		if d.game == nil {
			return
		}

		gs, err := d.game.GetPlayerState(client.playerID)
		if err != nil {
			logrus.WithError(err).Error("could not get player state")
			return
		}

		client.Send <- gs
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameEnded() {
	for _, client := range d.Clients() {
		client.Send <- &playable.Response{
			Key: "gameEnded",
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	if d.game == nil {
		// should not happen
		logrus.Error("game state changed, but there's no active game")
		return
	}

	for _, client := range d.Clients() {
		data, err := d.game.GetPlayerState(client.playerID)
		if err != nil {
			logrus.WithError(err).Error("could not get player state")
			continue
		}

		client.Send <- data
	}
}

type sessionState struct {
	UUID           string `json:"uuid"`
	Clients        int    `json:"clients"`
	GameInProgress bool   `json:"gameInProgress"`
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendSessionState() {
	clients := d.Clients()
	payload := &playable.Response{
		Key: "clientState",
		Data: sessionState{
			UUID:           d.sessionUUID,
			Clients:        len(clients),
			GameInProgress: d.game != nil,
		},
	}

	for _, client := range clients {
		client.Send <- payload
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "createGame":
		d.execInRunLoop <- func() {
			if err := d.createGame(c, msg); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- playable.OK(msg.Context)
		}
	case "terminateGame":
		d.execInRunLoop <- func() {
			d.game = nil
			d.stateChanged <- stateGameEnded
		}

		c.Send <- playable.OK(msg.Context)
	default:
		d.execInRunLoop <- func() {
			d.gameAction(c, msg)
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) createGame(c *Client, msg *playable.PayloadIn) error {
	if d.game != nil {
		return errGameInProgress
	}

	factory, err := gamefactory.Get(msg.Subject)
	if err != nil {
		return err
	}

	game, err := factory.CreateGame(c.playerID, msg.AdditionalData)
	if err != nil {
		return err
	}

	d.game = game
	d.stateChanged <- stateGameEvent
	return nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) gameAction(c *Client, msg *playable.PayloadIn) {
	game := d.game
	if game == nil {
		logrus.WithField("msg", msg).Warn("unknown message")
		c.Send <- newErrorResponse(msg.Context, errNoActiveGame)
		return
	}

	action, updateState, err := game.Action(c.playerID, msg)
	if err != nil {
		logrus.WithError(err).WithField("client", c.String()).Error("could not perform action")
		c.Send <- newErrorResponse(msg.Context, err)
		return
	}

	if action != nil {
		action.Context = msg.Context
		c.Send <- action
	}

	if updateState {
		d.stateChanged <- stateGameEvent
	}

	if details, isOver := game.GetEndOfGameDetails(); isOver {
		for _, client := range d.Clients() {
			client.Send <- &playable.Response{
				Key:  "gameOver",
				Data: details,
			}
		}

		d.game = nil
		d.stateChanged <- stateGameEnded
	}
}
