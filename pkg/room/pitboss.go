package room

import (
	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching clients to their session's dealer
type PitBoss struct {
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
}

// NewPitBoss returns a new dispatch object
func NewPitBoss() *PitBoss {
	return &PitBoss{
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.sessionUUID]
			if !found {
				dealer = NewDealer(p, client.sessionUUID)
				dealer.StartShift()
				p.dealers[client.sessionUUID] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.sessionUUID]
			if !found {
				// a stray disconnect must not take down every other session
				logrus.WithField("uuid", client.sessionUUID).WithField("type", "exception").Error("session not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.sessionUUID)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
