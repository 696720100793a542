package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"secretdeck-server/pkg/playable"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// Send is a channel for sending messages to the client
	Send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	playerID    int64
	sessionUUID string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, playerID int64, sessionUUID string) *Client {
	return &Client{
		Send:        make(chan interface{}, 256),
		Close:       make(chan string),
		Conn:        conn,
		playerID:    playerID,
		sessionUUID: sessionUUID,
	}
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%d:%s", c.playerID, c.sessionUUID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
