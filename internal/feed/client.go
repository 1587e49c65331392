package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Client reads engine messages from a websocket.
type Client struct {
	URL    string
	Dialer *websocket.Dialer
	Log    *log.Logger

	dec *Decoder
}

// NewClient prepares a client for url. It does not dial.
func NewClient(url string, logger *log.Logger) (*Client, error) {
	dec, err := NewDecoder()
	if err != nil {
		return nil, err
	}
	return &Client{URL: url, Dialer: websocket.DefaultDialer, Log: logger, dec: dec}, nil
}

// Run dials the engine and delivers every valid message on out until ctx is
// done or the connection fails. Invalid messages are logged and dropped.
// Run closes out before returning.
func (c *Client) Run(ctx context.Context, out chan<- Message) error {
	defer close(out)
	conn, _, err := c.Dialer.DialContext(ctx, c.URL, http.Header{})
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.URL, err)
	}
	defer conn.Close()

	// Unblock ReadMessage on cancellation.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		msg, err := c.dec.Decode(raw)
		if err != nil {
			if c.Log != nil && errors.Is(err, ErrSchema) {
				c.Log.Printf("drop: %v", err)
			}
			continue
		}
		select {
		case out <- msg:
		case <-ctx.Done():
			return nil
		}
	}
}
