// Package client is the CLI/picker side of the daemon IPC protocol.
package client

import (
	"fmt"
	"net"
	"time"

	"go.klb.dev/cliprecall/internal/ipc"
	"go.klb.dev/cliprecall/internal/message"
	"go.klb.dev/cliprecall/internal/wire"
)

const replyTimeout = 5 * time.Second

// Client sends one request per connection to the daemon.
type Client struct {
	dial  func() (net.Conn, error)
	match string
}

// New returns a client for the local daemon socket.
func New() *Client {
	return &Client{dial: ipc.Dial}
}

// NewWithDialer returns a client that connects through dial.
func NewWithDialer(dial func() (net.Conn, error)) *Client {
	return &Client{dial: dial}
}

// SetMatch selects how queries filter the history for List and Paste
// (history.MatchSubstring or history.MatchFuzzy).
func (c *Client) SetMatch(mode string) { c.match = mode }

// List fetches the history filtered by query. Passing the version from a
// previous reply lets the daemon answer with Unchanged instead of entries.
func (c *Client) List(query string, limit int, since uint64) (*message.Message, error) {
	return c.do(&message.Message{Type: message.TypeList, Query: query, Match: c.match, Limit: limit, Version: since})
}

// Paste asks the daemon to paste entry index of the history filtered by
// query into window (0 = previous application). version is the history
// version index was read at; the daemon refuses the paste if the history
// has changed since. 0 skips the check.
func (c *Client) Paste(query string, index, window int, version uint64) error {
	_, err := c.do(&message.Message{
		Type:    message.TypePaste,
		Query:   query,
		Match:   c.match,
		Index:   index,
		Window:  window,
		Version: version,
	})
	return err
}

// Clear empties the history and returns the new version.
func (c *Client) Clear() (uint64, error) {
	resp, err := c.do(&message.Message{Type: message.TypeClear})
	if err != nil {
		return 0, err
	}
	return resp.Version, nil
}

// Status reports on the daemon.
func (c *Client) Status() (*message.Status, error) {
	resp, err := c.do(&message.Message{Type: message.TypeStatus})
	if err != nil {
		return nil, err
	}
	if resp.Status == nil {
		return nil, fmt.Errorf("status: empty response")
	}
	return resp.Status, nil
}

func (c *Client) do(req *message.Message) (*message.Message, error) {
	conn, err := c.dial()
	if err != nil {
		return nil, err
	}
	wc := wire.New(conn)
	defer wc.Close()

	if err := wc.WriteMsg(req); err != nil {
		return nil, fmt.Errorf("%s request: %w", req.Type, err)
	}
	wc.SetReadDeadline(replyTimeout)
	resp, err := wc.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("%s reply: %w", req.Type, err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}
