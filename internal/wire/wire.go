// Package wire handles reading and writing newline-delimited JSON messages
// over a net.Conn.
//
// Wire format:
//
//	<json>\n
//
// Image entries travel base64-encoded inside the JSON, so every line is a
// single message regardless of payload.
package wire

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"time"

	"go.klb.dev/cliprecall/internal/message"
)

const (
	// MaxMessageSize is the largest message we will read (64 MiB). A full
	// history of screenshots is well below this.
	MaxMessageSize = 64 * 1024 * 1024

	writeDeadline = 5 * time.Second
)

// ErrTooLarge is returned when a line exceeds MaxMessageSize.
var ErrTooLarge = errors.New("message too large")

// Conn wraps a net.Conn with buffered newline-delimited JSON framing.
type Conn struct {
	conn net.Conn
	br   *bufio.Reader
}

// New wraps conn.
func New(conn net.Conn) *Conn {
	return &Conn{
		conn: conn,
		br:   bufio.NewReaderSize(conn, 64*1024),
	}
}

// SetReadDeadline sets or clears the read deadline.
func (c *Conn) SetReadDeadline(d time.Duration) {
	if d == 0 {
		_ = c.conn.SetReadDeadline(time.Time{})
	} else {
		_ = c.conn.SetReadDeadline(time.Now().Add(d))
	}
}

// SetWriteDeadline sets or clears the write deadline.
func (c *Conn) SetWriteDeadline(d time.Duration) {
	if d == 0 {
		_ = c.conn.SetWriteDeadline(time.Time{})
	} else {
		_ = c.conn.SetWriteDeadline(time.Now().Add(d))
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.conn.Close() }

// WriteMsg serialises msg to JSON and writes it followed by a newline.
func (c *Conn) WriteMsg(msg *message.Message) error {
	raw, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	line := append(raw, '\n')

	c.SetWriteDeadline(writeDeadline)
	_, err = c.conn.Write(line)
	c.SetWriteDeadline(0)
	return err
}

// ReadMsg reads one newline-terminated line and deserialises it into a
// Message.
func (c *Conn) ReadMsg() (*message.Message, error) {
	var line []byte
	for {
		chunk, err := c.br.ReadSlice('\n')
		line = append(line, chunk...)
		if len(line) > MaxMessageSize {
			return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, len(line))
		}
		if err == nil {
			break
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return nil, err
		}
	}

	// Strip trailing newline
	line = line[:len(line)-1]
	return message.Decode(line)
}
