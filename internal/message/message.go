// Package message defines the cliprecall IPC protocol spoken between the
// daemon and the CLI tools / picker.
//
// All messages are newline-delimited JSON. Each message is exactly one line:
// <json>\n. A connection carries one request and its response.
package message

import (
	"encoding/json"
	"fmt"

	"go.klb.dev/cliprecall/internal/history"
)

// Type identifies the kind of message.
type Type string

const (
	// Requests
	TypeList   Type = "LIST"
	TypeClear  Type = "CLEAR"
	TypePaste  Type = "PASTE"
	TypeStatus Type = "STATUS"

	// Responses
	TypeHistory        Type = "HISTORY"
	TypeStatusResponse Type = "STATUS_RESPONSE"
	TypeOK             Type = "OK"
	TypeError          Type = "ERROR"
)

// Status describes a running daemon.
type Status struct {
	Version     uint64 `json:"version"`
	Length      int    `json:"length"`
	MaxItems    int    `json:"max_items"`
	HistoryFile string `json:"history_file"`
	Clipboard   string `json:"clipboard"`
	PasteBack   bool   `json:"paste_back"`
}

// Message is the top-level wire envelope.
type Message struct {
	// Always present
	Type Type `json:"type"`

	// LIST / PASTE: Query filters the history before Index or Limit apply.
	// Match selects the filter (history.MatchSubstring when empty).
	Query string `json:"query,omitempty"`
	Match string `json:"match,omitempty"`
	Limit int    `json:"limit,omitempty"`

	// PASTE: Index into the filtered history; Window is the process whose
	// window should receive the paste (0 = previous application).
	Index  int `json:"index,omitempty"`
	Window int `json:"window,omitempty"`

	// HISTORY / STATUS_RESPONSE / CLEAR: Version is the store version the
	// response reflects. A LIST carrying the version the client already has
	// gets a HISTORY with Unchanged set and no entries. A PASTE carrying a
	// version is refused once the history has moved past it, since Index
	// would point at a different entry.
	Version   uint64          `json:"version,omitempty"`
	Unchanged bool            `json:"unchanged,omitempty"`
	Total     int             `json:"total,omitempty"`
	Entries   []history.Entry `json:"entries,omitempty"`

	// STATUS_RESPONSE
	Status *Status `json:"status,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}

// Errorf builds an ERROR response.
func Errorf(format string, args ...any) *Message {
	return &Message{Type: TypeError, Error: fmt.Sprintf(format, args...)}
}

// Err returns the error carried by an ERROR response, or nil.
func (m *Message) Err() error {
	if m.Type != TypeError {
		return nil
	}
	return fmt.Errorf("daemon: %s", m.Error)
}
