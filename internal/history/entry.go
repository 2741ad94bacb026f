package history

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind tags the payload an Entry carries.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// FormatPNG is the only image encoding the clipboard backends produce.
const FormatPNG = "png"

// Entry is one recorded clipboard value. Exactly one of Text (KindText) or
// Data+Format (KindImage) is meaningful. Entries are treated as immutable:
// NewImage copies the pixel buffer and nothing mutates Data afterwards.
type Entry struct {
	Kind   Kind
	Text   string
	Data   []byte
	Format string
}

// NewText returns a text entry.
func NewText(s string) Entry {
	return Entry{Kind: KindText, Text: s}
}

// NewImage returns an image entry holding a private copy of data.
func NewImage(data []byte, format string) Entry {
	if format == "" {
		format = FormatPNG
	}
	return Entry{Kind: KindImage, Data: bytes.Clone(data), Format: format}
}

// Blank reports whether the entry carries nothing worth recording.
func (e Entry) Blank() bool {
	switch e.Kind {
	case KindText:
		return strings.TrimSpace(e.Text) == ""
	case KindImage:
		return len(e.Data) == 0
	default:
		return true
	}
}

// Equal compares two entries by value.
func (e Entry) Equal(o Entry) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case KindText:
		return e.Text == o.Text
	case KindImage:
		return e.Format == o.Format && bytes.Equal(e.Data, o.Data)
	default:
		return true
	}
}

// MIME returns the clipboard MIME type for the entry.
func (e Entry) MIME() string {
	switch e.Kind {
	case KindText:
		return "text/plain"
	case KindImage:
		return "image/" + e.Format
	default:
		return "application/octet-stream"
	}
}

// jsonEntry is the persisted shape of an image entry. Text entries are
// persisted as bare JSON strings so older history files stay readable.
type jsonEntry struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text,omitempty"`
	Format string `json:"format,omitempty"`
	Data   string `json:"data,omitempty"` // base64-encoded
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case KindText:
		return json.Marshal(e.Text)
	case KindImage:
		return json.Marshal(jsonEntry{
			Kind:   KindImage,
			Format: e.Format,
			Data:   base64.StdEncoding.EncodeToString(e.Data),
		})
	default:
		return nil, fmt.Errorf("entry: unknown kind %q", e.Kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*e = NewText(s)
		return nil
	}

	var je jsonEntry
	if err := json.Unmarshal(b, &je); err != nil {
		return fmt.Errorf("entry: %w", err)
	}
	switch je.Kind {
	case KindText:
		*e = NewText(je.Text)
	case KindImage:
		data, err := base64.StdEncoding.DecodeString(je.Data)
		if err != nil {
			return fmt.Errorf("entry: image data: %w", err)
		}
		*e = Entry{Kind: KindImage, Data: data, Format: je.Format}
		if e.Format == "" {
			e.Format = FormatPNG
		}
	default:
		return errors.New("entry: missing or unknown kind")
	}
	return nil
}
