package wire

import (
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/cliprecall/internal/history"
	"go.klb.dev/cliprecall/internal/message"
)

func TestConn_ExchangesMessages(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	client, server := New(a), New(b)

	big := strings.Repeat("x", 200*1024) // larger than the read buffer
	sent := &message.Message{
		Type:    message.TypeHistory,
		Version: 7,
		Entries: []history.Entry{
			history.NewText(big),
			history.NewImage([]byte{0x89, 'P', 'N', 'G'}, history.FormatPNG),
		},
	}

	errc := make(chan error, 1)
	go func() { errc <- client.WriteMsg(sent) }()

	got, err := server.ReadMsg()
	require.NoError(t, err)
	require.NoError(t, <-errc)

	assert.Equal(t, message.TypeHistory, got.Type)
	assert.Equal(t, uint64(7), got.Version)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, big, got.Entries[0].Text)
	assert.True(t, sent.Entries[1].Equal(got.Entries[1]))
}

func TestConn_RejectsGarbage(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	go func() { _, _ = a.Write([]byte("{not json\n")) }()

	_, err := New(b).ReadMsg()
	assert.Error(t, err)
}
