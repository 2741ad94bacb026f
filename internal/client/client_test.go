package client

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/cliprecall/internal/focus"
	"go.klb.dev/cliprecall/internal/history"
	"go.klb.dev/cliprecall/internal/service"
)

type pasteLog struct {
	got chan history.Entry
}

func (p *pasteLog) Dispatch(e history.Entry, _ focus.Handle) { p.got <- e }

func serve(t *testing.T, store *history.Store, paster service.Paster) *Client {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = service.New(store, paster, "test").Serve(ctx, ln) }()

	return NewWithDialer(func() (net.Conn, error) { return net.Dial("tcp", ln.Addr().String()) })
}

func TestClient_AgainstService(t *testing.T) {
	store := history.New("", 5)
	store.Add(history.NewText("first"))
	store.Add(history.NewText("second"))
	paster := &pasteLog{got: make(chan history.Entry, 1)}
	c := serve(t, store, paster)

	h, err := c.List("", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []history.Entry{history.NewText("second"), history.NewText("first")}, h.Entries)

	again, err := c.List("", 0, h.Version)
	require.NoError(t, err)
	assert.True(t, again.Unchanged)

	require.NoError(t, c.Paste("fir", 0, 0, h.Version))
	assert.Equal(t, history.NewText("first"), <-paster.got)

	st, err := c.Status()
	require.NoError(t, err)
	assert.Equal(t, 2, st.Length)
	assert.Equal(t, 5, st.MaxItems)

	v, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, h.Version+1, v)
	assert.Equal(t, 0, store.Len())
}

func TestClient_PasteAfterHistoryMoved(t *testing.T) {
	store := history.New("", 5)
	store.Add(history.NewText("picked"))
	paster := &pasteLog{got: make(chan history.Entry, 1)}
	c := serve(t, store, paster)

	h, err := c.List("", 0, 0)
	require.NoError(t, err)
	store.Add(history.NewText("newer"))

	err = c.Paste("", 0, 0, h.Version)
	assert.ErrorContains(t, err, "history changed")
	assert.Empty(t, paster.got)
}

func TestClient_ErrorReply(t *testing.T) {
	c := serve(t, history.New("", 5), nil)

	err := c.Paste("", 0, 0, 0)
	assert.ErrorContains(t, err, "disabled")
}

func TestClient_DialFailure(t *testing.T) {
	c := NewWithDialer(func() (net.Conn, error) { return nil, assert.AnError })
	_, err := c.Status()
	assert.ErrorIs(t, err, assert.AnError)
}
