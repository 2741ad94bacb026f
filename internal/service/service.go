// Package service answers IPC requests from the CLI tools and the picker on
// behalf of the daemon.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"go.klb.dev/cliprecall/internal/focus"
	"go.klb.dev/cliprecall/internal/history"
	"go.klb.dev/cliprecall/internal/message"
	"go.klb.dev/cliprecall/internal/wire"
)

const requestTimeout = 5 * time.Second

// Store is the part of history.Store the service reads and clears.
type Store interface {
	SnapshotVersion() ([]history.Entry, uint64)
	Version() uint64
	Len() int
	Clear()
	Save() error
	MaxItems() int
	Path() string
}

// Paster runs a paste-back sequence without blocking the caller.
type Paster interface {
	Dispatch(e history.Entry, target focus.Handle)
}

// Service maps IPC requests onto the store and the paste-back controller.
type Service struct {
	store     Store
	paster    Paster // nil = paste-back disabled
	clipboard string
}

// New returns a Service. paster may be nil when paste-back is unavailable;
// clipboardName is reported by STATUS.
func New(store Store, paster Paster, clipboardName string) *Service {
	return &Service{store: store, paster: paster, clipboard: clipboardName}
}

// Serve accepts connections on ln until ctx is cancelled. Each connection
// carries one request and is handled on its own goroutine.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Error("ipc accept failed", "err", err)
			continue
		}
		go s.handleConn(conn)
	}
}

func (s *Service) handleConn(conn net.Conn) {
	wc := wire.New(conn)
	defer wc.Close()

	wc.SetReadDeadline(requestTimeout)
	req, err := wc.ReadMsg()
	if err != nil {
		slog.Debug("ipc read failed", "err", err)
		return
	}
	wc.SetReadDeadline(0)

	if err := wc.WriteMsg(s.Handle(req)); err != nil {
		slog.Debug("ipc write failed", "type", req.Type, "err", err)
	}
}

// Handle answers a single request.
func (s *Service) Handle(req *message.Message) *message.Message {
	switch req.Type {
	case message.TypeList:
		return s.list(req)
	case message.TypeClear:
		return s.clear()
	case message.TypePaste:
		return s.paste(req)
	case message.TypeStatus:
		return s.status()
	default:
		return message.Errorf("unknown request type %q", req.Type)
	}
}

func (s *Service) list(req *message.Message) *message.Message {
	if req.Version != 0 && req.Version == s.store.Version() {
		return &message.Message{Type: message.TypeHistory, Version: req.Version, Unchanged: true}
	}

	filter, err := history.Matcher(req.Match)
	if err != nil {
		return message.Errorf("%v", err)
	}
	entries, version := s.store.SnapshotVersion()
	total := len(entries)
	entries = filter(entries, req.Query)
	if req.Limit > 0 && len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}
	return &message.Message{
		Type:    message.TypeHistory,
		Version: version,
		Total:   total,
		Entries: entries,
	}
}

func (s *Service) clear() *message.Message {
	s.store.Clear()
	if err := s.store.Save(); err != nil {
		slog.Error("history save failed", "err", err)
	}
	slog.Info("history cleared")
	return &message.Message{Type: message.TypeOK, Version: s.store.Version()}
}

func (s *Service) paste(req *message.Message) *message.Message {
	if s.paster == nil {
		return message.Errorf("paste-back is disabled on this daemon")
	}
	filter, err := history.Matcher(req.Match)
	if err != nil {
		return message.Errorf("%v", err)
	}
	entries, version := s.store.SnapshotVersion()
	if req.Version != 0 && req.Version != version {
		return message.Errorf("history changed since version %d (now %d), list again", req.Version, version)
	}
	entries = filter(entries, req.Query)
	if req.Index < 0 || req.Index >= len(entries) {
		return message.Errorf("index %d out of range (%d entries)", req.Index, len(entries))
	}
	s.paster.Dispatch(entries[req.Index], focus.Handle(req.Window))
	return &message.Message{Type: message.TypeOK}
}

func (s *Service) status() *message.Message {
	return &message.Message{
		Type: message.TypeStatusResponse,
		Status: &message.Status{
			Version:     s.store.Version(),
			Length:      s.store.Len(),
			MaxItems:    s.store.MaxItems(),
			HistoryFile: s.store.Path(),
			Clipboard:   s.clipboard,
			PasteBack:   s.paster != nil,
		},
	}
}
