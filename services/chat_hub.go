package services

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ChatSession is one live follow-up conversation over a websocket.
type ChatSession struct {
	id   uint64
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes; ping loop and replies share the conn
}

func (s *ChatSession) Send(payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(payload)
}

// ChatHub tracks open chat sockets and keeps them alive through proxies.
type ChatHub struct {
	mu       sync.RWMutex
	nextID   uint64
	sessions map[uint64]*ChatSession
}

func NewChatHub() *ChatHub {
	return &ChatHub{sessions: make(map[uint64]*ChatSession)}
}

func (h *ChatHub) Register(conn *websocket.Conn) *ChatSession {
	h.mu.Lock()
	h.nextID++
	s := &ChatSession{id: h.nextID, conn: conn}
	h.sessions[s.id] = s
	h.mu.Unlock()

	go h.keepAlive(s)
	return s
}

func (h *ChatHub) Unregister(s *ChatSession) {
	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()
	_ = s.conn.Close()
}

func (h *ChatHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// keepAlive pings until the session leaves the registry or the write fails.
func (h *ChatHub) keepAlive(s *ChatSession) {
	t := time.NewTicker(25 * time.Second)
	defer t.Stop()
	for range t.C {
		h.mu.RLock()
		_, open := h.sessions[s.id]
		h.mu.RUnlock()
		if !open {
			return
		}

		s.mu.Lock()
		err := s.conn.WriteMessage(websocket.PingMessage, nil)
		s.mu.Unlock()
		if err != nil {
			return
		}
	}
}
