package internal

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const OutboxSize = 256

type Player struct {
	Id       string          `json:"id"`
	Conn     *websocket.Conn `json:"-"`
	Username string          `json:"username"`
	Board    []string        `json:"board"`

	// Room the connection currently sits in, empty before joinRoom
	RoomId   string    `json:"room_id,omitempty"`
	JoinedAt time.Time `json:"joined_at"`

	outbox    chan Message[any]
	done      chan struct{}
	closeOnce sync.Once
	writeMu   sync.Mutex
}

// NewPlayer wraps a connection. conn may be nil for players that are
// only driven through their outbox.
func NewPlayer(id string, conn *websocket.Conn) *Player {
	return &Player{
		Id:     id,
		Conn:   conn,
		outbox: make(chan Message[any], OutboxSize),
		done:   make(chan struct{}),
	}
}

// Send queues msg for the write pump without blocking. It reports false
// when the player is closed or its queue is full.
func (p *Player) Send(msg Message[any]) bool {
	select {
	case <-p.done:
		return false
	default:
	}

	select {
	case p.outbox <- msg:
		return true
	default:
		return false
	}
}

func (p *Player) Outbox() <-chan Message[any] {
	return p.outbox
}

func (p *Player) Done() <-chan struct{} {
	return p.done
}

func (p *Player) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
		if p.Conn != nil {
			p.Conn.Close()
		}
	})
}

func (p *Player) SafeWriteJSON(v any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteJSON(v)
}

func (p *Player) SafeWriteControl(messageType int, data []byte, deadline time.Time) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.Conn.WriteControl(messageType, data, deadline)
}
