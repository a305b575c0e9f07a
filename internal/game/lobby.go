package game

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/loteria-backend/internal"
	"github.com/scythe504/loteria-backend/internal/utils"
)

// =============================================================================
// ROOM REGISTRY
// =============================================================================

// WinRecorder receives every announced win once the room lock is released.
type WinRecorder interface {
	RecordWin(ctx context.Context, win internal.WinRecord) error
}

type nopRecorder struct{}

func (nopRecorder) RecordWin(context.Context, internal.WinRecord) error { return nil }

// Lobby owns every live room of the process. Lock order is always
// Lobby.mu before Room.Mu.
type Lobby struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room

	deck       []string
	rows, cols int
	maxPlayers int

	// only touched with mu held for writing
	rng *rand.Rand

	recorder      WinRecorder
	recordTimeout time.Duration
	recordWG      sync.WaitGroup
}

type Option func(*Lobby)

func WithBoardSize(rows, cols int) Option {
	return func(l *Lobby) {
		if rows > 0 && cols > 0 {
			l.rows, l.cols = rows, cols
		}
	}
}

// WithMaxPlayers caps the roster of a room. Zero means no cap.
func WithMaxPlayers(n int) Option {
	return func(l *Lobby) {
		if n >= 0 {
			l.maxPlayers = n
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(l *Lobby) { l.rng = rng }
}

func WithRecorder(rec WinRecorder) Option {
	return func(l *Lobby) {
		if rec != nil {
			l.recorder = rec
		}
	}
}

func NewLobby(deck []string, opts ...Option) *Lobby {
	l := &Lobby{
		rooms:         make(map[string]*internal.Room),
		deck:          slices.Clone(deck),
		rows:          internal.DefaultBoardRows,
		cols:          internal.DefaultBoardCols,
		recorder:      nopRecorder{},
		recordTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lobby) BoardSize() (rows, cols int) {
	return l.rows, l.cols
}

func (l *Lobby) Deck() []string {
	return slices.Clone(l.deck)
}

// CreateOrGetRoom returns the room with the given id, creating it when
// absent.
func (l *Lobby) CreateOrGetRoom(roomId string) *internal.Room {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.getOrCreateRoomLocked(roomId)
}

func (l *Lobby) getOrCreateRoomLocked(roomId string) *internal.Room {
	if room, exists := l.rooms[roomId]; exists {
		return room
	}

	room := &internal.Room{
		Id:          roomId,
		CreatedAt:   time.Now(),
		Rows:        l.rows,
		Cols:        l.cols,
		Patterns:    GenerateWinPatterns(l.rows, l.cols),
		DrawOrder:   utils.Shuffle(l.deck, l.rng),
		Drawn:       make(map[string]struct{}, len(l.deck)),
		History:     make([]string, 0, len(l.deck)),
		Players:     make(map[string]*internal.Player),
		PlayerOrder: make([]string, 0),
	}
	l.rooms[roomId] = room

	log.Info().
		Str("room", roomId).
		Int("cards", len(room.DrawOrder)).
		Int("patterns", len(room.Patterns)).
		Msg("[getOrCreateRoom] created room")
	return room
}

// Room looks up a live room.
func (l *Lobby) Room(roomId string) (*internal.Room, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	room, ok := l.rooms[roomId]
	return room, ok
}

func (l *Lobby) RoomCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rooms)
}

// Rooms summarizes every live room, sorted by id.
func (l *Lobby) Rooms() []internal.RoomSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]internal.RoomSummary, 0, len(l.rooms))
	for _, room := range l.rooms {
		room.Mu.Lock()
		out = append(out, room.Summary())
		room.Mu.Unlock()
	}
	slices.SortFunc(out, func(a, b internal.RoomSummary) int {
		return cmp.Compare(a.Id, b.Id)
	})
	return out
}

// GetJoinableRoom returns the id of a room that has a caller and a free
// seat, or "" when there is none.
func (l *Lobby) GetJoinableRoom() string {
	for _, summary := range l.Rooms() {
		if !summary.HasCaller {
			continue
		}
		if l.maxPlayers > 0 && summary.Players >= l.maxPlayers {
			continue
		}
		log.Debug().Str("room", summary.Id).Int("players", summary.Players).Msg("[GetJoinableRoom] found joinable room")
		return summary.Id
	}
	log.Debug().Msg("[GetJoinableRoom] no joinable room found")
	return ""
}

// Wait blocks until every pending win has been handed to the recorder.
func (l *Lobby) Wait() {
	l.recordWG.Wait()
}

func (l *Lobby) recordWin(win internal.WinRecord) {
	l.recordWG.Add(1)
	go func() {
		defer l.recordWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), l.recordTimeout)
		defer cancel()

		if err := l.recorder.RecordWin(ctx, win); err != nil {
			log.Error().Err(err).Str("room", win.RoomId).Str("player", win.Player).Msg("[recordWin] failed to record win")
		}
	}()
}
