package game

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/loteria-backend/internal"
	"github.com/scythe504/loteria-backend/internal/utils"
)

// =============================================================================
// ROOM MEMBERSHIP
// =============================================================================

// Join seats player in roomId, creating the room on first join, and deals a
// fresh board from the full catalog. The first joiner asking to be caller
// while the seat is empty becomes the caller. A connection sitting in
// another room leaves it first; joining the same room again re-deals.
func (l *Lobby) Join(player *internal.Player, roomId, playerName string, wantsToBeCaller bool) error {
	roomId, err := utils.CleanName("room id", roomId, internal.MaxNameLength)
	if err != nil {
		return err
	}
	name, err := utils.CleanName("player name", playerName, internal.MaxNameLength)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	board, err := utils.Sample(l.deck, l.rows*l.cols, l.rng)
	if err != nil {
		return fmt.Errorf("deal %dx%d board: %w", l.rows, l.cols, err)
	}

	if existing, ok := l.rooms[roomId]; ok && player.RoomId != roomId && l.maxPlayers > 0 {
		existing.Mu.Lock()
		full := len(existing.Players) >= l.maxPlayers
		existing.Mu.Unlock()
		if full {
			log.Info().Str("room", roomId).Str("player", name).Msg("[Join] room is full")
			return ErrRoomFull
		}
	}

	if player.RoomId != "" && player.RoomId != roomId {
		l.leaveLocked(player.RoomId, player)
	}

	room := l.getOrCreateRoomLocked(roomId)

	room.Mu.Lock()
	defer room.Mu.Unlock()

	player.Username = name
	player.Board = board
	player.RoomId = roomId
	player.JoinedAt = time.Now()
	room.AddPlayer(player)

	if wantsToBeCaller && room.CallerId == "" {
		room.CallerId = player.Id
		log.Info().Str("room", roomId).Str("player", name).Msg("[Join] player is now the caller")
	}

	log.Info().
		Str("room", roomId).
		Str("conn", player.Id).
		Str("player", name).
		Int("players", len(room.Players)).
		Msg("[Join] player joined")

	room.Broadcast(internal.NewEvent(internal.EventPlayersUpdate, internal.PlayersUpdateData{
		Players: room.PlayerNames(),
	}))

	player.Send(internal.NewEvent(internal.EventBoard, internal.BoardData{
		Board: append([]string(nil), board...),
		Rows:  room.Rows,
		Cols:  room.Cols,
	}))
	player.Send(internal.NewEvent(internal.EventCantadorUpdate, internal.CantadorUpdateData{
		Cantador: room.CallerName(),
	}))
	player.Send(internal.NewEvent(internal.EventDrawHistory, internal.DrawHistoryData{
		Cards: append([]string{}, room.History...),
	}))

	return nil
}

// Leave takes player out of roomId. The remaining players get the new roster;
// the last one out destroys the room.
func (l *Lobby) Leave(roomId string, player *internal.Player) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.leaveLocked(roomId, player)
}

func (l *Lobby) leaveLocked(roomId string, player *internal.Player) {
	if player.RoomId == roomId {
		player.RoomId = ""
	}

	room, ok := l.rooms[roomId]
	if !ok {
		log.Debug().Str("room", roomId).Str("conn", player.Id).Msg("[Leave] room already gone")
		return
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	wasCaller := room.CallerId == player.Id
	if !room.RemovePlayer(player.Id) {
		log.Debug().Str("room", roomId).Str("conn", player.Id).Msg("[Leave] player not in room")
		return
	}

	remaining := len(room.Players)
	log.Info().
		Str("room", roomId).
		Str("player", player.Username).
		Bool("was_caller", wasCaller).
		Int("players_remaining", remaining).
		Msg("[Leave] player left")

	if remaining == 0 {
		delete(l.rooms, roomId)
		log.Info().Str("room", roomId).Int("drawn", len(room.Drawn)).Msg("[Leave] room is empty, removed")
		return
	}

	room.Broadcast(internal.NewEvent(internal.EventPlayersUpdate, internal.PlayersUpdateData{
		Players: room.PlayerNames(),
	}))
}
