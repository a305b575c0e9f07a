package internal

import (
	"slices"

	"github.com/rs/zerolog/log"
)

// Methods (Room Struct)
// All of them expect r.Mu to be held by the caller.

// NextCard takes the first card of the draw order that has not been drawn
// yet and marks it drawn. ok is false once the order is exhausted.
func (r *Room) NextCard() (card string, ok bool) {
	for _, c := range r.DrawOrder {
		if _, drawn := r.Drawn[c]; drawn {
			continue
		}
		r.Drawn[c] = struct{}{}
		r.History = append(r.History, c)
		return c, true
	}
	return "", false
}

func (r *Room) IsDrawn(card string) bool {
	_, ok := r.Drawn[card]
	return ok
}

func (r *Room) Remaining() int {
	return len(r.DrawOrder) - len(r.Drawn)
}

func (r *Room) Phase() RoomPhase {
	if len(r.Players) == 0 {
		return PhaseEmpty
	}
	return PhaseActive
}

// PlayerNames lists display names in join order, each name once.
func (r *Room) PlayerNames() []string {
	names := make([]string, 0, len(r.PlayerOrder))
	for _, id := range r.PlayerOrder {
		player, ok := r.Players[id]
		if !ok || slices.Contains(names, player.Username) {
			continue
		}
		names = append(names, player.Username)
	}
	return names
}

func (r *Room) CallerName() *string {
	if r.CallerId == "" {
		return nil
	}
	caller, ok := r.Players[r.CallerId]
	if !ok {
		return nil
	}
	name := caller.Username
	return &name
}

func (r *Room) AddPlayer(player *Player) {
	if _, exists := r.Players[player.Id]; !exists {
		r.PlayerOrder = append(r.PlayerOrder, player.Id)
	}
	r.Players[player.Id] = player
}

// RemovePlayer drops the player from the roster. The caller slot is
// cleared, not handed over.
func (r *Room) RemovePlayer(playerId string) bool {
	if _, ok := r.Players[playerId]; !ok {
		return false
	}
	delete(r.Players, playerId)
	r.PlayerOrder = slices.DeleteFunc(r.PlayerOrder, func(id string) bool {
		return id == playerId
	})
	if r.CallerId == playerId {
		r.CallerId = ""
	}
	return true
}

// Broadcast queues msg for every player in join order. Players whose
// queue is full are closed; their read loop then takes them out of the room.
func (r *Room) Broadcast(msg Message[any]) int {
	sent := 0
	for _, id := range r.PlayerOrder {
		player := r.Players[id]
		if player == nil {
			continue
		}
		if !player.Send(msg) {
			log.Warn().
				Str("room", r.Id).
				Str("conn", player.Id).
				Str("event", msg.Type).
				Msg("[Broadcast] outbox full or closed, dropping connection")
			player.Close()
			continue
		}
		sent++
	}
	log.Debug().Str("room", r.Id).Str("event", msg.Type).Int("sent", sent).Msg("[Broadcast] done")
	return sent
}

func (r *Room) Summary() RoomSummary {
	return RoomSummary{
		Id:        r.Id,
		Players:   len(r.Players),
		Drawn:     len(r.Drawn),
		Remaining: r.Remaining(),
		HasCaller: r.CallerId != "",
		CreatedAt: r.CreatedAt,
	}
}
