package game

import (
	"github.com/rs/zerolog/log"
	"github.com/scythe504/loteria-backend/internal"
)

// =============================================================================
// CARD DRAWING
// =============================================================================

// DrawCard reveals the next card of the room's draw order to everyone in
// the room. Only the caller may draw. Once every card is out the room gets
// noMoreCards instead and nothing changes.
func (l *Lobby) DrawCard(roomId string, player *internal.Player) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	room, ok := l.rooms[roomId]
	if !ok {
		log.Debug().Str("room", roomId).Str("conn", player.Id).Msg("[DrawCard] unknown room")
		return ErrUnknownRoom
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.CallerId == "" || room.CallerId != player.Id {
		log.Info().Str("room", roomId).Str("conn", player.Id).Msg("[DrawCard] rejected, not the caller")
		return ErrUnauthorized
	}

	card, ok := room.NextCard()
	if !ok {
		log.Info().Str("room", roomId).Msg("[DrawCard] deck exhausted")
		room.Broadcast(internal.NewEvent(internal.EventNoMoreCards, internal.NoMoreCardsData{}))
		return nil
	}

	log.Info().
		Str("room", roomId).
		Str("card", card).
		Int("drawn", len(room.Drawn)).
		Int("remaining", room.Remaining()).
		Msg("[DrawCard] card drawn")

	room.Broadcast(internal.NewEvent(internal.EventCardDrawn, internal.CardDrawnData{Card: card}))
	return nil
}
