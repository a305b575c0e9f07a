package game

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/loteria-backend/internal"
	"github.com/scythe504/loteria-backend/internal/utils"
)

// =============================================================================
// WIN CLAIMS
// =============================================================================

// ClaimWin validates the cards a player says it marked. Marked cards come
// from the client and are checked against the room's drawn set before the
// player's own board is matched against the room's patterns. The claimant
// always gets a claimResult; a valid claim is also announced to the room.
//
// ErrUnknownRoom and ErrUnknownPlayer mean nothing was sent.
func (l *Lobby) ClaimWin(roomId string, player *internal.Player, markedCards []string) (internal.ClaimResultData, error) {
	l.mu.RLock()

	room, ok := l.rooms[roomId]
	if !ok {
		l.mu.RUnlock()
		log.Debug().Str("room", roomId).Str("conn", player.Id).Msg("[ClaimWin] unknown room")
		return internal.ClaimResultData{}, ErrUnknownRoom
	}

	room.Mu.Lock()
	result, win, err := claimLocked(room, player, markedCards)
	room.Mu.Unlock()
	l.mu.RUnlock()

	if win != nil {
		l.recordWin(*win)
	}
	return result, err
}

func claimLocked(room *internal.Room, player *internal.Player, markedCards []string) (internal.ClaimResultData, *internal.WinRecord, error) {
	claimant, ok := room.Players[player.Id]
	if !ok {
		log.Debug().Str("room", room.Id).Str("conn", player.Id).Msg("[ClaimWin] unknown player")
		return internal.ClaimResultData{}, nil, ErrUnknownPlayer
	}

	marked := make(map[string]struct{}, len(markedCards))
	for _, card := range markedCards {
		marked[card] = struct{}{}
	}

	for card := range marked {
		if !room.IsDrawn(card) {
			result := internal.ClaimResultData{Win: false, Error: undrawnCardMessage}
			claimant.Send(internal.NewEvent(internal.EventClaimResult, result))
			log.Info().Str("room", room.Id).Str("player", claimant.Username).Str("card", card).Msg("[ClaimWin] rejected, undrawn card marked")
			return result, nil, ErrUndrawnCard
		}
	}

	pattern, found := findWinningPattern(claimant.Board, marked, room.Patterns)
	if !found {
		result := internal.ClaimResultData{Win: false}
		claimant.Send(internal.NewEvent(internal.EventClaimResult, result))
		log.Info().Str("room", room.Id).Str("player", claimant.Username).Int("marked", len(marked)).Msg("[ClaimWin] rejected, no pattern covered")
		return result, nil, ErrInvalidClaim
	}

	pattern = append([]int(nil), pattern...)
	winningCards := cardsAt(claimant.Board, pattern)

	result := internal.ClaimResultData{Win: true, Pattern: pattern}
	claimant.Send(internal.NewEvent(internal.EventClaimResult, result))
	room.Broadcast(internal.NewEvent(internal.EventSomeoneWon, internal.SomeoneWonData{
		Player:       claimant.Username,
		Pattern:      pattern,
		WinningCards: winningCards,
	}))

	log.Info().
		Str("room", room.Id).
		Str("player", claimant.Username).
		Ints("pattern", pattern).
		Strs("cards", winningCards).
		Msg("[ClaimWin] win announced")

	return result, &internal.WinRecord{
		Id:           utils.GenerateID(),
		RoomId:       room.Id,
		Player:       claimant.Username,
		Pattern:      pattern,
		WinningCards: winningCards,
		DrawnCount:   len(room.Drawn),
		WonAt:        time.Now().UTC(),
	}, nil
}
