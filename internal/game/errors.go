package game

import (
	"errors"
	"fmt"

	"github.com/scythe504/loteria-backend/internal/utils"
)

var (
	ErrUnauthorized    = errors.New("only the caller can draw cards")
	ErrInvalidClaim    = errors.New("claim does not cover a winning pattern")
	ErrUndrawnCard     = fmt.Errorf("%w: marked undrawn card(s)", ErrInvalidClaim)
	ErrUnknownRoom     = errors.New("room not found")
	ErrUnknownPlayer   = errors.New("player not in room")
	ErrRoomFull        = errors.New("room is full")
	ErrInvalidArgument = utils.ErrInvalidArgument
	ErrUnknownRequest  = errors.New("unknown request type")
	ErrRateLimited     = errors.New("too many requests, slow down")
)

// undrawnCardMessage is what the claimant sees when marking a card that has
// not been called.
const undrawnCardMessage = "marked undrawn card(s)"
