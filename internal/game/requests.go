package game

import (
	"encoding/json"
	"fmt"

	"github.com/scythe504/loteria-backend/internal"
)

// RequestKind enumerates what a client may ask of the server.
type RequestKind int

const (
	RequestUnknown RequestKind = iota
	RequestJoinRoom
	RequestDrawCard
	RequestClaimWin
)

func (k RequestKind) String() string {
	switch k {
	case RequestJoinRoom:
		return internal.RequestJoinRoom
	case RequestDrawCard:
		return internal.RequestDrawCard
	case RequestClaimWin:
		return internal.RequestClaimWin
	default:
		return "unknown"
	}
}

func parseRequestKind(s string) RequestKind {
	switch s {
	case internal.RequestJoinRoom:
		return RequestJoinRoom
	case internal.RequestDrawCard:
		return RequestDrawCard
	case internal.RequestClaimWin:
		return RequestClaimWin
	default:
		return RequestUnknown
	}
}

// Request is one decoded client frame. Exactly one payload is set, the one
// matching Kind.
type Request struct {
	Kind  RequestKind
	Join  internal.JoinRoomData
	Draw  internal.DrawCardData
	Claim internal.ClaimWinData
}

// ParseRequest decodes a {"type": ..., "data": ...} frame.
func ParseRequest(raw []byte) (Request, error) {
	var base internal.Message[json.RawMessage]
	if err := json.Unmarshal(raw, &base); err != nil {
		return Request{}, fmt.Errorf("%w: malformed message: %v", ErrInvalidArgument, err)
	}

	req := Request{Kind: parseRequestKind(base.Type)}

	var target any
	switch req.Kind {
	case RequestJoinRoom:
		target = &req.Join
	case RequestDrawCard:
		target = &req.Draw
	case RequestClaimWin:
		target = &req.Claim
	case RequestUnknown:
		return Request{}, fmt.Errorf("%w: %q", ErrUnknownRequest, base.Type)
	}

	if len(base.Data) == 0 || string(base.Data) == "null" {
		return Request{}, fmt.Errorf("%w: %s without data", ErrInvalidArgument, req.Kind)
	}
	if err := json.Unmarshal(base.Data, target); err != nil {
		return Request{}, fmt.Errorf("%w: bad %s data: %v", ErrInvalidArgument, req.Kind, err)
	}
	return req, nil
}
