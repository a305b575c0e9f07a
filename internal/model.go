package internal

import (
	"sync"
	"time"
)

const (
	DefaultBoardRows = 4
	DefaultBoardCols = 4
	MaxNameLength    = 64
)

type RoomPhase string

const (
	PhaseEmpty  RoomPhase = "empty"
	PhaseActive RoomPhase = "active"
)

type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}

type Room struct {
	Id        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Board geometry and the win shapes derived from it
	Rows     int     `json:"rows"`
	Cols     int     `json:"cols"`
	Patterns [][]int `json:"patterns"`

	// Draw state
	DrawOrder []string            `json:"-"`
	Drawn     map[string]struct{} `json:"-"`
	History   []string            `json:"history"`

	// Roster, keyed by connection id
	Players     map[string]*Player `json:"-"`
	PlayerOrder []string           `json:"player_order"`
	CallerId    string             `json:"caller_id,omitempty"`

	// Guards everything above once the room is shared
	Mu sync.Mutex `json:"-"`
}

// RoomSummary is the public view of a room used by the HTTP listing.
type RoomSummary struct {
	Id        string    `json:"id"`
	Players   int       `json:"players"`
	Drawn     int       `json:"drawn"`
	Remaining int       `json:"remaining"`
	HasCaller bool      `json:"has_caller"`
	CreatedAt time.Time `json:"created_at"`
}

// WinRecord is an announced win, as handed to the results ledger.
type WinRecord struct {
	Id           string    `json:"id"`
	RoomId       string    `json:"room_id"`
	Player       string    `json:"player"`
	Pattern      []int     `json:"pattern"`
	WinningCards []string  `json:"winning_cards"`
	DrawnCount   int       `json:"drawn_count"`
	WonAt        time.Time `json:"won_at"`
}
