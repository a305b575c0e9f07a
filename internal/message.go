package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Server -> client event types
const (
	EventBoard          = "board"
	EventCantadorUpdate = "cantadorUpdate"
	EventDrawHistory    = "drawHistory"
	EventPlayersUpdate  = "playersUpdate"
	EventCardDrawn      = "cardDrawn"
	EventNoMoreCards    = "noMoreCards"
	EventClaimResult    = "claimResult"
	EventSomeoneWon     = "someoneWon"
	EventError          = "error"
)

// Client -> server request types
const (
	RequestJoinRoom = "joinRoom"
	RequestDrawCard = "drawCard"
	RequestClaimWin = "claimWin"
)

type BoardData struct {
	Board []string `json:"board"`
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
}

type CantadorUpdateData struct {
	// nil when the room has no caller
	Cantador *string `json:"cantador"`
}

type DrawHistoryData struct {
	Cards []string `json:"cards"`
}

type PlayersUpdateData struct {
	Players []string `json:"players"`
}

type CardDrawnData struct {
	Card string `json:"card"`
}

type NoMoreCardsData struct{}

type ClaimResultData struct {
	Win     bool   `json:"win"`
	Pattern []int  `json:"pattern,omitempty"`
	Error   string `json:"error,omitempty"`
}

type SomeoneWonData struct {
	Player       string   `json:"player"`
	Pattern      []int    `json:"pattern"`
	WinningCards []string `json:"winningCards"`
}

type ErrorData struct {
	Message string `json:"message"`
}

type JoinRoomData struct {
	RoomId     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	IsCantador bool   `json:"isCantador"`
}

type DrawCardData struct {
	RoomId string `json:"roomId"`
}

type ClaimWinData struct {
	RoomId      string   `json:"roomId"`
	MarkedCards []string `json:"markedCards"`
}

func NewEvent[T any](eventType string, data T) Message[any] {
	return Message[any]{Type: eventType, Data: data}
}
