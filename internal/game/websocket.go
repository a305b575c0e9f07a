package game

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/scythe504/loteria-backend/internal"
	"github.com/scythe504/loteria-backend/internal/utils"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
)

// GatewayConfig tunes the per-connection limits of the gateway.
type GatewayConfig struct {
	AllowedOrigins []string
	// inbound requests per second and burst for one connection
	RateLimit float64
	RateBurst int
}

// Gateway upgrades HTTP requests to WebSockets and routes client requests
// into the lobby. It holds no game state of its own.
type Gateway struct {
	lobby    *Lobby
	upgrader websocket.Upgrader
	limit    rate.Limit
	burst    int
}

func NewGateway(lobby *Lobby, cfg GatewayConfig) *Gateway {
	g := &Gateway{
		lobby: lobby,
		limit: rate.Limit(cfg.RateLimit),
		burst: cfg.RateBurst,
	}
	if cfg.RateLimit <= 0 {
		g.limit = rate.Inf
	}
	if g.burst <= 0 {
		g.burst = 1
	}

	allowAll := len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*")
	origins := slices.Clone(cfg.AllowedOrigins)
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return allowAll || origin == "" || slices.Contains(origins, origin)
		},
	}
	return g
}

// =============================================================================
// WEBSOCKET CONNECTION HANDLING
// =============================================================================

// HandleWebSocket upgrades the connection and serves it until it closes.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("[HandleWebSocket] upgrade failed")
		return
	}

	player := internal.NewPlayer(utils.GenerateID(), conn)
	log.Info().Str("conn", player.Id).Str("remote", r.RemoteAddr).Msg("[HandleWebSocket] connection opened")

	go g.writePump(player)
	g.readPump(player)
}

// readPump reads client frames until the connection fails, then leaves the
// player's room.
func (g *Gateway) readPump(player *internal.Player) {
	defer func() {
		if player.RoomId != "" {
			g.lobby.Leave(player.RoomId, player)
		}
		player.Close()
		log.Info().Str("conn", player.Id).Str("player", player.Username).Msg("[readPump] connection closed")
	}()

	conn := player.Conn
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	limiter := rate.NewLimiter(g.limit, g.burst)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("conn", player.Id).Msg("[readPump] unexpected close")
			}
			return
		}

		if !limiter.Allow() {
			sendError(player, ErrRateLimited)
			continue
		}

		req, err := ParseRequest(raw)
		if err != nil {
			log.Debug().Err(err).Str("conn", player.Id).Msg("[readPump] rejected frame")
			sendError(player, err)
			continue
		}

		g.dispatch(player, req)
	}
}

// writePump drains the player's outbox onto the socket and keeps the
// connection alive with pings.
func (g *Gateway) writePump(player *internal.Player) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		player.Close()
	}()

	for {
		select {
		case msg := <-player.Outbox():
			player.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := player.SafeWriteJSON(msg); err != nil {
				log.Warn().Err(err).Str("conn", player.Id).Str("event", msg.Type).Msg("[writePump] write failed")
				return
			}
		case <-ticker.C:
			if err := player.SafeWriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Debug().Err(err).Str("conn", player.Id).Msg("[writePump] ping failed")
				return
			}
		case <-player.Done():
			return
		}
	}
}

// dispatch routes one request into the lobby.
func (g *Gateway) dispatch(player *internal.Player, req Request) {
	log.Debug().Str("conn", player.Id).Stringer("kind", req.Kind).Msg("[dispatch] request")

	switch req.Kind {
	case RequestJoinRoom:
		if err := g.lobby.Join(player, req.Join.RoomId, req.Join.PlayerName, req.Join.IsCantador); err != nil {
			log.Info().Err(err).Str("conn", player.Id).Str("room", req.Join.RoomId).Msg("[dispatch] join failed")
			sendError(player, err)
		}

	case RequestDrawCard:
		err := g.lobby.DrawCard(req.Draw.RoomId, player)
		switch {
		case err == nil, errors.Is(err, ErrUnknownRoom):
		default:
			sendError(player, err)
		}

	case RequestClaimWin:
		// the claimant already got its claimResult
		if _, err := g.lobby.ClaimWin(req.Claim.RoomId, player, req.Claim.MarkedCards); err != nil {
			log.Debug().Err(err).Str("conn", player.Id).Str("room", req.Claim.RoomId).Msg("[dispatch] claim not won")
		}

	case RequestUnknown:
		sendError(player, ErrUnknownRequest)
	}
}

func sendError(player *internal.Player, err error) {
	player.Send(internal.NewEvent(internal.EventError, internal.ErrorData{Message: clientMessage(err)}))
}

// clientMessage turns an error into the text shown to the requester.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized.Error()
	case errors.Is(err, ErrRoomFull):
		return ErrRoomFull.Error()
	case errors.Is(err, ErrRateLimited):
		return ErrRateLimited.Error()
	case errors.Is(err, ErrUnknownRequest), errors.Is(err, ErrInvalidArgument):
		return err.Error()
	default:
		return "something went wrong"
	}
}
