package server

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/scythe504/loteria-backend/internal"
	"github.com/scythe504/loteria-backend/internal/config"
	"github.com/scythe504/loteria-backend/internal/game"
)

// WinHistory serves the recorded wins. A nil WinHistory disables /wins.
type WinHistory interface {
	RecentWins(ctx context.Context, roomId string, limit int) ([]internal.WinRecord, error)
}

type Server struct {
	lobby          *game.Lobby
	gateway        *game.Gateway
	wins           WinHistory
	allowedOrigins []string
	allowAll       bool
}

func New(cfg config.Config, lobby *game.Lobby, wins WinHistory) *Server {
	return &Server{
		lobby: lobby,
		gateway: game.NewGateway(lobby, game.GatewayConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			RateLimit:      cfg.WSRateLimit,
			RateBurst:      cfg.WSRateBurst,
		}),
		wins:           wins,
		allowedOrigins: slices.Clone(cfg.AllowedOrigins),
		allowAll:       len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*"),
	}
}

// NewServer returns the HTTP server for the whole API.
func NewServer(cfg config.Config, lobby *game.Lobby, wins WinHistory) *http.Server {
	s := New(cfg, lobby, wins)

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.RegisterRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}
}
