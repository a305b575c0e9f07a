package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/scythe504/loteria-backend/internal/config"
	"github.com/scythe504/loteria-backend/internal/game"
	"github.com/scythe504/loteria-backend/internal/logger"
	"github.com/scythe504/loteria-backend/internal/server"
	"github.com/scythe504/loteria-backend/internal/storage"
	"github.com/scythe504/loteria-backend/internal/utils"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deck, err := loadDeck(cfg.DeckPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DeckPath).Msg("failed to load deck")
	}

	opts := []game.Option{
		game.WithBoardSize(cfg.BoardRows, cfg.BoardCols),
		game.WithMaxPlayers(cfg.MaxPlayersPerRoom),
	}

	var wins server.WinHistory
	if cfg.DatabaseURL != "" {
		if err := storage.Migrate(ctx, cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		repo, err := storage.NewPostgresRepo(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer repo.Close()

		opts = append(opts, game.WithRecorder(repo))
		wins = repo
	} else {
		log.Warn().Msg("DATABASE_URL not set, wins will not be recorded")
	}

	lobby := game.NewLobby(deck, opts...)
	httpServer := server.NewServer(cfg, lobby, wins)

	go func() {
		rows, cols := lobby.BoardSize()
		log.Info().
			Str("addr", httpServer.Addr).
			Int("cards", len(deck)).
			Int("rows", rows).
			Int("cols", cols).
			Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("couldn't start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("SIGTERM or SIGINT received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// let in-flight wins reach the ledger before the pool closes
	lobby.Wait()
	log.Info().Msg("shutting down now")
}

func loadDeck(path string) ([]string, error) {
	if path == "" {
		return utils.DefaultDeck()
	}
	return utils.LoadDeck(path)
}
