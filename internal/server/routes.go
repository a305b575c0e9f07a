package server

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/scythe504/loteria-backend/internal"
	"github.com/scythe504/loteria-backend/internal/utils"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(s.logMiddleware)
	r.Use(s.corsMiddleware)

	r.HandleFunc("/", s.HelloWorldHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/healthz", s.HealthHandler).Methods(http.MethodGet, http.MethodOptions)

	r.HandleFunc("/rooms", s.ListRooms).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/rooms-available", s.GetRoomToJoin).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/wins", s.RecentWins).Methods(http.MethodGet, http.MethodOptions)

	r.HandleFunc("/ws", s.gateway.HandleWebSocket)

	return r
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("[http] request")
	})
}

// CORS middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case s.allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.allowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")

		// the gateway does its own origin check
		if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) HelloWorldHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "¡Lotería!"})
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"rooms":  s.lobby.RoomCount(),
	})
}

func (s *Server) ListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lobby.Rooms())
}

func (s *Server) GetRoomToJoin(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now().UnixMilli()
	roomId := s.lobby.GetJoinableRoom()

	var resp internal.Response
	if roomId != "" {
		resp = internal.Response{
			StatusCode:    http.StatusOK,
			RespStartTime: startTime,
			Data:          roomId,
		}
	} else {
		resp = internal.Response{
			StatusCode:    http.StatusNotFound,
			RespStartTime: startTime,
			Data:          "No joinable rooms available",
		}
	}

	writeResponse(w, resp)
}

// RecentWins lists recorded wins, optionally for one room.
func (s *Server) RecentWins(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now().UnixMilli()

	if s.wins == nil {
		writeResponse(w, internal.Response{
			StatusCode:    http.StatusServiceUnavailable,
			RespStartTime: startTime,
			Data:          "win history is not enabled",
		})
		return
	}

	roomId := r.URL.Query().Get("room")
	if roomId != "" {
		var err error
		if roomId, err = utils.CleanName("room", roomId, internal.MaxNameLength); err != nil {
			writeResponse(w, internal.Response{StatusCode: http.StatusBadRequest, RespStartTime: startTime, Data: err.Error()})
			return
		}
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeResponse(w, internal.Response{StatusCode: http.StatusBadRequest, RespStartTime: startTime, Data: "limit must be a positive integer"})
			return
		}
		limit = v
	}

	wins, err := s.wins.RecentWins(r.Context(), roomId, limit)
	if err != nil {
		log.Error().Err(err).Str("room", roomId).Msg("[RecentWins] query failed")
		writeResponse(w, internal.Response{StatusCode: http.StatusInternalServerError, RespStartTime: startTime, Data: "could not load wins"})
		return
	}

	writeResponse(w, internal.Response{StatusCode: http.StatusOK, RespStartTime: startTime, Data: wins})
}

// writeResponse stamps the timing fields and sends resp with its own status.
func writeResponse(w http.ResponseWriter, resp internal.Response) {
	endTime := time.Now().UnixMilli()
	resp.RespEndTime = endTime
	resp.NetRespTime = endTime - resp.RespStartTime
	writeJSON(w, resp.StatusCode, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("[writeJSON] error encoding response")
	}
}
