package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AeroX2/wordmarket/internal/api/apierr"
	"github.com/AeroX2/wordmarket/internal/api/handler"
	"github.com/AeroX2/wordmarket/internal/api/response"
	"github.com/AeroX2/wordmarket/internal/middleware"
	"github.com/AeroX2/wordmarket/internal/services/room"
	"github.com/AeroX2/wordmarket/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	RoomController *room.Controller
	Hub            *ws.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomController)
	wsHandler := ws.NewHandler(cfg.Hub, cfg.RoomController, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, panicHandler)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/state", roomHandler.GetState).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}/configure-rounds", roomHandler.ConfigureRounds).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/start", roomHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/prediction-bet", roomHandler.PredictionBet).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/draft-pick", roomHandler.DraftPick).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/auction-bid", roomHandler.AuctionBid).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{code}/submit", roomHandler.SubmitWord).Methods(http.MethodPost)

	// The live connection bypasses the logging middleware so the hijacked
	// connection's lifetime isn't reported as one giant request.
	r.Handle("/api/v1/rooms/{code}/ws", wsHandler).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteInternal(w)
}
