package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AeroX2/wordmarket/internal/api/apierr"
	"github.com/AeroX2/wordmarket/internal/api/request"
	"github.com/AeroX2/wordmarket/internal/api/response"
	"github.com/AeroX2/wordmarket/internal/model"
	"github.com/AeroX2/wordmarket/internal/services/room"
)

// RoomHandler translates HTTP requests into room controller actions
type RoomHandler struct {
	controller *room.Controller
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(controller *room.Controller) *RoomHandler {
	return &RoomHandler{controller: controller}
}

// JoinedResponse is returned by create and join: the caller's identity
// plus the room state
type JoinedResponse struct {
	PlayerID model.PlayerID     `json:"playerId"`
	State    model.RoomSnapshot `json:"state"`
}

// StateResponse is returned by every other state-changing action
type StateResponse struct {
	OK    bool               `json:"ok"`
	State model.RoomSnapshot `json:"state"`
}

func roomCode(r *http.Request) model.RoomCode {
	return model.RoomCode(mux.Vars(r)["code"])
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apierr.WriteBadRequest(w, "Invalid request body.")
		return false
	}
	return true
}

// Create handles POST /rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if !decodeBody(w, r, &req) {
		return
	}

	playerID, state, err := h.controller.CreateRoom(r.Context(), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, JoinedResponse{PlayerID: playerID, State: state})
}

// Join handles POST /rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRoomRequest
	if !decodeBody(w, r, &req) {
		return
	}

	playerID, state, err := h.controller.JoinRoom(r.Context(), roomCode(r), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, JoinedResponse{PlayerID: playerID, State: state})
}

// GetState handles GET /rooms/{code}/state
func (h *RoomHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.controller.GetSnapshot(r.Context(), roomCode(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]model.RoomSnapshot{"state": state})
}

// ConfigureRounds handles POST /rooms/{code}/configure-rounds
func (h *RoomHandler) ConfigureRounds(w http.ResponseWriter, r *http.Request) {
	var req request.ConfigureRoundsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TotalRounds == nil {
		apierr.WriteBadRequest(w, "totalRounds is required.")
		return
	}

	state, err := h.controller.ConfigureRounds(r.Context(), roomCode(r), *req.TotalRounds)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, StateResponse{OK: true, State: state})
}

// Start handles POST /rooms/{code}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartRequest
	if !decodeBody(w, r, &req) {
		return
	}

	state, err := h.controller.Advance(r.Context(), roomCode(r), model.PlayerID(req.PlayerID), req.TotalRounds)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, StateResponse{OK: true, State: state})
}

// PredictionBet handles POST /rooms/{code}/prediction-bet
func (h *RoomHandler) PredictionBet(w http.ResponseWriter, r *http.Request) {
	var req request.PredictionBetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// Missing numbers fall below the validation thresholds, so absent and
	// invalid values reject with the same messages.
	input := room.PredictionBetInput{
		BettorID:       model.PlayerID(req.BettorID),
		Skip:           req.Skip,
		TargetPlayerID: model.PlayerID(req.TargetPlayerID),
		PredictedWords: -1,
		Stake:          -1,
	}
	if req.PredictedWords != nil {
		input.PredictedWords = *req.PredictedWords
	}
	if req.Stake != nil {
		input.Stake = *req.Stake
	}

	state, err := h.controller.PlacePredictionBet(r.Context(), roomCode(r), input)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, StateResponse{OK: true, State: state})
}

// DraftPick handles POST /rooms/{code}/draft-pick
func (h *RoomHandler) DraftPick(w http.ResponseWriter, r *http.Request) {
	var req request.DraftPickRequest
	if !decodeBody(w, r, &req) {
		return
	}

	state, err := h.controller.SubmitDraftPick(r.Context(), roomCode(r), model.PlayerID(req.PlayerID), model.LetterID(req.LetterID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, StateResponse{OK: true, State: state})
}

// AuctionBid handles POST /rooms/{code}/auction-bid
func (h *RoomHandler) AuctionBid(w http.ResponseWriter, r *http.Request) {
	var req request.AuctionBidRequest
	if !decodeBody(w, r, &req) {
		return
	}

	stake := 0
	if req.Stake != nil {
		stake = *req.Stake
	}

	state, err := h.controller.SubmitAuctionBid(r.Context(), roomCode(r), model.PlayerID(req.PlayerID), stake)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, StateResponse{OK: true, State: state})
}

// SubmitWord handles POST /rooms/{code}/submit
func (h *RoomHandler) SubmitWord(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitWordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.controller.SubmitWord(r.Context(), roomCode(r), model.PlayerID(req.PlayerID), req.Word)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if !result.OK {
		status = http.StatusBadRequest
	}
	response.JSON(w, status, result)
}
