package apierr

import (
	"errors"
	"net/http"

	"github.com/AeroX2/wordmarket/internal/api/response"
	"github.com/AeroX2/wordmarket/internal/model"
)

// ErrorResponse is the wire shape for every rejected request
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError maps an error to its HTTP response. Validation rejections
// carry their player-facing message; unknown rooms and players are 404;
// everything else is a fatal 500 with no detail leaked.
func WriteError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		response.JSON(w, http.StatusBadRequest, ErrorResponse{Error: ve.Message})
	case errors.Is(err, model.ErrRoomNotFound):
		response.JSON(w, http.StatusNotFound, ErrorResponse{Error: "Room not found."})
	case errors.Is(err, model.ErrPlayerNotFound):
		response.JSON(w, http.StatusNotFound, ErrorResponse{Error: "Player not found."})
	default:
		response.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error."})
	}
}

// WriteBadRequest writes a 400 with the given message
func WriteBadRequest(w http.ResponseWriter, message string) {
	response.JSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}

// WriteInternal writes an opaque 500
func WriteInternal(w http.ResponseWriter) {
	response.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error."})
}
