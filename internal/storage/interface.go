package storage

import (
	"context"
	"errors"

	"github.com/AeroX2/wordmarket/internal/model"
)

// ErrDictionaryNotLoaded is returned when no dictionary has been stored yet
var ErrDictionaryNotLoaded = errors.New("dictionary not loaded")

// Storage defines the interface for data persistence. Rooms are written as
// one full snapshot per room code, overwritten atomically on every
// state-changing action.
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, code model.RoomCode) error
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
