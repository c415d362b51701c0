package redis

import (
	"fmt"

	"github.com/AeroX2/wordmarket/internal/model"
)

// Key prefix for all room-engine data
const keyPrefix = "wordmarket"

// roomKey returns the Redis key holding a room's full snapshot
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// dictionaryKey returns the Redis key for the dictionary word list
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
