package room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/AeroX2/wordmarket/internal/alarm"
	"github.com/AeroX2/wordmarket/internal/dependencies/clock"
	"github.com/AeroX2/wordmarket/internal/dependencies/random"
	"github.com/AeroX2/wordmarket/internal/model"
	"github.com/AeroX2/wordmarket/internal/services/board"
	"github.com/AeroX2/wordmarket/internal/services/dictionary"
	"github.com/AeroX2/wordmarket/internal/storage"
)

const (
	roomCodeLength     = 6
	roomCodeAlphabet   = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	playerIDLength     = 12
	playerIDAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"
	letterIDRandLength = 6
	letterIDAlphabet   = "abcdef0123456789"

	maxCodeAttempts = 10
)

// Broadcaster delivers snapshots to every live connection on a room.
// Sends are fire-and-forget; delivery failures never surface here.
type Broadcaster interface {
	BroadcastState(code model.RoomCode, state model.RoomSnapshot)
}

// Controller owns every room's state machine. All mutation for one room is
// serialized through its handle mutex so that each action is an atomic
// validate-mutate-persist-broadcast turn; the persist always commits
// before the broadcast goes out.
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	dictionary   dictionary.ServiceInterface
	clock        clock.Clock
	random       random.Random
	scheduler    alarm.Scheduler
	logger       *slog.Logger

	broadcaster Broadcaster

	mu    sync.Mutex
	rooms map[model.RoomCode]*roomHandle
}

// roomHandle serializes access to one room's in-memory state
type roomHandle struct {
	mu   sync.Mutex
	room *model.Room
}

// NewController creates a new room controller
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	dictionary dictionary.ServiceInterface,
	clock clock.Clock,
	random random.Random,
	scheduler alarm.Scheduler,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		dictionary:   dictionary,
		clock:        clock,
		random:       random,
		scheduler:    scheduler,
		logger:       logger,
		rooms:        make(map[model.RoomCode]*roomHandle),
	}
}

// SetBroadcaster wires the live-connection fanout. Separate from
// construction because the fanout hub needs the controller for inbound
// messages.
func (c *Controller) SetBroadcaster(b Broadcaster) {
	c.broadcaster = b
}

// CreateRoom creates a room with a fresh code and the host as its first
// player. It returns the host's player id with the initial snapshot.
func (c *Controller) CreateRoom(ctx context.Context, hostName string) (model.PlayerID, model.RoomSnapshot, error) {
	code, err := c.generateRoomCode(ctx)
	if err != nil {
		return "", model.RoomSnapshot{}, err
	}

	room := model.NewRoom(code)
	player := c.addPlayer(room, hostName)

	if err := c.persist(ctx, room); err != nil {
		return "", model.RoomSnapshot{}, err
	}

	c.mu.Lock()
	c.rooms[code] = &roomHandle{room: room}
	c.mu.Unlock()

	c.logger.Info("room created",
		slog.String("room", string(code)),
		slog.String("host", string(player.ID)),
	)

	c.broadcast(room)
	return player.ID, room.Snapshot(), nil
}

// JoinRoom adds a player to an existing room. Players can join at any
// phase; a mid-round joiner simply has no extra letter or words yet.
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, name string) (model.PlayerID, model.RoomSnapshot, error) {
	h, err := c.acquire(ctx, code)
	if err != nil {
		return "", model.RoomSnapshot{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	player := c.addPlayer(h.room, name)
	if err := c.commit(ctx, h.room); err != nil {
		return "", model.RoomSnapshot{}, err
	}

	c.logger.Info("player joined",
		slog.String("room", string(code)),
		slog.String("player", string(player.ID)),
	)

	return player.ID, h.room.Snapshot(), nil
}

// GetSnapshot returns the room's current externally visible state
func (c *Controller) GetSnapshot(ctx context.Context, code model.RoomCode) (model.RoomSnapshot, error) {
	h, err := c.acquire(ctx, code)
	if err != nil {
		return model.RoomSnapshot{}, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.room.Snapshot(), nil
}

// ValidatePlayer checks that a player belongs to the room. Used by the
// live-connection handshake before registering a connection.
func (c *Controller) ValidatePlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	h, err := c.acquire(ctx, code)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.room.FindPlayer(playerID) == nil {
		return model.NewValidationError("Invalid player.")
	}
	return nil
}

// HandleAlarm is the scheduler's wake-up entry point. A firing for a phase
// that already ended through player actions is a no-op.
func (c *Controller) HandleAlarm(code model.RoomCode) {
	ctx := context.Background()

	h, err := c.acquire(ctx, code)
	if err != nil {
		c.logger.Error("alarm fired for unloadable room",
			slog.String("room", string(code)),
			slog.String("error", err.Error()),
		)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := c.runDueAlarm(ctx, h.room); err != nil {
		c.logger.Error("alarm handling failed",
			slog.String("room", string(code)),
			slog.String("error", err.Error()),
		)
	}
}

// runDueAlarm dispatches an elapsed deadline to the phase's resolution
// step. Callers must hold the room's handle lock.
func (c *Controller) runDueAlarm(ctx context.Context, room *model.Room) error {
	if !room.DeadlinePassed(c.clock.Now()) {
		return nil
	}

	switch room.Phase {
	case model.PhaseLetterDraft:
		c.resolveDraftPhase(room)
	case model.PhaseLetterAuction:
		c.resolveAuctionPhase(room)
	case model.PhasePrediction:
		c.startActiveRound(room)
	case model.PhaseActive:
		c.finishActiveRound(room)
	default:
		return nil
	}

	return c.commit(ctx, room)
}

// acquire returns the serialized handle for a room, loading it from
// storage on first touch. A freshly loaded room re-arms its wake-up timer
// from the persisted deadline, or finalizes immediately when the deadline
// already elapsed while no process owned the room.
func (c *Controller) acquire(ctx context.Context, code model.RoomCode) (*roomHandle, error) {
	c.mu.Lock()
	if h, ok := c.rooms[code]; ok {
		c.mu.Unlock()
		return h, nil
	}
	c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	room.UpdateStatusFromPhase()

	c.mu.Lock()
	if h, ok := c.rooms[code]; ok {
		// Lost the load race; the winner already recovered timers.
		c.mu.Unlock()
		return h, nil
	}
	h := &roomHandle{room: room}
	c.rooms[code] = h
	c.mu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	if room.EndsAt != nil {
		deadline := time.UnixMilli(*room.EndsAt)
		if c.clock.Now().Before(deadline) {
			c.scheduler.Set(code, deadline)
		} else if err := c.runDueAlarm(ctx, room); err != nil {
			return nil, err
		}
	}

	c.logger.Info("room restored from storage",
		slog.String("room", string(code)),
		slog.String("phase", string(room.Phase)),
	)

	return h, nil
}

// commit persists the room and, only after the write succeeds, fans out
// the new snapshot. A storage failure is fatal to the triggering action
// and suppresses the broadcast so clients never see uncommitted state.
func (c *Controller) commit(ctx context.Context, room *model.Room) error {
	if err := c.persist(ctx, room); err != nil {
		return err
	}
	c.broadcast(room)
	return nil
}

func (c *Controller) persist(ctx context.Context, room *model.Room) error {
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		c.logger.Error("failed to save room",
			slog.String("room", string(room.Code)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (c *Controller) broadcast(room *model.Room) {
	if c.broadcaster == nil {
		return
	}
	c.broadcaster.BroadcastState(room.Code, room.Snapshot())
}

func (c *Controller) addPlayer(room *model.Room, name string) *model.Player {
	id := model.PlayerID(c.random.String(playerIDLength, playerIDAlphabet))
	player := model.NewPlayer(id, name)
	room.Players = append(room.Players, player)
	return player
}

func (c *Controller) generateRoomCode(ctx context.Context) (model.RoomCode, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := model.RoomCode(c.random.String(roomCodeLength, roomCodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", model.ErrRoomCodeExhausted
}
