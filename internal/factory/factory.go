package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/AeroX2/wordmarket/internal/alarm"
	"github.com/AeroX2/wordmarket/internal/dependencies/clock"
	"github.com/AeroX2/wordmarket/internal/dependencies/random"
	"github.com/AeroX2/wordmarket/internal/services/board"
	"github.com/AeroX2/wordmarket/internal/services/dictionary"
	"github.com/AeroX2/wordmarket/internal/services/room"
	"github.com/AeroX2/wordmarket/internal/storage"
	"github.com/AeroX2/wordmarket/internal/storage/memory"
	redisstorage "github.com/AeroX2/wordmarket/internal/storage/redis"
	"github.com/AeroX2/wordmarket/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	BoardService      *board.Service
	Scheduler         *alarm.TimerScheduler
	RoomController    *room.Controller
	Hub               *ws.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, dictionary must be loaded manually
	DictionaryPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	dictService := dictionary.New(store)
	boardService := board.New(rnd)
	scheduler := alarm.NewTimerScheduler(clk, logger)
	roomController := room.NewController(store, boardService, dictService, clk, rnd, scheduler, logger)
	hub := ws.NewHub(logger)

	// The scheduler, controller, and hub form a cycle: wake-ups re-enter
	// the controller, and every committed mutation fans out via the hub.
	scheduler.Bind(roomController.HandleAlarm)
	roomController.SetBroadcaster(hub)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		BoardService:      boardService,
		Scheduler:         scheduler,
		RoomController:    roomController,
		Hub:               hub,
	}
}
