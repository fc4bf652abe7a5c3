package world

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync/atomic"

	"saltpeter.ai/internal/persistence/snapshot"
	"saltpeter.ai/internal/protocol"
	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/nitrebed"
	"saltpeter.ai/internal/sim/world/kernel/model"
	"saltpeter.ai/internal/sim/world/terrain/store"
)

type Vec3i = model.Vec3i

type JoinRequest struct {
	Name string
	Out  chan []byte
	Resp chan JoinResponse
}

type JoinResponse struct {
	Welcome protocol.WelcomeMsg
}

type ActionEnvelope struct {
	ActorID string
	Act     protocol.ActMsg
}

type RecordedJoin struct {
	ActorID string `json:"actor_id"`
	Name    string `json:"name"`
}

// World is a single-threaded authoritative simulation.
// All state must be accessed only from the world loop goroutine.
type World struct {
	cfg      WorldConfig
	log      *log.Logger
	catalogs *catalogs.Catalogs
	registry *nitrebed.Registry

	tick atomic.Uint64
	cal  Calendar

	chunks *store.ChunkStore
	air    uint16

	// Bed state keyed by block position. An entry exists exactly while the
	// block at that position is a registered bed type.
	beds     map[Vec3i]*nitrebed.BedInstance
	farmland map[Vec3i]float64
	sched    *bedScheduler

	actors  map[string]*Actor
	clients map[string]*clientState

	inbox chan ActionEnvelope
	join  chan JoinRequest
	leave chan string
	stop  chan struct{}

	nextActorNum atomic.Uint64

	// Optional sinks (may be nil). Implemented in internal/persistence/*.
	eventSinks   []EventSink
	tickLogger   TickLogger
	snapshotSink chan<- snapshot.SnapshotV1

	// Events emitted during the current tick, flushed to sinks at its end.
	pending []BedEvent

	stats   *BedStats
	metrics atomic.Value
}

type clientState struct {
	Out chan []byte
}

func New(cfg WorldConfig, cats *catalogs.Catalogs, logger *log.Logger) (*World, error) {
	if cats == nil {
		return nil, fmt.Errorf("nil catalogs")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cfg.applyDefaults()

	b := func(id string) (uint16, error) {
		v, ok := cats.BlockID(id)
		if !ok {
			return 0, fmt.Errorf("missing block id in palette: %s", id)
		}
		return v, nil
	}
	air, err := b("AIR")
	if err != nil {
		return nil, err
	}
	bedrock, err := b("BEDROCK")
	if err != nil {
		return nil, err
	}
	stone, err := b("STONE")
	if err != nil {
		return nil, err
	}
	soil, err := b("SOIL_LOW")
	if err != nil {
		return nil, err
	}
	farmland, ok := cats.BlockID("FARMLAND")
	if !ok {
		farmland = soil
	}

	gen := store.WorldGen{
		Seed:                    cfg.Seed,
		BoundaryR:               cfg.BoundaryR,
		Height:                  cfg.Height,
		GroundY:                 cfg.GroundY,
		SpawnClearRadius:        cfg.SpawnClearRadius,
		FarmlandClusterPermille: uint64(cfg.FarmlandClusterPermille),
		Air:                     air,
		Bedrock:                 bedrock,
		Stone:                   stone,
		Soil:                    soil,
		Farmland:                farmland,
	}

	w := &World{
		cfg:      cfg,
		log:      logger,
		catalogs: cats,
		registry: nitrebed.NewRegistry(cats, cfg.NitreBed, logger),
		cal: Calendar{
			StartHours:     cfg.Calendar.StartHours,
			SecondsPerHour: cfg.Calendar.SecondsPerHour,
			TickRateHz:     cfg.TickRateHz,
		},
		chunks:   store.NewChunkStore(gen),
		air:      air,
		beds:     map[Vec3i]*nitrebed.BedInstance{},
		farmland: map[Vec3i]float64{},
		sched:    newBedScheduler(cfg.Scheduler.BaseIntervalMs, cfg.Scheduler.JitterMs, rand.New(rand.NewSource(cfg.Scheduler.Seed))),
		actors:   map[string]*Actor{},
		clients:  map[string]*clientState{},
		inbox:    make(chan ActionEnvelope, 1024),
		join:     make(chan JoinRequest, 64),
		leave:    make(chan string, 64),
		stop:     make(chan struct{}),
		stats:    NewBedStats(uint64(cfg.TickRateHz)*60, uint64(cfg.TickRateHz)*600),
	}
	return w, nil
}

func (w *World) ID() string {
	if w == nil {
		return ""
	}
	return w.cfg.ID
}

func (w *World) TickRateHz() int {
	if w == nil {
		return 0
	}
	return w.cfg.TickRateHz
}

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

// TotalHours is the in-game clock at the current tick.
func (w *World) TotalHours() float64 { return w.cal.HoursAt(w.tick.Load()) }

func (w *World) Calendar() Calendar { return w.cal }

func (w *World) Registry() *nitrebed.Registry { return w.registry }

func (w *World) Catalogs() *catalogs.Catalogs { return w.catalogs }

func (w *World) Inbox() chan<- ActionEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest     { return w.join }
func (w *World) Leave() chan<- string         { return w.leave }

func (w *World) SetSnapshotSink(ch chan<- snapshot.SnapshotV1) { w.snapshotSink = ch }
func (w *World) SetTickLogger(l TickLogger)                    { w.tickLogger = l }

// AddEventSink registers a sink that receives every bed event at the end of
// the tick that produced it.
func (w *World) AddEventSink(s EventSink) {
	if s != nil {
		w.eventSinks = append(w.eventSinks, s)
	}
}

// SpawnPos is the air block right above the surface at (x,z).
func (w *World) SpawnPos(x, z int) Vec3i {
	return Vec3i{X: x, Y: w.chunks.SurfaceY() + 1, Z: z}
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
