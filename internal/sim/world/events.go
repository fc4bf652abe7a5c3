package world

import "saltpeter.ai/internal/protocol"

// Bed event kinds.
const (
	EventPlace   = "PLACE"
	EventGrow    = "GROW"
	EventDecay   = "DECAY"
	EventDeplete = "DEPLETE"
	EventFill    = "FILL"
	EventConvert = "CONVERT"
	EventBreak   = "BREAK"
)

// BedEvent is one durable change to a bed, as written to the event log and
// the index.
type BedEvent struct {
	Tick     uint64  `json:"tick"`
	Hours    float64 `json:"hours"`
	Kind     string  `json:"kind"`
	BedID    string  `json:"bed_id"`
	Pos      [3]int  `json:"pos"`
	Actor    string  `json:"actor,omitempty"`
	Block    string  `json:"block,omitempty"`
	Stage    string  `json:"stage,omitempty"`
	Item     string  `json:"item,omitempty"`
	Units    int     `json:"units,omitempty"`
	Material float64 `json:"material"`
	Moisture float64 `json:"moisture,omitempty"`
}

type EventSink interface {
	WriteBedEvent(ev BedEvent) error
}

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

type TickLogEntry struct {
	Tick    uint64           `json:"tick"`
	Hours   float64          `json:"hours"`
	Joins   []RecordedJoin   `json:"joins,omitempty"`
	Leaves  []string         `json:"leaves,omitempty"`
	Actions []RecordedAction `json:"actions,omitempty"`
	Beds    int              `json:"beds"`
	Digest  string           `json:"digest"`
}

type RecordedAction struct {
	ActorID string          `json:"actor_id"`
	Act     protocol.ActMsg `json:"act"`
}

func (w *World) emit(ev BedEvent) {
	ev.Tick = w.tick.Load()
	ev.Hours = w.cal.HoursAt(ev.Tick)
	w.pending = append(w.pending, ev)
	w.stats.Record(ev.Tick, ev.Kind)
}

func (w *World) flushEvents() {
	if len(w.pending) == 0 {
		return
	}
	for _, s := range w.eventSinks {
		for _, ev := range w.pending {
			if err := s.WriteBedEvent(ev); err != nil {
				w.log.Printf("event sink: %v", err)
				break
			}
		}
	}
	w.pending = w.pending[:0]
}

// broadcast delivers a client event to every actor within r blocks of pos.
func (w *World) broadcast(pos Vec3i, r float64, ev protocol.Event) {
	for _, a := range w.actors {
		if r > 0 && distance(a.Pos, pos) > r {
			continue
		}
		a.AddEvent(ev)
	}
}
