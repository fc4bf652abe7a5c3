package world

import (
	"io"
	"log"
	"testing"

	"saltpeter.ai/internal/protocol"
	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/tuning"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	cfg := ConfigFromTuning("test", 42, tuning.Defaults())
	w, err := New(cfg, cats, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func blockID(t *testing.T, w *World, id string) uint16 {
	t.Helper()
	b, ok := w.catalogs.BlockID(id)
	if !ok {
		t.Fatalf("block %s missing", id)
	}
	return b
}

func stepN(w *World, n int) {
	for i := 0; i < n; i++ {
		w.step(nil, nil, nil)
	}
}

func act(w *World, a *Actor, msg protocol.ActMsg) {
	msg.Type = protocol.TypeAct
	msg.ProtocolVersion = protocol.Version
	w.step(nil, nil, []ActionEnvelope{{ActorID: a.ID, Act: msg}})
}

// bedPos is a surface block next to the spawn point.
func bedPos(w *World) Vec3i {
	return Vec3i{X: 2, Y: w.chunks.SurfaceY(), Z: 0}
}

type memSink struct {
	events []BedEvent
}

func (s *memSink) WriteBedEvent(ev BedEvent) error {
	s.events = append(s.events, ev)
	return nil
}

func (s *memSink) count(kind string) int {
	n := 0
	for _, ev := range s.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func lastResult(a *Actor) protocol.Event {
	var last protocol.Event
	for _, e := range a.Events {
		if e["type"] == "ACTION_RESULT" {
			last = e
		}
	}
	return last
}
