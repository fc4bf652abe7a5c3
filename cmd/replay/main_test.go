package main

import (
	"io"
	"log"
	"path/filepath"
	"testing"

	persistlog "saltpeter.ai/internal/persistence/log"
	"saltpeter.ai/internal/protocol"
	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/tuning"
	"saltpeter.ai/internal/sim/world"
)

func newWorld(t *testing.T) *world.World {
	t.Helper()
	return newWorldSeed(t, 9)
}

func newWorldSeed(t *testing.T, seed int64) *world.World {
	t.Helper()
	cats, err := catalogs.Load("../../configs")
	if err != nil {
		t.Fatalf("catalogs: %v", err)
	}
	w, err := world.New(world.ConfigFromTuning("r", seed, tuning.Defaults()), cats, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return w
}

func actMsg(op string) protocol.ActMsg {
	return protocol.ActMsg{Type: protocol.TypeAct, ProtocolVersion: protocol.Version, Op: op}
}

func TestReplayDir_VerifiesDigests(t *testing.T) {
	worldDir := t.TempDir()
	live := newWorld(t)
	tl := persistlog.NewTickLogger(worldDir)
	live.SetTickLogger(tl)

	live.StepOnce(nil, nil, nil)
	live.StepOnce([]world.JoinRequest{{Name: "ann"}}, nil, nil)
	hold := actMsg(protocol.OpHold)
	hold.Item, hold.Count = "POOP", 4
	for i := 0; i < 5; i++ {
		live.StepOnce(nil, nil, nil)
	}
	live.StepOnce(nil, nil, []world.ActionEnvelope{{ActorID: "P1", Act: hold}})
	live.AdvanceHours(1)
	if err := tl.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	replayed := newWorld(t)
	checked, err := replayDir(replayed, filepath.Join(worldDir, "ticks"), 0)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if checked != 2 {
		t.Fatalf("checked: got %d want 2", checked)
	}
	if replayed.Actor("P1") == nil {
		t.Fatalf("join was not replayed")
	}
}

func TestReplayDir_DetectsDivergence(t *testing.T) {
	worldDir := t.TempDir()
	live := newWorld(t)
	tl := persistlog.NewTickLogger(worldDir)
	live.SetTickLogger(tl)
	live.StepOnce([]world.JoinRequest{{Name: "ann"}}, nil, nil)
	if err := tl.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	other := newWorldSeed(t, 10)
	if _, err := replayDir(other, filepath.Join(worldDir, "ticks"), 0); err == nil {
		t.Fatalf("expected an error replaying into a diverged world")
	}
}

func TestReplayDir_EmptyDir(t *testing.T) {
	if _, err := replayDir(newWorld(t), t.TempDir(), 0); err == nil {
		t.Fatalf("expected error for a dir without tick logs")
	}
}
