package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/tuning"
	"saltpeter.ai/internal/sim/world"
)

func TestLatestSnapshot(t *testing.T) {
	worldDir := t.TempDir()
	dir := filepath.Join(worldDir, "snapshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"90.snap.zst", "1200.snap.zst", "300.snap.zst", "junk.snap.zst", "999.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if got := latestSnapshot(worldDir); filepath.Base(got) != "1200.snap.zst" {
		t.Fatalf("latest: %q", got)
	}
	if got := latestSnapshot(t.TempDir()); got != "" {
		t.Fatalf("empty dir: %q", got)
	}
}

func TestIsLoopbackRemote(t *testing.T) {
	cases := map[string]bool{
		"127.0.0.1:5555": true,
		"[::1]:80":       true,
		"10.0.0.2:80":    false,
		"garbage":        false,
	}
	for addr, want := range cases {
		if got := isLoopbackRemote(addr); got != want {
			t.Fatalf("%s: got %v want %v", addr, got, want)
		}
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("SP_TEST_FLAG", "false")
	if envBool("SP_TEST_FLAG", true) {
		t.Fatalf("expected false")
	}
	t.Setenv("SP_TEST_FLAG", "nope")
	if !envBool("SP_TEST_FLAG", true) {
		t.Fatalf("invalid values fall back to the default")
	}
}

func TestWriteMetrics(t *testing.T) {
	cats, err := catalogs.Load("../../configs")
	if err != nil {
		t.Fatalf("catalogs: %v", err)
	}
	w, err := world.New(world.ConfigFromTuning("m", 1, tuning.Defaults()), cats, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	w.StepOnce(nil, nil, nil)

	var sb strings.Builder
	writeMetrics(&sb, "m", w, nil)
	out := sb.String()
	for _, want := range []string{
		`saltpeter_world_tick{world="m"} 1`,
		`saltpeter_bed_events_window{world="m",kind="grow"} 0`,
		`# TYPE saltpeter_world_beds gauge`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "saltpeter_index_") {
		t.Fatalf("index metrics without an index")
	}
}
