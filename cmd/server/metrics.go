package main

import (
	"fmt"
	"io"

	"saltpeter.ai/internal/sim/world"
)

// writeMetrics renders world and index gauges in the Prometheus text format.
func writeMetrics(out io.Writer, worldID string, w *world.World, idx runtimeIndex) {
	m := w.Metrics()
	tick := w.CurrentTick()
	if m.Tick != 0 {
		tick = m.Tick
	}

	gauge := func(name, help string) {
		fmt.Fprintf(out, "# HELP %s %s\n", name, help)
		fmt.Fprintf(out, "# TYPE %s gauge\n", name)
	}

	gauge("saltpeter_world_tick", "Current world tick.")
	fmt.Fprintf(out, "saltpeter_world_tick{world=%q} %d\n", worldID, tick)
	gauge("saltpeter_world_total_hours", "Game calendar hours.")
	fmt.Fprintf(out, "saltpeter_world_total_hours{world=%q} %.4f\n", worldID, m.TotalHours)
	gauge("saltpeter_world_actors", "Known actors.")
	fmt.Fprintf(out, "saltpeter_world_actors{world=%q} %d\n", worldID, m.Actors)
	gauge("saltpeter_world_clients", "Connected clients.")
	fmt.Fprintf(out, "saltpeter_world_clients{world=%q} %d\n", worldID, m.Clients)
	gauge("saltpeter_world_loaded_chunks", "Loaded chunk count.")
	fmt.Fprintf(out, "saltpeter_world_loaded_chunks{world=%q} %d\n", worldID, m.LoadedChunks)
	gauge("saltpeter_world_beds", "Nitre beds with state.")
	fmt.Fprintf(out, "saltpeter_world_beds{world=%q} %d\n", worldID, m.Beds)
	gauge("saltpeter_world_scheduled_beds", "Beds in the update scheduler.")
	fmt.Fprintf(out, "saltpeter_world_scheduled_beds{world=%q} %d\n", worldID, m.Scheduled)

	gauge("saltpeter_world_queue_depth", "Channel backlog depth.")
	fmt.Fprintf(out, "saltpeter_world_queue_depth{world=%q,queue=%q} %d\n", worldID, "inbox", m.QueueDepths.Inbox)
	fmt.Fprintf(out, "saltpeter_world_queue_depth{world=%q,queue=%q} %d\n", worldID, "join", m.QueueDepths.Join)
	fmt.Fprintf(out, "saltpeter_world_queue_depth{world=%q,queue=%q} %d\n", worldID, "leave", m.QueueDepths.Leave)

	gauge("saltpeter_world_step_ms", "Last tick step duration in milliseconds.")
	fmt.Fprintf(out, "saltpeter_world_step_ms{world=%q} %.3f\n", worldID, m.StepMS)

	gauge("saltpeter_bed_events_window", "Bed events in the rolling window.")
	s := m.StatsWindow
	for _, kv := range []struct {
		kind string
		n    int
	}{
		{"grow", s.Grows},
		{"decay", s.Decays},
		{"deplete", s.Depletions},
		{"fill", s.Fills},
		{"convert", s.Conversions},
		{"break", s.Breaks},
	} {
		fmt.Fprintf(out, "saltpeter_bed_events_window{world=%q,kind=%q} %d\n", worldID, kv.kind, kv.n)
	}
	gauge("saltpeter_bed_events_window_ticks", "Rolling window size in ticks.")
	fmt.Fprintf(out, "saltpeter_bed_events_window_ticks{world=%q} %d\n", worldID, m.StatsWindowTicks)

	if idx == nil {
		return
	}
	st := idx.Stats()
	gauge("saltpeter_index_queue_depth", "Index writer queue depth.")
	fmt.Fprintf(out, "saltpeter_index_queue_depth{world=%q} %d\n", worldID, st.QueueDepth)
	fmt.Fprintf(out, "# HELP saltpeter_index_dropped_total Index writes dropped because the queue was full.\n")
	fmt.Fprintf(out, "# TYPE saltpeter_index_dropped_total counter\n")
	fmt.Fprintf(out, "saltpeter_index_dropped_total{world=%q,kind=%q} %d\n", worldID, "tick", st.DropTickTotal)
	fmt.Fprintf(out, "saltpeter_index_dropped_total{world=%q,kind=%q} %d\n", worldID, "event", st.DropEventTotal)
	fmt.Fprintf(out, "saltpeter_index_dropped_total{world=%q,kind=%q} %d\n", worldID, "snapshot", st.DropSnapshotTotal)
}
