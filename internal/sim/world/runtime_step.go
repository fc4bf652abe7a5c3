package world

import (
	"encoding/json"
	"time"
)

func (w *World) step(joins []JoinRequest, leaves []string, actions []ActionEnvelope) {
	stepStart := time.Now()
	nowTick := w.tick.Load()

	// Apply leaves and joins deterministically at tick boundary.
	recordedLeaves := make([]string, 0, len(leaves))
	for _, id := range leaves {
		if _, ok := w.actors[id]; ok {
			w.handleLeave(id)
			recordedLeaves = append(recordedLeaves, id)
		}
	}
	recordedJoins := make([]RecordedJoin, 0, len(joins))
	for _, req := range joins {
		resp := w.joinActor(req.Name, req.Out)
		if req.Resp != nil {
			req.Resp <- resp
		}
		recordedJoins = append(recordedJoins, RecordedJoin{ActorID: resp.Welcome.ActorID, Name: req.Name})
	}

	// Apply actions in server receive order (the inbox order).
	recorded := make([]RecordedAction, 0, len(actions))
	for _, env := range actions {
		a := w.actors[env.ActorID]
		if a == nil {
			continue
		}
		recorded = append(recorded, RecordedAction{ActorID: env.ActorID, Act: env.Act})
		w.applyAct(a, env.Act, nowTick)
	}

	// Systems: sustained interactions -> scheduled beds.
	w.systemInteractions(nowTick)
	w.systemBeds(nowTick)

	// Build + send OBS for each connected actor.
	for id, cl := range w.clients {
		a := w.actors[id]
		if a == nil {
			continue
		}
		b, err := json.Marshal(w.buildObs(a, nowTick))
		if err != nil {
			continue
		}
		sendLatest(cl.Out, b)
	}

	w.flushEvents()

	if w.tickLogger != nil && (len(recordedJoins) > 0 || len(recordedLeaves) > 0 || len(recorded) > 0) {
		entry := TickLogEntry{
			Tick:    nowTick,
			Hours:   w.cal.HoursAt(nowTick),
			Joins:   recordedJoins,
			Leaves:  recordedLeaves,
			Actions: recorded,
			Beds:    len(w.beds),
			Digest:  w.stateDigest(nowTick),
		}
		if err := w.tickLogger.WriteTick(entry); err != nil {
			w.log.Printf("tick log: %v", err)
		}
	}

	// Snapshot every N ticks, starting after tick 0.
	if w.snapshotSink != nil && nowTick != 0 && w.cfg.SnapshotEveryTicks > 0 {
		every := uint64(w.cfg.SnapshotEveryTicks)
		if nowTick%every == 0 {
			snap := w.ExportSnapshot(nowTick)
			select {
			case w.snapshotSink <- snap:
			default:
				// Drop snapshot if sink is backed up.
			}
		}
	}

	stepMS := float64(time.Since(stepStart).Microseconds()) / 1000.0
	nextTick := w.tick.Add(1)

	w.metrics.Store(WorldMetrics{
		Tick:         nextTick,
		TotalHours:   w.cal.HoursAt(nextTick),
		Actors:       len(w.actors),
		Clients:      len(w.clients),
		LoadedChunks: len(w.chunks.Chunks),
		Beds:         len(w.beds),
		Scheduled:    w.sched.Len(),
		QueueDepths: QueueDepths{
			Inbox: len(w.inbox),
			Join:  len(w.join),
			Leave: len(w.leave),
		},
		StepMS:           stepMS,
		StatsWindowTicks: w.stats.WindowTicks(),
		StatsWindow:      w.stats.Summarize(nowTick),
	})
}
