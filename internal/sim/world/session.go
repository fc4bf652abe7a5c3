package world

import (
	"saltpeter.ai/internal/protocol"
)

// joinActor attaches a client to an actor. A returning name takes over its
// previous actor, including the held stack restored from a snapshot.
func (w *World) joinActor(name string, out chan []byte) JoinResponse {
	a := w.actorByName(name)
	if a == nil {
		a = &Actor{
			ID:   w.newActorID(),
			Name: name,
			Pos:  w.SpawnPos(0, 0),
		}
		a.Hand.bind(w.catalogs, w.registry.Materials)
		w.actors[a.ID] = a
	}
	if out != nil {
		w.clients[a.ID] = &clientState{Out: out}
	}
	a.AddEvent(protocol.Event{"t": w.tick.Load(), "type": "JOIN", "actor_id": a.ID})
	return JoinResponse{Welcome: w.welcome(a)}
}

func (w *World) handleLeave(actorID string) {
	if a := w.actors[actorID]; a != nil && a.interact != nil {
		a.interact = nil
	}
	delete(w.clients, actorID)
}

func (w *World) welcome(a *Actor) protocol.WelcomeMsg {
	hints := w.registry.Hints()
	out := make([]protocol.HintStack, 0, len(hints))
	for _, h := range hints {
		out = append(out, protocol.HintStack{Item: h.Item, Count: h.Count, Container: h.Container, Litres: h.Litres})
	}
	return protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		ActorID:         a.ID,
		WorldID:         w.cfg.ID,
		WorldParams: protocol.WorldParams{
			TickRateHz:     w.cfg.TickRateHz,
			ChunkSize:      [3]int{16, 16, w.cfg.Height},
			Height:         w.cfg.Height,
			ObsRadius:      w.cfg.ObsRadius,
			SecondsPerHour: w.cal.SecondsPerHour,
			Seed:           w.cfg.Seed,
		},
		Catalogs: protocol.CatalogDigests{
			BlockPalette: protocol.DigestRef{Digest: w.catalogs.Blocks.PaletteDigest, Count: len(w.catalogs.Blocks.Palette)},
			ItemPalette:  protocol.DigestRef{Digest: w.catalogs.Items.PaletteDigest, Count: len(w.catalogs.Items.Palette)},
		},
		Hints: out,
	}
}

// AddActor joins a detached actor. Used by tools and tests that drive the
// world without a transport.
func (w *World) AddActor(name string) *Actor {
	resp := w.joinActor(name, nil)
	return w.actors[resp.Welcome.ActorID]
}

func (w *World) Actor(id string) *Actor { return w.actors[id] }
