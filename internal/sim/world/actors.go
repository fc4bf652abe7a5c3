package world

import (
	"math"

	"saltpeter.ai/internal/protocol"
	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/nitrebed"
	"saltpeter.ai/internal/sim/world/logic/ids"
	"saltpeter.ai/internal/sim/world/logic/rates"
)

type Actor struct {
	ID   string
	Name string
	Pos  Vec3i

	Hand Slot

	// Active block interaction, if any.
	interact *interaction

	Events []protocol.Event

	// ACT rate limiting window.
	actWindow rates.Window
}

type interaction struct {
	Pos       Vec3i
	Source    bool
	StartTick uint64
}

func (a *Actor) AddEvent(e protocol.Event) {
	a.Events = append(a.Events, e)
}

func (a *Actor) TakeEvents() []protocol.Event {
	ev := a.Events
	a.Events = nil
	return ev
}

// Interacting returns the position of the active interaction.
func (a *Actor) Interacting() (Vec3i, bool) {
	if a.interact == nil {
		return Vec3i{}, false
	}
	return a.interact.Pos, true
}

func (a *Actor) RateLimitAllow(nowTick uint64, window uint64, max int) (ok bool, cooldownTicks uint64) {
	return a.actWindow.Allow(nowTick, window, max)
}

// Slot is the single stack an actor holds. A container item carries its
// liquid as a count of liquid items.
type Slot struct {
	ItemID      string
	Units       int
	Liquid      string
	LiquidItems int

	cats      *catalogs.Catalogs
	materials *nitrebed.Materials
	changed   bool
}

var _ nitrebed.HeldStack = (*Slot)(nil)

func (s *Slot) bind(cats *catalogs.Catalogs, m *nitrebed.Materials) {
	s.cats = cats
	s.materials = m
}

func (s *Slot) Item() string {
	if s.Units <= 0 {
		return ""
	}
	return s.ItemID
}

func (s *Slot) Count() int { return s.Units }

func (s *Slot) TakeUnits(n int) int {
	if n > s.Units {
		n = s.Units
	}
	if n < 0 {
		n = 0
	}
	s.Units -= n
	if s.Units == 0 {
		s.Clear()
	}
	return n
}

func (s *Slot) IsContainer() bool {
	if s.cats == nil {
		return false
	}
	d, ok := s.cats.Item(s.ItemID)
	return ok && d.IsContainer()
}

func (s *Slot) Content() (string, float64) {
	if !s.IsContainer() || s.Liquid == "" || s.LiquidItems <= 0 {
		return "", 0
	}
	return s.Liquid, float64(s.LiquidItems) / s.itemsPerLitre()
}

func (s *Slot) TakeLitres(litres float64) int {
	if litres <= 0 || s.LiquidItems <= 0 {
		return 0
	}
	n := int(litres*s.itemsPerLitre() + 1e-6)
	if n > s.LiquidItems {
		n = s.LiquidItems
	}
	s.LiquidItems -= n
	if s.LiquidItems == 0 {
		s.Liquid = ""
	}
	return n
}

func (s *Slot) MarkChanged() { s.changed = true }

// Changed reports and clears the changed flag.
func (s *Slot) Changed() bool {
	c := s.changed
	s.changed = false
	return c
}

func (s *Slot) Clear() {
	s.ItemID = ""
	s.Units = 0
	s.Liquid = ""
	s.LiquidItems = 0
}

func (s *Slot) itemsPerLitre() float64 {
	if s.materials == nil {
		return nitrebed.DefaultItemsPerLitre
	}
	return s.materials.ItemsPerLitre(s.Liquid)
}

// Litres is the liquid volume in the slot.
func (s *Slot) Litres() float64 {
	_, l := s.Content()
	return l
}

// fillLiquid puts litres of liquid into a held container, capped by its
// capacity.
func (s *Slot) fillLiquid(liquid string, litres float64) bool {
	d, ok := s.cats.Item(s.ItemID)
	if !ok || !d.IsContainer() {
		return false
	}
	ld, ok := s.cats.Item(liquid)
	if !ok || !ld.IsLiquid() {
		return false
	}
	if d.CapacityLitres > 0 {
		litres = math.Min(litres, d.CapacityLitres)
	}
	s.Liquid = liquid
	s.LiquidItems = int(math.Round(litres * s.materials.ItemsPerLitre(liquid)))
	if s.LiquidItems <= 0 {
		s.Liquid = ""
		s.LiquidItems = 0
	}
	return true
}

func (s *Slot) obs() protocol.HeldObs {
	h := protocol.HeldObs{Item: s.ItemID, Count: s.Units}
	if sub, l := s.Content(); sub != "" {
		h.Liquid = sub
		h.Litres = l
	}
	return h
}

func (w *World) newActorID() string {
	n := w.nextActorNum.Add(1)
	return ids.ActorID(n)
}

func (w *World) actorByName(name string) *Actor {
	for _, a := range w.actors {
		if a.Name == name {
			return a
		}
	}
	return nil
}
