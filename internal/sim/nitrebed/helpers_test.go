package nitrebed

import (
	"io"
	"log"
	"math"
	"testing"

	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/tuning"
	"saltpeter.ai/internal/sim/world/kernel/model"
)

func loadTestRegistry(t *testing.T) (*Registry, *catalogs.Catalogs) {
	t.Helper()
	cats, err := catalogs.Load("../../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	r := NewRegistry(cats, tuning.Defaults().NitreBed, log.New(io.Discard, "[nitrebed] ", 0))
	return r, cats
}

func mustBlock(t *testing.T, cats *catalogs.Catalogs, id string) BlockID {
	t.Helper()
	b, ok := cats.BlockID(id)
	if !ok {
		t.Fatalf("block %s missing from catalog", id)
	}
	return b
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

type fakeView map[model.Vec3i]BlockID

func (v fakeView) Block(pos model.Vec3i) BlockID { return v[pos] }

type fakeStack struct {
	item      string
	count     int
	container bool
	substance string
	items     int
	ipl       float64
	changed   int
}

func (s *fakeStack) Item() string { return s.item }
func (s *fakeStack) Count() int   { return s.count }
func (s *fakeStack) TakeUnits(n int) int {
	if n > s.count {
		n = s.count
	}
	s.count -= n
	if s.count == 0 {
		s.item = ""
	}
	return n
}
func (s *fakeStack) IsContainer() bool { return s.container }
func (s *fakeStack) Content() (string, float64) {
	if s.items <= 0 {
		return "", 0
	}
	return s.substance, float64(s.items) / s.ipl
}
func (s *fakeStack) TakeLitres(litres float64) int {
	n := int(litres*s.ipl + 1e-6)
	if n > s.items {
		n = s.items
	}
	s.items -= n
	return n
}
func (s *fakeStack) MarkChanged() { s.changed++ }

func bucket(substance string, litres float64) *fakeStack {
	return &fakeStack{item: "WOOD_BUCKET", count: 1, container: true, substance: substance, items: int(litres * 100), ipl: 100}
}

type recordingNotifier struct {
	liquid map[string]int
	taken  map[string]int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{liquid: map[string]int{}, taken: map[string]int{}}
}

func (n *recordingNotifier) LiquidMoved(substance string, items int) { n.liquid[substance] += items }
func (n *recordingNotifier) ItemTaken(item string, units int)        { n.taken[item] += units }
