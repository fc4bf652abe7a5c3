package nitrebed

import "testing"

func TestConvert_CreatesEmptyBedWithMoisture(t *testing.T) {
	r, cats := loadTestRegistry(t)
	src, ok := r.Source(mustBlock(t, cats, "FARMLAND"))
	if !ok {
		t.Fatalf("farmland should be a source")
	}
	held := &fakeStack{item: "POOP", count: 3}
	n := newRecordingNotifier()

	bed, ok := Convert(src, held, r.Materials, 0.4, 120, n)
	if !ok {
		t.Fatalf("expected conversion")
	}
	if bed.OrganicMaterial != 0 || bed.TotalHoursLastGrowth != 120 || bed.MoistureLevel != 0.4 {
		t.Fatalf("new bed: %+v", bed)
	}
	if held.count != 1 || n.taken["POOP"] != 2 {
		t.Fatalf("expected two poop taken, left=%d taken=%v", held.count, n.taken)
	}
}

func TestConvert_RejectsShortStack(t *testing.T) {
	r, cats := loadTestRegistry(t)
	src, _ := r.Source(mustBlock(t, cats, "SOIL_LOW"))
	held := &fakeStack{item: "DRY_GRASS", count: 9}
	if _, ok := Convert(src, held, r.Materials, 0, 0, nil); ok {
		t.Fatalf("9 dry grass should not cover 0.5")
	}
	if held.count != 9 || held.changed != 0 {
		t.Fatalf("rejected conversion must not touch the stack")
	}
	if _, ok := Convert(nil, held, r.Materials, 0, 0, nil); ok {
		t.Fatalf("nil source must be rejected")
	}
}
