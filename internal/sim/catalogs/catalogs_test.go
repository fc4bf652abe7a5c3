package catalogs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testItems = `[
  {"id": "POOP", "kind": "MATERIAL", "nitre_bed_fill_amount": 0.25},
  {"id": "URINE", "kind": "LIQUID", "items_per_litre": 100, "nitre_bed_amount_per_litre": 0.1},
  {"id": "WOOD_BUCKET", "kind": "CONTAINER", "capacity_litres": 10}
]`

func writeConfigs(t *testing.T, blocks, items string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "blocks.json"), []byte(blocks), 0o644); err != nil {
		t.Fatalf("write blocks: %v", err)
	}
	if items != "" {
		if err := os.WriteFile(filepath.Join(dir, "items.json"), []byte(items), 0o644); err != nil {
			t.Fatalf("write items: %v", err)
		}
	}
	return dir
}

func TestLoad_PaletteStartsWithAir(t *testing.T) {
	dir := writeConfigs(t, `[
  {"id": "STONE", "solid": true},
  {"id": "NITRE_BED_DRY", "nitre_bed": {"state": "dry", "moist": "NITRE_BED_MOIST", "dry": "NITRE_BED_DRY"}},
  {"id": "AIR"},
  {"id": "NITRE_BED_MOIST", "nitre_bed": {"state": "moist", "moist": "NITRE_BED_MOIST", "dry": "NITRE_BED_DRY"}}
]`, testItems)
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"AIR", "NITRE_BED_DRY", "NITRE_BED_MOIST", "STONE"}
	if strings.Join(c.Blocks.Palette, ",") != strings.Join(want, ",") {
		t.Fatalf("palette: %v", c.Blocks.Palette)
	}
	if id, ok := c.BlockID("STONE"); !ok || id != 3 || c.BlockName(id) != "STONE" {
		t.Fatalf("STONE lookup: %d %v", id, ok)
	}
	if c.BlockName(99) != "" {
		t.Fatalf("unknown index must map to empty name")
	}
	if d, ok := c.BlockDefOf(1); !ok || d.NitreBed == nil || d.NitreBed.Moist != "NITRE_BED_MOIST" {
		t.Fatalf("bed def: %+v", d)
	}
	if c.Blocks.PaletteDigest == "" || c.Blocks.DefsDigest == "" || c.Items.PaletteDigest == "" {
		t.Fatalf("digests must be set")
	}

	items := c.SortedItems()
	if len(items) != 3 || items[0].ID != "POOP" || items[2].ID != "WOOD_BUCKET" {
		t.Fatalf("sorted items: %+v", items)
	}
	u, ok := c.Item("URINE")
	if !ok || !u.IsLiquid() || u.FillAmountPerLitre == nil || *u.FillAmountPerLitre != 0.1 {
		t.Fatalf("urine: %+v", u)
	}
	if b, _ := c.Item("WOOD_BUCKET"); !b.IsContainer() {
		t.Fatalf("bucket must be a container")
	}
}

func TestLoad_PaletteDigestIgnoresFileOrder(t *testing.T) {
	a, err := Load(writeConfigs(t, `[{"id": "AIR"}, {"id": "STONE"}, {"id": "DIRT"}]`, testItems))
	if err != nil {
		t.Fatalf("load a: %v", err)
	}
	b, err := Load(writeConfigs(t, `[{"id": "DIRT"}, {"id": "STONE"}, {"id": "AIR"}]`, testItems))
	if err != nil {
		t.Fatalf("load b: %v", err)
	}
	if a.Blocks.PaletteDigest != b.Blocks.PaletteDigest {
		t.Fatalf("palette digest depends on file order")
	}
	if a.Blocks.DefsDigest == b.Blocks.DefsDigest {
		t.Fatalf("defs digest should follow the raw file")
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]struct {
		blocks string
		items  string
		want   string
	}{
		"missing air": {
			blocks: `[{"id": "STONE"}]`,
			items:  testItems,
			want:   "missing AIR",
		},
		"unknown variant": {
			blocks: `[{"id": "AIR"}, {"id": "BED", "nitre_bed": {"state": "dry", "moist": "GONE", "dry": "BED"}}]`,
			items:  testItems,
			want:   `unknown nitre bed variant "GONE"`,
		},
		"empty block id": {
			blocks: `[{"id": "AIR"}, {"solid": true}]`,
			items:  testItems,
			want:   "empty id",
		},
		"bad block json": {
			blocks: `{"id": "AIR"}`,
			items:  testItems,
			want:   "blocks.json",
		},
		"empty item id": {
			blocks: `[{"id": "AIR"}]`,
			items:  `[{"kind": "MATERIAL"}]`,
			want:   "items.json: empty id",
		},
	}
	for name, tc := range cases {
		_, err := Load(writeConfigs(t, tc.blocks, tc.items))
		if err == nil {
			t.Fatalf("%s: expected an error", name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", name, err, tc.want)
		}
	}
}

func TestLoad_MissingItemsFile(t *testing.T) {
	if _, err := Load(writeConfigs(t, `[{"id": "AIR"}]`, "")); err == nil {
		t.Fatalf("expected an error without items.json")
	}
}

func TestLoad_ShippedConfigs(t *testing.T) {
	c, err := Load("../../../configs")
	if err != nil {
		t.Fatalf("load configs: %v", err)
	}
	if c.Blocks.Palette[0] != "AIR" {
		t.Fatalf("palette[0] = %s", c.Blocks.Palette[0])
	}
}
