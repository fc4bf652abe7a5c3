package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type Catalogs struct {
	Blocks BlockCatalog
	Items  ItemCatalog
}

type BlockCatalog struct {
	Palette       []string
	Index         map[string]uint16
	Defs          map[string]BlockDef
	PaletteDigest string
	DefsDigest    string
}

type BlockDef struct {
	ID        string `json:"id"`
	Solid     bool   `json:"solid"`
	Breakable bool   `json:"breakable"`
	DropsItem string `json:"drops_item,omitempty"`

	NitreBed       *NitreBedDef       `json:"nitre_bed,omitempty"`
	NitreBedSource *NitreBedSourceDef `json:"nitre_bed_source,omitempty"`
	Farmland       *FarmlandDef       `json:"farmland,omitempty"`
}

// NitreBedDef marks a block as one visual variant of a nitre bed. Moist and Dry
// name the two variant blocks of the same bed type.
type NitreBedDef struct {
	State             string   `json:"state"` // "moist" | "dry"
	Moist             string   `json:"moist"`
	Dry               string   `json:"dry"`
	HoursPerGrowth    *float64 `json:"hours_per_growth,omitempty"`
	MaterialPerGrowth *float64 `json:"material_per_growth,omitempty"`
	DepletedBlock     string   `json:"depleted_block,omitempty"`
}

// NitreBedSourceDef marks a block that turns into a nitre bed when organic
// material is applied to it.
type NitreBedSourceDef struct {
	Bed              string   `json:"bed,omitempty"`
	MaterialRequired *float64 `json:"material_required,omitempty"`
}

type FarmlandDef struct {
	Moisture float64 `json:"moisture"`
}

type ItemCatalog struct {
	Palette       []string
	Index         map[string]uint16
	Defs          map[string]ItemDef
	PaletteDigest string
	DefsDigest    string
}

type ItemDef struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"` // "BLOCK","MATERIAL","LIQUID","CONTAINER","TOOL"
	PlaceAs string `json:"place_as,omitempty"`

	// Organic value of a single unit when put into a nitre bed.
	FillAmount float64 `json:"nitre_bed_fill_amount,omitempty"`
	// Organic value of one litre of this liquid. Nil means "use the tuning default".
	FillAmountPerLitre *float64 `json:"nitre_bed_amount_per_litre,omitempty"`
	ItemsPerLitre      float64  `json:"items_per_litre,omitempty"`
	CapacityLitres     float64  `json:"capacity_litres,omitempty"`
}

func (d ItemDef) IsLiquid() bool    { return d.Kind == "LIQUID" }
func (d ItemDef) IsContainer() bool { return d.Kind == "CONTAINER" }

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadBlocks(filepath.Join(configDir, "blocks.json"), &c.Blocks); err != nil {
		return nil, err
	}
	if err := loadItems(filepath.Join(configDir, "items.json"), &c.Items); err != nil {
		return nil, err
	}
	return &c, nil
}

// BlockID resolves a block identifier to its palette index.
func (c *Catalogs) BlockID(id string) (uint16, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c.Blocks.Index[id]
	return v, ok
}

// BlockName is the reverse of BlockID. Unknown indices map to "".
func (c *Catalogs) BlockName(b uint16) string {
	if c == nil || int(b) >= len(c.Blocks.Palette) {
		return ""
	}
	return c.Blocks.Palette[b]
}

func (c *Catalogs) BlockDefOf(b uint16) (BlockDef, bool) {
	name := c.BlockName(b)
	if name == "" {
		return BlockDef{}, false
	}
	d, ok := c.Blocks.Defs[name]
	return d, ok
}

func (c *Catalogs) Item(id string) (ItemDef, bool) {
	if c == nil {
		return ItemDef{}, false
	}
	d, ok := c.Items.Defs[id]
	return d, ok
}

// SortedItems returns item defs ordered by id.
func (c *Catalogs) SortedItems() []ItemDef {
	out := make([]ItemDef, 0, len(c.Items.Defs))
	for _, id := range c.Items.Palette {
		out = append(out, c.Items.Defs[id])
	}
	return out
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadBlocks(path string, out *BlockCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []BlockDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("blocks.json: %w", err)
	}
	out.Defs = map[string]BlockDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("blocks.json: empty id")
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Ensure AIR exists and is palette id 0.
	if _, ok := out.Defs["AIR"]; !ok {
		return fmt.Errorf("blocks.json: missing AIR")
	}
	ids = append([]string{"AIR"}, filterOut(ids, "AIR")...)

	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	palJSON, _ := json.Marshal(ids)
	out.PaletteDigest = sha256Hex(palJSON)

	for _, d := range out.Defs {
		if d.NitreBed == nil {
			continue
		}
		for _, v := range []string{d.NitreBed.Moist, d.NitreBed.Dry} {
			if _, ok := out.Defs[v]; !ok {
				return fmt.Errorf("blocks.json: %s: unknown nitre bed variant %q", d.ID, v)
			}
		}
	}
	return nil
}

func loadItems(path string, out *ItemCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Defs = map[string]ItemDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("items.json: empty id")
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	palJSON, _ := json.Marshal(ids)
	out.PaletteDigest = sha256Hex(palJSON)
	return nil
}

func filterOut(in []string, remove string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == remove {
			continue
		}
		out = append(out, s)
	}
	return out
}
