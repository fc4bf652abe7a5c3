package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version int    `json:"version"`
	WorldID string `json:"world_id"`
	Tick    uint64 `json:"tick"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed      int64 `json:"seed"`
	TickRate  int   `json:"tick_rate_hz"`
	Height    int   `json:"height"`
	GroundY   int   `json:"ground_y"`
	BoundaryR int   `json:"boundary_r"`

	// Calendar reading at Header.Tick.
	TotalHours     float64 `json:"total_hours"`
	SecondsPerHour float64 `json:"seconds_per_hour"`

	Chunks   []ChunkV1    `json:"chunks"`
	Beds     []BedV1      `json:"beds"`
	Farmland []FarmlandV1 `json:"farmland,omitempty"`
	Actors   []ActorV1    `json:"actors,omitempty"`

	Counters CountersV1 `json:"counters"`
}

type CountersV1 struct {
	NextActor uint64 `json:"next_actor"`
}

type ChunkV1 struct {
	CX     int      `json:"cx"`
	CZ     int      `json:"cz"`
	Height int      `json:"height"`
	Blocks []uint16 `json:"blocks"`
}

// BedV1 is one bed instance as a flat key-value record attached to its position.
type BedV1 struct {
	Pos    [3]int             `json:"pos"`
	Record map[string]float64 `json:"record"`
}

type FarmlandV1 struct {
	Pos      [3]int  `json:"pos"`
	Moisture float64 `json:"moisture"`
}

type ActorV1 struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Pos  [3]int `json:"pos"`

	HeldItem        string `json:"held_item,omitempty"`
	HeldCount       int    `json:"held_count,omitempty"`
	HeldLiquid      string `json:"held_liquid,omitempty"`
	HeldLiquidItems int    `json:"held_liquid_items,omitempty"`
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Read header line (ignore it for now, gob also contains header).
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}

// ReadHeader decodes only the leading JSON header line.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return h, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("decode header: %w", err)
	}
	return h, nil
}
