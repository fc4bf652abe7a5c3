package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	PlayerName      string `json:"player_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	ActorID         string         `json:"actor_id"`
	WorldID         string         `json:"world_id,omitempty"`
	WorldParams     WorldParams    `json:"world_params"`
	Catalogs        CatalogDigests `json:"catalogs"`
	// Organic materials that can be applied to a nitre bed.
	Hints []HintStack `json:"hints,omitempty"`
}

type WorldParams struct {
	TickRateHz     int     `json:"tick_rate_hz"`
	ChunkSize      [3]int  `json:"chunk_size"`
	Height         int     `json:"height"`
	ObsRadius      int     `json:"obs_radius"`
	SecondsPerHour float64 `json:"seconds_per_hour"`
	Seed           int64   `json:"seed"`
}

type CatalogDigests struct {
	BlockPalette DigestRef `json:"block_palette"`
	ItemPalette  DigestRef `json:"item_palette"`
}

type DigestRef struct {
	Digest string `json:"digest"`
	Count  int    `json:"count"`
}

type HintStack struct {
	Item      string  `json:"item"`
	Count     int     `json:"count"`
	Container string  `json:"container,omitempty"`
	Litres    float64 `json:"litres,omitempty"`
}

// ERROR (server -> client), for messages that never reached the world.
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message"`
}

// EVENT (server -> client), pushed outside the OBS cadence.
type EventMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Tick            uint64 `json:"tick"`
	Event           Event  `json:"event"`
}
