package protocol

type ObsMsg struct {
	Type            string  `json:"type"`
	ProtocolVersion string  `json:"protocol_version"`
	Tick            uint64  `json:"tick"`
	ActorID         string  `json:"actor_id"`
	TotalHours      float64 `json:"total_hours"`

	Self   SelfObs  `json:"self"`
	Beds   []BedObs `json:"beds"`
	Events []Event  `json:"events"`
}

type SelfObs struct {
	Pos         [3]int   `json:"pos"`
	Held        HeldObs  `json:"held"`
	Interacting *[3]int  `json:"interacting,omitempty"`
	Status      []string `json:"status,omitempty"`
}

type HeldObs struct {
	Item   string  `json:"item,omitempty"`
	Count  int     `json:"count,omitempty"`
	Liquid string  `json:"liquid,omitempty"`
	Litres float64 `json:"litres,omitempty"`
}

type BedObs struct {
	Pos      [3]int   `json:"pos"`
	Block    string   `json:"block"`
	Above    string   `json:"above"`
	Material float64  `json:"material"`
	Info     []string `json:"info,omitempty"`
}

type Event map[string]any

// Action ops.
const (
	OpHold          = "HOLD"
	OpPlace         = "PLACE"
	OpBreak         = "BREAK"
	OpMove          = "MOVE"
	OpInteractStart = "INTERACT_START"
	OpInteractStop  = "INTERACT_STOP"
)

// ACT (client -> server)
type ActMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Ref             string `json:"ref,omitempty"`
	Op              string `json:"op"`
	Pos             [3]int `json:"pos"`
	// Ctrl mirrors the modifier key that has to be held to apply material.
	Ctrl bool `json:"ctrl,omitempty"`

	// HOLD/PLACE payload.
	Item   string  `json:"item,omitempty"`
	Count  int     `json:"count,omitempty"`
	Liquid string  `json:"liquid,omitempty"`
	Litres float64 `json:"litres,omitempty"`
}
