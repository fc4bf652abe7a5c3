package protocol_test

import (
	"encoding/json"
	"testing"

	"saltpeter.ai/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	v, err := protocol.NewValidator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	ok := func(typ, raw string) {
		t.Helper()
		if err := v.Validate(typ, []byte(raw)); err != nil {
			t.Fatalf("%s: %v", typ, err)
		}
	}
	bad := func(typ, raw string) {
		t.Helper()
		if err := v.Validate(typ, []byte(raw)); err == nil {
			t.Fatalf("%s: expected rejection of %s", typ, raw)
		}
	}

	ok(protocol.TypeHello, `{"type":"HELLO","protocol_version":"1.0","player_name":"p1"}`)
	bad(protocol.TypeHello, `{"type":"HELLO","protocol_version":"1.0"}`)

	ok(protocol.TypeAct, `{"type":"ACT","protocol_version":"1.0","op":"INTERACT_START","pos":[1,7,2],"ctrl":true}`)
	ok(protocol.TypeAct, `{"type":"ACT","protocol_version":"1.0","op":"INTERACT_STOP"}`)
	ok(protocol.TypeAct, `{"type":"ACT","protocol_version":"1.0","op":"HOLD","item":"WOOD_BUCKET","count":1,"liquid":"URINE","litres":10}`)
	bad(protocol.TypeAct, `{"type":"ACT","protocol_version":"1.0","op":"BREAK"}`)
	bad(protocol.TypeAct, `{"type":"ACT","protocol_version":"1.0","op":"EXPLODE","pos":[0,0,0]}`)
	bad(protocol.TypeAct, `{"type":"ACT","protocol_version":"1.0","op":"PLACE","pos":[0,0]}`)
	bad(protocol.TypeAct, `{"type":"ACT","protocol_version":"1.0","op":"HOLD","count":-1}`)

	// Types without a schema pass through.
	ok(protocol.TypeWelcome, `not even json`)
}

func TestSchemas_ObsMatchesEncoder(t *testing.T) {
	v, err := protocol.NewValidator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	obs := protocol.ObsMsg{
		Type:            protocol.TypeObs,
		ProtocolVersion: protocol.Version,
		Tick:            42,
		ActorID:         "P1",
		TotalHours:      12.5,
		Self:            protocol.SelfObs{Pos: [3]int{0, 8, 0}, Held: protocol.HeldObs{Item: "ROT", Count: 3}},
		Beds: []protocol.BedObs{{
			Pos:      [3]int{1, 7, 0},
			Block:    "NITRE_BED_MOIST",
			Above:    "AIR",
			Material: 0.4,
			Info:     []string{"Fill 40%"},
		}},
	}
	b, err := json.Marshal(obs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := v.Validate(protocol.TypeObs, b); err != nil {
		t.Fatalf("obs: %v", err)
	}
}
