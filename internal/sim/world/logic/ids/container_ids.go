package ids

import (
	"fmt"
	"strconv"
	"strings"
)

// PosID names a positional object, e.g. "NITRE_BED@3,8,-2".
func PosID(typ string, x, y, z int) string {
	return fmt.Sprintf("%s@%d,%d,%d", typ, x, y, z)
}

func ParsePosID(id string) (typ string, x, y, z int, ok bool) {
	parts := strings.SplitN(id, "@", 2)
	if len(parts) != 2 {
		return "", 0, 0, 0, false
	}
	typ = parts[0]
	coord := strings.Split(parts[1], ",")
	if len(coord) != 3 {
		return "", 0, 0, 0, false
	}
	x, err1 := strconv.Atoi(coord[0])
	y, err2 := strconv.Atoi(coord[1])
	z, err3 := strconv.Atoi(coord[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return "", 0, 0, 0, false
	}
	return typ, x, y, z, true
}

func BedIDAt(x, y, z int) string {
	return PosID("NITRE_BED", x, y, z)
}

// ActorID formats the n-th actor id handed out by a world.
func ActorID(n uint64) string {
	return "P" + strconv.FormatUint(n, 10)
}

func ParseActorNum(id string) (uint64, bool) {
	if !strings.HasPrefix(id, "P") {
		return 0, false
	}
	n, err := strconv.ParseUint(id[1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
