package digestcodec

import "encoding/binary"

func WriteU64(w mapWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.Write(tmp[:])
}

func WriteI64(w mapWriter, tmp *[8]byte, v int64) {
	WriteU64(w, tmp, uint64(v))
}

// WriteString writes s length-prefixed so adjacent strings cannot collide.
func WriteString(w mapWriter, s string) {
	var tmp [8]byte
	WriteU64(w, &tmp, uint64(len(s)))
	w.Write([]byte(s))
}
