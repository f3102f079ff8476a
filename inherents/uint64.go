package inherents

import (
	"encoding/binary"

	"github.com/spacemeshos/go-scale"
)

func encodeUint64(e *scale.Encoder, value uint64) (int, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], value)
	return scale.EncodeByteArray(e, buf[:])
}

func decodeUint64(d *scale.Decoder) (uint64, int, error) {
	var buf [8]byte
	n, err := scale.DecodeByteArray(d, buf[:])
	if err != nil {
		return 0, n, err
	}
	return binary.LittleEndian.Uint64(buf[:]), n, nil
}
