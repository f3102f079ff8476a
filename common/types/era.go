package types

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/spacemeshos/go-scale"
)

// ErrInvalidEra is returned when decoding an era with invalid period and phase.
var ErrInvalidEra = errors.New("invalid era")

const (
	minEraPeriod = 4
	maxEraPeriod = 1 << 16
)

// Era is the mortality window of a signed extrinsic. Zero Period means immortal.
type Era struct {
	Period uint64
	Phase  uint64
}

// ImmortalEra returns an era that never expires.
func ImmortalEra() Era {
	return Era{}
}

// MortalEra returns an era valid for period blocks, starting from the block
// at current. period is rounded up to the power of two and clamped to [4, 65536].
func MortalEra(period, current uint64) Era {
	switch {
	case period > maxEraPeriod/2:
		period = maxEraPeriod
	case period <= minEraPeriod:
		period = minEraPeriod
	default:
		period = 1 << bits.Len64(period-1)
	}
	phase := current % period
	factor := quantizeFactor(period)
	return Era{Period: period, Phase: phase / factor * factor}
}

func quantizeFactor(period uint64) uint64 {
	return max(period>>12, 1)
}

// IsImmortal returns true if era doesn't expire.
func (e Era) IsImmortal() bool {
	return e.Period == 0
}

// Birth returns the first block number of the era that contains current.
func (e Era) Birth(current uint64) uint64 {
	if e.IsImmortal() {
		return 0
	}
	return (max(current, e.Phase)-e.Phase)/e.Period*e.Period + e.Phase
}

// Death returns the first block number at which the era is no longer valid.
func (e Era) Death(current uint64) uint64 {
	if e.IsImmortal() {
		return math.MaxUint64
	}
	return e.Birth(current) + e.Period
}

// String implements fmt.Stringer.
func (e Era) String() string {
	if e.IsImmortal() {
		return "immortal"
	}
	return fmt.Sprintf("mortal(%d, %d)", e.Period, e.Phase)
}

// EncodeScale implements scale codec interface.
func (e *Era) EncodeScale(enc *scale.Encoder) (int, error) {
	if e.IsImmortal() {
		return scale.EncodeByte(enc, 0)
	}
	tz := uint64(bits.TrailingZeros64(e.Period))
	encoded := min(max(tz-1, 1), 15) | (e.Phase/quantizeFactor(e.Period))<<4
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(encoded))
	return scale.EncodeByteArray(enc, buf[:])
}

// DecodeScale implements scale codec interface.
func (e *Era) DecodeScale(dec *scale.Decoder) (int, error) {
	first, total, err := scale.DecodeByte(dec)
	if err != nil {
		return total, err
	}
	if first == 0 {
		*e = Era{}
		return total, nil
	}
	second, n, err := scale.DecodeByte(dec)
	total += n
	if err != nil {
		return total, err
	}
	encoded := uint64(first) | uint64(second)<<8
	period := uint64(2) << (encoded % (1 << 4))
	phase := (encoded >> 4) * quantizeFactor(period)
	if period < minEraPeriod || phase >= period {
		return total, fmt.Errorf("%w: period %d phase %d", ErrInvalidEra, period, phase)
	}
	*e = Era{Period: period, Phase: phase}
	return total, nil
}
