package types

import (
	"fmt"
	"math/big"
)

// PerbillAccuracy is the number of parts in a whole.
const PerbillAccuracy = 1_000_000_000

// Perbill is a fixed point fraction in parts per billion.
type Perbill uint32

// PerbillFromRational returns the closest Perbill to p/q. The result saturates
// at one whole; q == 0 is treated as one whole.
func PerbillFromRational(p, q uint64) Perbill {
	if q == 0 || p >= q {
		return PerbillAccuracy
	}
	num := new(big.Int).Mul(new(big.Int).SetUint64(p), big.NewInt(PerbillAccuracy))
	den := new(big.Int).SetUint64(q)
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	// round half up
	if rem.Lsh(rem, 1).Cmp(den) >= 0 {
		quo.Add(quo, big.NewInt(1))
	}
	return Perbill(quo.Uint64())
}

// String implements fmt.Stringer.
func (p Perbill) String() string {
	return fmt.Sprintf("%d.%07d%%", uint32(p)/10_000_000, uint32(p)%10_000_000)
}
