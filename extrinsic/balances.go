package extrinsic

import (
	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-txfactory/common/types"
)

// Transfer moves Value from the signer to Dest.
type Transfer struct {
	Dest  types.Address
	Value uint64
}

func (*Transfer) call() {}

// Index implements Call.
func (*Transfer) Index() CallIndex { return CallIndex{PalletBalances, 0} }

// Name implements Call.
func (*Transfer) Name() string { return "balances.transfer" }

// EncodeScale implements scale codec interface.
func (c *Transfer) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := c.Dest.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := scale.EncodeCompact64(e, c.Value)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (c *Transfer) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := c.Dest.DecodeScale(d)
	if err != nil {
		return total, err
	}
	value, n, err := scale.DecodeCompact64(d)
	total += n
	if err != nil {
		return total, err
	}
	c.Value = value
	return total, nil
}
