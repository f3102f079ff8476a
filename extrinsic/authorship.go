package extrinsic

import (
	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-txfactory/common/types"
)

const maxUncles = 1 << 10

// SetUncles provides uncle headers for the block being authored.
type SetUncles struct {
	Uncles []types.Header
}

func (*SetUncles) call() {}

// Index implements Call.
func (*SetUncles) Index() CallIndex { return CallIndex{PalletAuthorship, 0} }

// Name implements Call.
func (*SetUncles) Name() string { return "authorship.set_uncles" }

// EncodeScale implements scale codec interface.
func (c *SetUncles) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeStructSliceWithLimit(e, c.Uncles, maxUncles)
}

// DecodeScale implements scale codec interface.
func (c *SetUncles) DecodeScale(d *scale.Decoder) (int, error) {
	uncles, n, err := scale.DecodeStructSliceWithLimit[types.Header](d, maxUncles)
	if err != nil {
		return n, err
	}
	if len(uncles) == 0 {
		uncles = nil
	}
	c.Uncles = uncles
	return n, nil
}
