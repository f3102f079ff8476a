package extrinsic

import (
	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-txfactory/common/types"
)

// EraPeriod is the mortality period of extrinsics produced by the factory.
const EraPeriod = 256

// SignedExtra is the tuple of signed extensions:
// CheckVersion, CheckGenesis, CheckEra, CheckNonce, CheckWeight,
// ChargeTransactionPayment and CheckBlockGasLimit.
//
// Only the era, the nonce and the tip are carried in the extrinsic,
// the other extensions encode to nothing.
type SignedExtra struct {
	Era   types.Era
	Nonce uint32
	Tip   uint64
}

// NewSignedExtra returns extensions for an extrinsic with nonce, mortal
// from the block at phase. The tip is zero.
func NewSignedExtra(nonce uint32, phase uint64) SignedExtra {
	return SignedExtra{
		Era:   types.MortalEra(EraPeriod, phase),
		Nonce: nonce,
	}
}

// EncodeScale implements scale codec interface.
func (se *SignedExtra) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := se.Era.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := scale.EncodeCompact32(e, se.Nonce)
	total += n
	if err != nil {
		return total, err
	}
	n, err = scale.EncodeCompact64(e, se.Tip)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (se *SignedExtra) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := se.Era.DecodeScale(d)
	if err != nil {
		return total, err
	}
	nonce, n, err := scale.DecodeCompact32(d)
	total += n
	if err != nil {
		return total, err
	}
	se.Nonce = nonce
	tip, n, err := scale.DecodeCompact64(d)
	total += n
	if err != nil {
		return total, err
	}
	se.Tip = tip
	return total, nil
}

// AdditionalSigned is the data signed together with the extrinsic but not
// included into it. The unit fields of the remaining extensions encode to
// nothing and are not represented.
type AdditionalSigned struct {
	SpecVersion uint32
	GenesisHash types.Hash256
	// BlockHash is the hash of the block that starts the era.
	BlockHash types.Hash256
}

// EncodeScale implements scale codec interface.
func (as *AdditionalSigned) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := scale.EncodeUint32(e, as.SpecVersion)
	if err != nil {
		return total, err
	}
	n, err := as.GenesisHash.EncodeScale(e)
	total += n
	if err != nil {
		return total, err
	}
	n, err = as.BlockHash.EncodeScale(e)
	return total + n, err
}
