package extrinsic

import (
	"github.com/spacemeshos/go-scale"
)

// maxNameLength bounds decoded nick names. The runtime enforces a much
// smaller limit, this one only protects the decoder.
const maxNameLength = 4096

// SetName sets the nickname of the signer.
type SetName struct {
	Nick []byte
}

func (*SetName) call() {}

// Index implements Call.
func (*SetName) Index() CallIndex { return CallIndex{PalletNicks, 0} }

// Name implements Call.
func (*SetName) Name() string { return "nicks.set_name" }

// EncodeScale implements scale codec interface.
func (c *SetName) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteSliceWithLimit(e, c.Nick, maxNameLength)
}

// DecodeScale implements scale codec interface.
func (c *SetName) DecodeScale(d *scale.Decoder) (int, error) {
	name, n, err := scale.DecodeByteSliceWithLimit(d, maxNameLength)
	if err != nil {
		return n, err
	}
	if len(name) == 0 {
		name = nil
	}
	c.Nick = name
	return n, nil
}

// ClearName removes the nickname of the signer.
type ClearName struct{}

func (*ClearName) call() {}

// Index implements Call.
func (*ClearName) Index() CallIndex { return CallIndex{PalletNicks, 1} }

// Name implements Call.
func (*ClearName) Name() string { return "nicks.clear_name" }

// EncodeScale implements scale codec interface.
func (*ClearName) EncodeScale(*scale.Encoder) (int, error) { return 0, nil }

// DecodeScale implements scale codec interface.
func (*ClearName) DecodeScale(*scale.Decoder) (int, error) { return 0, nil }
