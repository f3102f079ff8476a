package extrinsic

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"
)

// ErrUnknownCall is returned when decoding a call with unknown pallet or method index.
var ErrUnknownCall = errors.New("unknown call")

// Pallet indices in the runtime the factory targets.
const (
	PalletAuthorship uint8 = 4
	PalletBalances   uint8 = 6
	PalletStaking    uint8 = 8
	PalletNicks      uint8 = 29
)

// CallIndex identifies a dispatchable: pallet index followed by method index.
type CallIndex struct {
	Pallet uint8
	Method uint8
}

// String implements fmt.Stringer.
func (ci CallIndex) String() string {
	return fmt.Sprintf("%d.%d", ci.Pallet, ci.Method)
}

// Call is a runtime call carried by an extrinsic. The set of calls is closed:
// only types declared in this package implement it.
//
// EncodeScale and DecodeScale of a Call handle call arguments only, the
// call index is written by EncodeCall and consumed by DecodeCall.
type Call interface {
	scale.Encodable
	scale.Decodable
	// Index returns pallet and method indices of the call.
	Index() CallIndex
	// Name returns the name of the call in pallet.method form.
	Name() string

	call()
}

var constructors = map[CallIndex]func() Call{
	{PalletBalances, 0}:   func() Call { return &Transfer{} },
	{PalletNicks, 0}:      func() Call { return &SetName{} },
	{PalletNicks, 1}:      func() Call { return &ClearName{} },
	{PalletAuthorship, 0}: func() Call { return &SetUncles{} },
	{PalletStaking, 0}:    func() Call { return &Bond{} },
	{PalletStaking, 1}:    func() Call { return &BondExtra{} },
	{PalletStaking, 2}:    func() Call { return &Unbond{} },
	{PalletStaking, 3}:    func() Call { return &WithdrawUnbonded{} },
	{PalletStaking, 4}:    func() Call { return &Validate{} },
	{PalletStaking, 5}:    func() Call { return &Nominate{} },
	{PalletStaking, 17}:   func() Call { return &Rebond{} },
}

// EncodeCall writes call index followed by call arguments.
func EncodeCall(e *scale.Encoder, call Call) (int, error) {
	if call == nil {
		return 0, errors.New("encode call: nil call")
	}
	idx := call.Index()
	total, err := scale.EncodeByteArray(e, []byte{idx.Pallet, idx.Method})
	if err != nil {
		return total, err
	}
	n, err := call.EncodeScale(e)
	total += n
	if err != nil {
		return total, fmt.Errorf("encode %s: %w", call.Name(), err)
	}
	return total, nil
}

// DecodeCall reads call index and decodes arguments of the matching call.
func DecodeCall(d *scale.Decoder) (Call, int, error) {
	var buf [2]byte
	total, err := scale.DecodeByteArray(d, buf[:])
	if err != nil {
		return nil, total, err
	}
	idx := CallIndex{Pallet: buf[0], Method: buf[1]}
	constructor, exists := constructors[idx]
	if !exists {
		return nil, total, fmt.Errorf("%w: %s", ErrUnknownCall, idx)
	}
	call := constructor()
	n, err := call.DecodeScale(d)
	total += n
	if err != nil {
		return nil, total, fmt.Errorf("decode %s: %w", call.Name(), err)
	}
	return call, total, nil
}

// EncodeCallBytes returns the encoding of the call with its index.
func EncodeCallBytes(call Call) ([]byte, error) {
	return encodeWith(func(e *scale.Encoder) (int, error) {
		return EncodeCall(e, call)
	})
}
