package types

import (
	"encoding/hex"

	"github.com/spacemeshos/go-scale"
)

// AccountIDLength is the length of an account identifier. For ed25519
// accounts the identifier is the public key itself.
const AccountIDLength = 32

// AccountID identifies an account on chain.
type AccountID [AccountIDLength]byte

// BytesToAccountID copies b into an AccountID. Extra bytes are dropped.
func BytesToAccountID(b []byte) AccountID {
	var id AccountID
	copy(id[:], b)
	return id
}

// Bytes returns the account id as a byte slice.
func (id AccountID) Bytes() []byte { return id[:] }

// String returns hex representation of the account id with 0x prefix.
func (id AccountID) String() string { return "0x" + hex.EncodeToString(id[:]) }

// ShortString returns the first 5 hex characters, for logging purposes.
func (id AccountID) ShortString() string { return hex.EncodeToString(id[:])[:5] }

// EncodeScale implements scale codec interface.
func (id *AccountID) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, id[:])
}

// DecodeScale implements scale codec interface.
func (id *AccountID) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, id[:])
}
