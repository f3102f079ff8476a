package signing

import (
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/spacemeshos/go-txfactory/common/types"
)

// Verify verifies that an ed25519 signature of msg was produced by the account.
// For ed25519 accounts the account id is the public key.
func Verify(account types.AccountID, msg, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(account[:]), msg, sig)
}
