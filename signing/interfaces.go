package signing

import "github.com/spacemeshos/go-txfactory/common/types"

// Signer is a common interface for signature generation.
type Signer interface {
	Sign([]byte) []byte
	AccountID() types.AccountID
}
