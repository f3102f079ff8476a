package signing

import (
	"encoding/hex"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/spacemeshos/go-txfactory/common/types"
)

// PrivateKey is an alias to ed25519.PrivateKey.
type PrivateKey = ed25519.PrivateKey

const (
	// PrivateKeySize size of the private key in bytes.
	PrivateKeySize = ed25519.PrivateKeySize
	// SeedSize size of the seed a private key is expanded from.
	SeedSize = ed25519.SeedSize
	// SignatureSize size of a signature in bytes.
	SignatureSize = ed25519.SignatureSize
)

// Public returns the public key of priv.
func Public(priv PrivateKey) ed25519.PublicKey {
	return priv.Public().(ed25519.PublicKey)
}

// PublicKey is the type describing a public key.
type PublicKey struct {
	ed25519.PublicKey
}

// NewPublicKey constructs a new public key instance from a byte array.
func NewPublicKey(pub []byte) *PublicKey {
	return &PublicKey{pub}
}

// Bytes returns the public key as byte array.
func (p *PublicKey) Bytes() []byte {
	// Prevent segfault if unset
	if p != nil {
		return p.PublicKey
	}
	return nil
}

// AccountID returns the account identified by this key.
func (p *PublicKey) AccountID() types.AccountID {
	return types.BytesToAccountID(p.Bytes())
}

// String returns the public key as a hex representation string.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

const shortStringSize = 5

// ShortString returns a representative sub string.
func (p *PublicKey) ShortString() string {
	s := p.String()
	if len(s) < shortStringSize {
		return s
	}

	return s[:shortStringSize]
}
