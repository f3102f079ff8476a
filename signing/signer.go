package signing

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/spacemeshos/go-txfactory/common/types"
)

type edSignerOption struct {
	priv PrivateKey
}

// EdSignerOptionFunc modifies EdSigner.
type EdSignerOptionFunc func(*edSignerOption) error

// WithPrivateKey sets the private key used by EdSigner.
func WithPrivateKey(priv PrivateKey) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		if opt.priv != nil {
			return errors.New("invalid option WithPrivateKey: private key already set")
		}

		if len(priv) != ed25519.PrivateKeySize {
			return errors.New("could not create EdSigner: invalid key length")
		}

		keyPair := ed25519.NewKeyFromSeed(priv[:SeedSize])
		if !bytes.Equal(keyPair[SeedSize:], priv.Public().(ed25519.PublicKey)) {
			return errors.New("private and public do not match")
		}

		opt.priv = priv
		return nil
	}
}

// WithSeed expands the private key used by EdSigner from a 32 byte seed.
func WithSeed(seed []byte) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		if opt.priv != nil {
			return errors.New("invalid option WithSeed: private key already set")
		}
		if len(seed) != SeedSize {
			return fmt.Errorf("invalid seed size %d/%d", len(seed), SeedSize)
		}
		opt.priv = ed25519.NewKeyFromSeed(seed)
		return nil
	}
}

// EdSigner represents an ED25519 signer.
type EdSigner struct {
	priv PrivateKey
}

// NewEdSigner returns an ed signer. Without options the key is generated
// from the system randomness source.
func NewEdSigner(opts ...EdSignerOptionFunc) (*EdSigner, error) {
	cfg := &edSignerOption{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.priv == nil {
		_, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return nil, fmt.Errorf("could not generate key pair: %w", err)
		}
		cfg.priv = priv
	}
	return &EdSigner{priv: cfg.priv}, nil
}

// Sign signs the provided message.
func (es *EdSigner) Sign(m []byte) []byte {
	return ed25519.Sign(es.priv, m)
}

// PublicKey returns the public key of the signer.
func (es *EdSigner) PublicKey() *PublicKey {
	return NewPublicKey(Public(es.priv))
}

// AccountID returns the account controlled by the signer.
func (es *EdSigner) AccountID() types.AccountID {
	return types.BytesToAccountID(Public(es.priv))
}

// PrivateKey returns private key.
func (es *EdSigner) PrivateKey() PrivateKey {
	return es.priv
}

func (es *EdSigner) String() string {
	return es.PublicKey().ShortString()
}
