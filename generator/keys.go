package generator

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/spacemeshos/go-txfactory/common/types"
	"github.com/spacemeshos/go-txfactory/signing"
)

// keyCache memoizes derived keys, derivation runs ed25519 key expansion.
// It is safe for concurrent use.
type keyCache struct {
	cache *lru.Cache[uint32, *signing.EdSigner]
}

func newKeyCache(size int) (*keyCache, error) {
	cache, err := lru.New[uint32, *signing.EdSigner](size)
	if err != nil {
		return nil, fmt.Errorf("create key cache: %w", err)
	}
	return &keyCache{cache: cache}, nil
}

func (kc *keyCache) signer(seed uint32) *signing.EdSigner {
	if signer, ok := kc.cache.Get(seed); ok {
		keyCacheHits.Inc()
		return signer
	}
	keyCacheMisses.Inc()
	signer := signing.DeriveAccountSecret(seed)
	kc.cache.Add(seed, signer)
	return signer
}

func (kc *keyCache) accountID(seed uint32) types.AccountID {
	return kc.signer(seed).AccountID()
}
