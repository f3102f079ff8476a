package signing

import (
	"fmt"

	"github.com/seehuhn/mt19937"

	"github.com/spacemeshos/go-txfactory/common/types"
)

// SeedBytes expands an integer seed into 32 bytes of key material using
// Mersenne Twister seeded with the integer. The output is reproducible
// across processes and platforms. It is not secret and must not be used
// for keys that protect funds.
func SeedBytes(seed uint32) [SeedSize]byte {
	mt := mt19937.New()
	mt.Seed(int64(seed))
	var rst [SeedSize]byte
	for i := range rst {
		rst[i] = byte(mt.Uint64())
	}
	return rst
}

// DeriveAccountSecret returns the signer for the account derived from seed.
func DeriveAccountSecret(seed uint32) *EdSigner {
	material := SeedBytes(seed)
	signer, err := NewEdSigner(WithSeed(material[:]))
	if err != nil {
		// seed size is fixed, this is unreachable
		panic(fmt.Sprintf("derive account %d: %v", seed, err))
	}
	return signer
}

// DeriveAccountID returns the account id derived from seed.
func DeriveAccountID(seed uint32) types.AccountID {
	return DeriveAccountSecret(seed).AccountID()
}
