package hash

import "golang.org/x/crypto/blake2b"

const (
	// Size of the digests produced by this package (32 bytes).
	Size = blake2b.Size256
)

// Blake2b256 is the hash used when a signing payload is too long to be signed directly.
var Blake2b256 = blake2b.Sum256

// Sum computes blake3 digest of the chunks using a pooled hasher.
func Sum(chunks ...[]byte) (rst [Size]byte) {
	hh := GetHasher()
	defer PutHasher(hh)
	for _, chunk := range chunks {
		hh.Write(chunk)
	}
	hh.Sum(rst[:0])
	return rst
}
