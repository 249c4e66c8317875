package sampling

import (
	"io"
	"sync"

	"github.com/zeebo/blake3"
)

// PRNG is an interface for the generation of random bytes.
type PRNG interface {
	io.Reader
}

// KeyedPRNG is a structure storing the parameters used to *deterministically* generate
// sequences of random bytes using the extendable output of blake3. Two instances created
// with the same key produce the same stream of bytes, which makes randomized tests and
// benchmark inputs reproducible.
// WARNING: KeyedPRNG should NOT be called by multiple threads. The resulting
// sequence would not be deterministic for a given key.
type KeyedPRNG struct {
	mutex  sync.Mutex
	key    []byte
	hasher *blake3.Hasher
	xof    *blake3.Digest
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// Accepts an optional key, else set key=nil which is treated as key=[]byte{}.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	prng := new(KeyedPRNG)
	prng.key = make([]byte, len(key))
	copy(prng.key, key)
	prng.hasher = blake3.New()
	if _, err := prng.hasher.Write(prng.key); err != nil {
		return nil, err
	}
	prng.xof = prng.hasher.Digest()
	return prng, nil
}

// Key returns a copy of the key used to seed the PRNG.
// This value can be used with `NewKeyedPRNG` to instantiate
// a new PRNG that will produce the same stream of bytes.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read reads bytes from the KeyedPRNG on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(sum)
}

// Reset resets the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	prng.xof = prng.hasher.Digest()
}
