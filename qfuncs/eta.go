package qfuncs

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils/bignum"
)

// ErrInvalidArgument is returned when a q-function is called outside of its domain.
var ErrInvalidArgument = errors.New("qfuncs: invalid argument")

// Etaq returns the eta building block prod_{n>=1, kn<T} (1 - q^{kn}) + O(q^T).
// For the canonical indeterminate the result is read off Euler's pentagonal
// theorem, otherwise it is built by repeated multiplication.
// Returns ErrInvalidArgument if k <= 0.
func Etaq(q series.Series, k, T int) (series.Series, error) {

	if k <= 0 {
		return series.Series{}, errors.Wrapf(ErrInvalidArgument, "etaq: k=%d must be positive", k)
	}

	if q.IsCanonicalQ() {
		return pentagonal(k, T), nil
	}

	one := series.One(T)
	qt := q.TruncTo(T)
	result := one
	for n := 1; k*n < T; n++ {
		result = result.Mul(one.Sub(qt.MustPow(k * n)))
	}

	return result, nil
}

// pentagonal returns sum_{j in Z} (-1)^j q^{k j(3j-1)/2} + O(q^T).
func pentagonal(k, T int) series.Series {
	c := map[int]bignum.Frac{}
	for j := 0; k*j*(3*j-1)/2 < T; j++ {
		v := bignum.FracOf(1)
		if j%2 == 1 {
			v = v.Neg()
		}
		c[k*j*(3*j-1)/2] = v
		if e := k * j * (3*j + 1) / 2; j > 0 && e < T {
			c[e] = v
		}
	}
	return series.New(c, T)
}

type etaKey struct {
	k, T int
}

// EtaCache memoizes Etaq on the canonical indeterminate, keyed by (k, T).
// It is safe for concurrent use. A nil *EtaCache disables memoization.
type EtaCache struct {
	mu sync.Mutex
	m  map[etaKey]series.Series
}

// NewEtaCache returns an empty EtaCache.
func NewEtaCache() *EtaCache {
	return &EtaCache{m: map[etaKey]series.Series{}}
}

// Etaq is the memoized version of the package level Etaq.
// Only calls on the canonical indeterminate are cached.
func (c *EtaCache) Etaq(q series.Series, k, T int) (series.Series, error) {

	if c == nil || !q.IsCanonicalQ() {
		return Etaq(q, k, T)
	}

	key := etaKey{k: k, T: T}

	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.m[key]; ok {
		return s, nil
	}

	s, err := Etaq(q, k, T)
	if err != nil {
		return series.Series{}, err
	}

	if c.m == nil {
		c.m = map[etaKey]series.Series{}
	}
	c.m[key] = s

	return s, nil
}

// Clear drops all the memoized values.
func (c *EtaCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = map[etaKey]series.Series{}
}

// Len returns the number of memoized values.
func (c *EtaCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
