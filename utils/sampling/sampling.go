// Package sampling implements deterministic sampling of bytes and integers.
package sampling

import (
	"encoding/binary"
)

// RandUint64 returns a value read from prng in [0, 0xFFFFFFFFFFFFFFFF].
func RandUint64(prng PRNG) uint64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := prng.Read(b); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b)
}

// RandInt64 returns a value read from prng in [min, max].
func RandInt64(prng PRNG, min, max int64) int64 {
	if max < min {
		panic("cannot RandInt64: max < min")
	}
	span := uint64(max-min) + 1
	if span == 0 {
		return int64(RandUint64(prng))
	}
	return min + int64(RandUint64(prng)%span)
}

// RandDigits returns a decimal string of n digits read from prng, without leading zero,
// optionally prefixed by a minus sign.
func RandDigits(prng PRNG, n int, signed bool) string {
	if n <= 0 {
		return "0"
	}
	buf := make([]byte, 0, n+1)
	if signed && RandUint64(prng)&1 == 1 {
		buf = append(buf, '-')
	}
	buf = append(buf, byte('1'+RandUint64(prng)%9))
	for i := 1; i < n; i++ {
		buf = append(buf, byte('0'+RandUint64(prng)%10))
	}
	return string(buf)
}
