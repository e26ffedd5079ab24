// Package ident mints the two identifier kinds used by the draft engine:
// a collision-resistant, timestamp-sortable global identifier used as a
// primary key, and a human-friendly per-month sequence code used as a local
// order reference.
package ident

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Alphabet is the crockford base32 alphabet: no I, L, O or U, so generated
// ids survive manual transcription.
const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	// Len is the total identifier length: 10 timestamp chars + 16 random.
	Len = 26

	timeLen = 10
	randLen = 16
)

// decode maps alphabet bytes back to their 5-bit values; 0xFF marks bytes
// outside the alphabet.
var decode [256]byte

func init() {
	for i := range decode {
		decode[i] = 0xFF
	}
	for i := 0; i < len(Alphabet); i++ {
		decode[Alphabet[i]] = byte(i)
	}
}

// New returns a fresh identifier stamped with the current wall clock.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns an identifier whose timestamp prefix encodes t. Two ids
// minted at different milliseconds order by mint time under plain string
// comparison; within the same millisecond ordering falls to the random
// suffix.
func NewAt(t time.Time) string {
	var buf [Len]byte

	// 48-bit millisecond timestamp, most-significant digit first. 10 chars
	// hold 50 bits, so the top two bits are always zero.
	ms := uint64(t.UnixMilli()) & 0xFFFFFFFFFFFF
	for i := timeLen - 1; i >= 0; i-- {
		buf[i] = Alphabet[ms&0x1F]
		ms >>= 5
	}

	// 80 bits of entropy, 5 bits per char.
	var entropy [randLen]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		// crypto/rand reading from the OS pool does not fail in practice;
		// an id generator with an error return poisons every caller.
		panic(fmt.Sprintf("ident: entropy source failed: %v", err))
	}
	for i := 0; i < randLen; i++ {
		buf[timeLen+i] = Alphabet[entropy[i]&0x1F]
	}

	return string(buf[:])
}

// IsValid reports whether id is a well-formed identifier: exactly 26
// characters, all from the crockford alphabet, with a timestamp prefix that
// fits in 48 bits (first character '0'..'7').
func IsValid(id string) bool {
	if len(id) != Len {
		return false
	}
	for i := 0; i < Len; i++ {
		if decode[id[i]] == 0xFF {
			return false
		}
	}
	return id[0] <= '7'
}

// Timestamp extracts the mint time encoded in id's prefix, truncated to
// millisecond precision.
func Timestamp(id string) (time.Time, error) {
	if !IsValid(id) {
		return time.Time{}, fmt.Errorf("ident: invalid identifier %q", id)
	}
	var ms uint64
	for i := 0; i < timeLen; i++ {
		ms = ms<<5 | uint64(decode[id[i]])
	}
	return time.UnixMilli(int64(ms)), nil
}
