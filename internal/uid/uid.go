// Package uid generates short crypto-random identifiers and ULIDs using
// the Crockford base-32 alphabet (excludes I, L, O, U).
package uid

import (
	"crypto/rand"
	"time"
)

const letters = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	ulidTimeLen   = 10
	ulidRandomLen = 16
)

// UID generates a crypto-random base-32 string of the given length.
// Size >= 10 is suitably unique for most use-cases.
func UID(size int) string {
	return randomChars(size)
}

// ULID returns a Universally Unique Lexicographically Sortable Identifier
// for the current time. https://github.com/ulid/spec
func ULID() string {
	return ULIDAt(time.Now())
}

// ULIDAt returns a ULID for the given time.
func ULIDAt(t time.Time) string {
	ms := t.UnixMilli()
	b := make([]byte, ulidTimeLen)
	for i := ulidTimeLen - 1; i >= 0; i-- {
		b[i] = letters[ms%int64(len(letters))]
		ms /= int64(len(letters))
	}
	return string(b) + randomChars(ulidRandomLen)
}

func randomChars(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("uid: crypto/rand read failed: " + err.Error())
	}
	out := make([]byte, n)
	for i, c := range buf {
		out[i] = letters[int(c)%len(letters)]
	}
	return string(out)
}
