// Package eventid generates short shareable event identifiers.
package eventid

import (
	"crypto/rand"
	"math/big"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	Length   = 10
)

// New returns a random alphanumeric token. Uniqueness is not verified here;
// the event store carries a unique index and insertion surfaces collisions.
func New() string {
	buf := make([]byte, Length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("eventid: crypto/rand unavailable: " + err.Error())
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf)
}
