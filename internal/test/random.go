package test

import (
	"math/rand"
	"sync"
	"time"
)

const hexDigits = "0123456789abcdef"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomTxHash returns a pseudo-random 64 character hex string shaped like a
// transaction hash.
func RandomTxHash() string {
	buf := make([]byte, 64)
	rngMu.Lock()
	for i := range buf {
		buf[i] = hexDigits[rng.Intn(len(hexDigits))]
	}
	rngMu.Unlock()
	return string(buf)
}
