package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// IDs are ULID-shaped: 26 Crockford base32 characters, a 48-bit millisecond
// timestamp followed by a per-millisecond sequence and random bits, so they
// sort by creation time.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	idMu    sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

// NewID returns a new time-ordered identifier for jobs and sessions.
func NewID() string {
	idMu.Lock()
	ts := uint64(time.Now().UnixMilli())
	if ts <= lastTS {
		ts = lastTS
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}
	seq := lastSeq
	idMu.Unlock()

	var b [16]byte
	rand.Read(b[6:])
	binary.BigEndian.PutUint64(b[:8], ts<<16|uint64(seq))
	return encodeCrockford(b)
}

// encodeCrockford renders 128 bits as 26 base32 characters, most
// significant first.
func encodeCrockford(b [16]byte) string {
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])
	var out [26]byte
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
