// Package mongoid generates the 24 hex character object ids used as keys throughout the catalog.
package mongoid

import (
	"encoding/hex"
	"regexp"
	"strconv"

	"github.com/rs/xid"
	"github.com/zeebo/xxh3"
)

var pattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// New returns a fresh, process-unique object id. xid shares the 12 byte
// layout of a BSON ObjectId (timestamp, machine, pid, counter).
func New() string {
	return hex.EncodeToString(xid.New().Bytes())
}

// Derive returns a deterministic object id for the index-th child of base.
// The same (base, index) pair always yields the same id; callers are responsible
// for checking the result against ids already present in the catalog.
func Derive(base string, index int) string {
	sum := xxh3.HashString128(base + "#" + strconv.Itoa(index)).Bytes()
	return hex.EncodeToString(sum[:12])
}

// Valid reports whether id is a well-formed object id.
func Valid(id string) bool {
	return pattern.MatchString(id)
}
