package board

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID generates identifiers for new columns and cards. ULIDs sort by
// creation time, which keeps generated ids stable and diff-friendly in the
// persisted text. It is a variable so tests can substitute a deterministic
// sequence; this is the only place the core consumes randomness or time.
var NewID = ulidID

func ulidID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
