package apkg

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// maxID keeps generated IDs within the range Anki stores losslessly
// (IDs are handled as doubles in some clients).
const maxID = int64(1) << 53

// stableID maps a name to a positive 64-bit ID deterministically, so
// regenerating a package from the same export produces the same IDs.
// The range starts at 2 to keep clear of Anki's reserved default deck
// ID 1.
func stableID(name string) int64 {
	return int64(xxhash.Sum64String(name)%uint64(maxID-2)) + 2
}

// noteGUID derives a note GUID from its identity key. Anki uses the
// GUID to recognise re-imported notes and update them in place.
func noteGUID(key string) string {
	return strconv.FormatUint(xxhash.Sum64String(key), 36)
}

// fieldChecksum computes the notes.csum column value: the integer
// value of the first 8 hex digits of the SHA-1 of the sort field.
func fieldChecksum(field string) int64 {
	sum := sha1.Sum([]byte(field))
	n, err := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	if err != nil {
		return 0
	}
	return n
}
