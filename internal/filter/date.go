package filter

import (
	"time"
)

// allowed clock skew for instants that land slightly in the future
const futureSkew = 2 * 24 * time.Hour

// IsRecent reports whether a resolved post instant falls inside maxAge before
// now. maxAge <= 0 disables the age check. Instants more than two days ahead
// of now are rejected either way (timezone issues or a bad parse).
func IsRecent(instant, now time.Time, maxAge time.Duration) bool {
	if instant.IsZero() {
		return false
	}

	diff := now.Sub(instant)
	//reject if future date >2 days
	if diff < -futureSkew {
		return false
	}

	//reject if older than maxAge
	if maxAge > 0 && diff > maxAge {
		return false
	}
	return true
}
