package shared

import (
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// NextID returns a millisecond-timestamp identifier. Two calls within the
// same millisecond get consecutive values, so ids stay unique within a
// process while keeping the numeric JSON shape.
func NextID() int64 {
	now := time.Now().UnixMilli()
	for {
		last := lastID.Load()
		if now <= last {
			now = last + 1
		}
		if lastID.CompareAndSwap(last, now) {
			return now
		}
	}
}
