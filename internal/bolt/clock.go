package bolt

import (
	"time"

	"github.com/agilira/go-timecache"
)

// clockResolution is how often the cached clock refreshes. Sub-tick
// resolution would defeat the point of caching; this is coarse enough to
// avoid a syscall on every insert while still being fine enough that
// callers relying on DB.Now() get a useful ordering signal.
const clockResolution = 100 * time.Microsecond

// clock wraps a cached nanosecond clock so DB.Now() does not pay a
// time.Now() syscall on every call.
type clock struct {
	cache *timecache.TimeCache
}

func newClock() *clock {
	return &clock{cache: timecache.NewWithResolution(clockResolution)}
}

func (c *clock) now() uint64 {
	return uint64(c.cache.CachedTime().UnixNano())
}

func (c *clock) stop() {
	c.cache.Stop()
}
