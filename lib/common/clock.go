package common

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
)

// Clock gives the block time a command executes at.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// NTPClock corrects the local clock by the offset reported by an NTP
// server. The offset is measured by `Sync`; until the first successful
// query the clock behaves like `SystemClock`.
type NTPClock struct {
	sync.RWMutex

	server string
	offset time.Duration
	query  func(string) (*ntp.Response, error)
}

func NewNTPClock(server string) *NTPClock {
	return &NTPClock{server: server, query: ntp.Query}
}

func (c *NTPClock) Sync() error {
	resp, err := c.query(c.server)
	if err != nil {
		return err
	}

	c.Lock()
	c.offset = resp.ClockOffset
	c.Unlock()

	return nil
}

func (c *NTPClock) Offset() time.Duration {
	c.RLock()
	defer c.RUnlock()

	return c.offset
}

func (c *NTPClock) Now() time.Time {
	return time.Now().Add(c.Offset()).UTC()
}

// FixedClock returns the time it was last set to.
type FixedClock struct {
	sync.Mutex
	t time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() time.Time {
	c.Lock()
	defer c.Unlock()

	return c.t
}

func (c *FixedClock) Set(t time.Time) {
	c.Lock()
	c.t = t
	c.Unlock()
}

func (c *FixedClock) Advance(d time.Duration) {
	c.Lock()
	c.t = c.t.Add(d)
	c.Unlock()
}
