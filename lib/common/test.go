package common

import (
	"time"

	"github.com/ulule/limiter/v3"
)

// NewTestConfig initializes a config object for unittests
func NewTestConfig() Config {
	p := NewConfig([]byte("announcer-unittest"))
	p.RecordCacheSize = 16
	p.RateLimitRuleAPI = NewRateLimitRule(limiter.Rate{Period: time.Second, Limit: 10000})

	return p
}
