package redisserver

import (
	"golang.org/x/time/rate"

	"github.com/yndnr/respkv/pkg/cmap"
)

// ipLimiter is a token bucket per client IP. Every IP gets a bucket of
// perSecond tokens that refills at perSecond tokens per second.
type ipLimiter struct {
	buckets *cmap.Map[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
}

func newIPLimiter(perSecond int) *ipLimiter {
	if perSecond <= 0 {
		return nil
	}
	return &ipLimiter{
		buckets: cmap.New[string, *rate.Limiter](),
		limit:   rate.Limit(perSecond),
		burst:   perSecond,
	}
}

// allow reports whether a command from ip may proceed. A nil limiter
// allows everything.
func (l *ipLimiter) allow(ip string) bool {
	if l == nil {
		return true
	}
	lim, ok := l.buckets.Get(ip)
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		if !l.buckets.SetIfAbsent(ip, lim) {
			lim, _ = l.buckets.Get(ip)
		}
	}
	return lim.Allow()
}
