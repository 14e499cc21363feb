package network

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"boscoin.io/announcer/lib/common"
	"boscoin.io/announcer/lib/errors"
	"boscoin.io/announcer/lib/network/httputils"
)

var VerboseLogs bool

func RecoverMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", r)
					}
					httputils.WriteJSONError(w, err)
					logger.Error("recover an panic", "err", err)
					if VerboseLogs {
						debug.PrintStack()
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware limits requests per client ip with an in-memory
// store. Addresses in `rule.ByIPAddress` use their own rate. A zero rate
// disables limiting.
func RateLimitMiddleware(logger logging.Logger, rule common.RateLimitRule) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	store := memory.NewStore()
	newLimiter := func(rate limiter.Rate) mux.MiddlewareFunc {
		if rate.Limit < 1 {
			return func(next http.Handler) http.Handler {
				return next
			}
		}

		middleware := stdlib.NewMiddleware(
			limiter.New(store, rate),
			stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
				logger.Debug("too many requests", "remote", r.RemoteAddr, "uri", r.RequestURI)
				httputils.WriteJSONError(w, errors.TooManyRequests)
			}),
			stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				logger.Error("rate limiter failed", "err", err)
				httputils.WriteJSONError(w, errors.Wrap(errors.InternalServerError, err))
			}),
		)
		return middleware.Handler
	}

	defaultLimiter := newLimiter(rule.Default)
	if len(rule.ByIPAddress) < 1 {
		return defaultLimiter
	}

	ipLimiters := map[string]mux.MiddlewareFunc{}
	for ip, rate := range rule.ByIPAddress {
		ipLimiters[ip] = newLimiter(rate)
	}
	getIP := limiter.New(store, rule.Default).GetIP

	return func(next http.Handler) http.Handler {
		defaultHandler := defaultLimiter(next)
		ipHandlers := map[string]http.Handler{}
		for ip, mw := range ipLimiters {
			ipHandlers[ip] = mw(next)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h, found := ipHandlers[getIP(r).String()]; found {
				h.ServeHTTP(w, r)
				return
			}
			defaultHandler.ServeHTTP(w, r)
		})
	}
}
