package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type visitor struct {
	count   int
	resetAt time.Time
}

// RateLimit caps requests per client IP per window. A request is counted at
// admission, so a batch call that stays open for minutes spends one unit of
// budget no matter how long the generation runs. Expired entries are pruned
// lazily, once per window, to keep the map from accreting one-off IPs.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	var mu sync.Mutex
	visitors := make(map[string]*visitor)
	lastPrune := time.Now()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			now := time.Now()

			mu.Lock()
			if now.Sub(lastPrune) > per {
				for key, v := range visitors {
					if now.After(v.resetAt) {
						delete(visitors, key)
					}
				}
				lastPrune = now
			}
			v, ok := visitors[ip]
			if !ok || now.After(v.resetAt) {
				v = &visitor{resetAt: now.Add(per)}
				visitors[ip] = v
			}
			if v.count >= limit {
				retry := int(time.Until(v.resetAt).Seconds()) + 1
				mu.Unlock()
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			v.count++
			mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip == "" {
				continue
			}
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		if net.ParseIP(host) != nil {
			return host
		}
	} else if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}

	return r.RemoteAddr
}
