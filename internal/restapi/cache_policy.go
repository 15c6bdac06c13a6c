package restapi

import (
	"net/http"
	"strconv"

	"trajetviz.dev/internal/app"
)

// cachePolicy is how many seconds a client may reuse a successful answer.
type cachePolicy int

const (
	// Configuration and the station list change with a deploy.
	cacheStatic cachePolicy = 300
	// The clock moves, but not by much.
	cacheRealtime cachePolicy = 30
	// Search results and renders depend on the request body.
	cacheNone cachePolicy = 0
)

const noStore = "no-cache, no-store, must-revalidate"

func (p cachePolicy) header() string {
	if p <= 0 {
		return noStore
	}
	return "public, max-age=" + strconv.Itoa(int(p))
}

// withCachePolicy stamps Cache-Control on the way out. Only 2xx answers get
// the policy; errors, 401s and 429s are never stored. A cacheable answer
// varies on the key header since the key can travel outside the URL.
func withCachePolicy(p cachePolicy, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&cacheHeaderWriter{ResponseWriter: w, policy: p}, r)
	})
}

type cacheHeaderWriter struct {
	http.ResponseWriter
	policy cachePolicy
	sent   bool
}

func (w *cacheHeaderWriter) WriteHeader(code int) {
	if !w.sent {
		w.sent = true
		h := w.Header()
		if code >= 200 && code < 300 && w.policy > 0 {
			h.Set("Cache-Control", w.policy.header())
			h.Add("Vary", app.APIKeyHeader)
		} else {
			h.Set("Cache-Control", noStore)
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheHeaderWriter) Write(b []byte) (int, error) {
	if !w.sent {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *cacheHeaderWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
