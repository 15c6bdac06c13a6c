package restapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetRoutes registers every API route on mux. Routes under /api require a
// valid key and are rate limited per key.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", api.healthHandler)

	if api.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	mux.Handle("GET /api/config.json", api.protected(cacheStatic, api.configHandler))
	mux.Handle("GET /api/current-time.json", api.protected(cacheRealtime, api.currentTimeHandler))
	mux.Handle("GET /api/stations.json", api.protected(cacheStatic, api.stationsHandler))
	mux.Handle("POST /api/search.json", api.protected(cacheNone, api.searchHandler))
	mux.Handle("POST /api/render/cards", api.protected(cacheNone, api.renderCardsHandler))
	mux.Handle("POST /api/render/details.json", api.protected(cacheNone, api.renderDetailsHandler))
	mux.Handle("POST /api/render/route.json", api.protected(cacheNone, api.renderRouteHandler))

	// Anything else under /api, including a known path with the wrong method.
	mux.HandleFunc("/api/", api.sendNotFound)
}

// protected wraps handler in the per key rate limit, the route's cache policy
// and key validation, outermost first.
func (api *RestAPI) protected(policy cachePolicy, handler http.HandlerFunc) http.Handler {
	withKey := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.sendUnauthorized(w, r)
			return
		}
		handler(w, r)
	})
	return api.rateLimiter.Limit(withCachePolicy(policy, withKey))
}
