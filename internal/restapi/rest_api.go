package restapi

import "trajetviz.dev/internal/app"

// RestAPI serves the JSON API and the render endpoints on top of the shared
// application dependencies.
type RestAPI struct {
	*app.Application
	rateLimiter *KeyRateLimiter
}

// NewRestAPI builds the API. Call Shutdown to stop its background work.
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		rateLimiter: NewKeyRateLimiter(
			application.Config.RateLimit,
			application.Config.RateLimitExemptKeys,
			application.Clock,
		),
	}
}

// Shutdown stops the rate limiter cleanup goroutine. It is safe to call
// multiple times.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
