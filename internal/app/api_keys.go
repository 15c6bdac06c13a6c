package app

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// APIKeyHeader lets clients keep the key out of URLs and access logs.
const APIKeyHeader = "X-Api-Key"

// APIKey returns the key a request presents: ?key= first, then the header.
func APIKey(r *http.Request) string {
	if key := r.URL.Query().Get("key"); key != "" {
		return key
	}
	return strings.TrimSpace(r.Header.Get(APIKeyHeader))
}

// RequestHasInvalidAPIKey reports whether r presents no configured key.
func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	return app.IsInvalidAPIKey(APIKey(r))
}

// IsInvalidAPIKey compares key with every configured key in constant time and
// without stopping at the first match.
func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}
	matched := 0
	for _, valid := range app.Config.ApiKeys {
		matched |= subtle.ConstantTimeCompare([]byte(key), []byte(valid))
	}
	return matched == 0
}
