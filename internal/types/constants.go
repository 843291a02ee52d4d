package types

import "strings"

const (
	ContextUserKey  = "user"
	ContextAuthKey  = "auth"
	ContextStoreKey = "store"
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
)

// AllowedOrigins returns the development defaults plus the comma separated
// origins in extra.
func AllowedOrigins(extra string) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	for _, origin := range strings.Split(extra, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
