package domain

// ==== Identity Constants ====

// IDLength is the number of hex characters in user and session ids
const IDLength = 6

// ==== Playback Constants ====

// DriftToleranceMs is how far (in milliseconds) two predicted playback
// positions may diverge before an update counts as a jump. Normal network
// propagation keeps honest clients inside this window.
const DriftToleranceMs = 2500

// ==== Rate Limit Constants ====

const (
	// DefaultRateLimitHTTP is the default rate limit for the plain HTTP
	// endpoints (requests/sec)
	DefaultRateLimitHTTP = 10

	// DefaultRateLimitWS is the default rate limit for WebSocket connections
	// (req/sec)
	DefaultRateLimitWS = 5
)
