package constants

import (
	"time"
)

// Redis key layout: seatflow:{module}:{operation}:{identifier}

const (
	CACHE_PREFIX = "seatflow"
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENT_BY_SLUG = CACHE_PREFIX + ":events:slug:"   // + slug
	CACHE_KEY_EVENT_ACTIVE  = CACHE_PREFIX + ":events:active" // most recent active event
)

// TTL_EVENT_DEFAULT is used when the configured event TTL is zero
const TTL_EVENT_DEFAULT = 10 * time.Minute

// ================== SEATS MODULE ==================

const (
	CACHE_KEY_SEAT_MAP = CACHE_PREFIX + ":seats:map:event:" // + event-id:session:session-id
)

// TTL_SEAT_MAP_DEFAULT keeps seat maps short lived since reservations change them
const TTL_SEAT_MAP_DEFAULT = 30 * time.Second

// ================== REPORTS MODULE ==================

const (
	CACHE_KEY_REPORT_SUMMARY = CACHE_PREFIX + ":reports:summary:event:" // + event-id
)

const TTL_REPORT_SUMMARY = 15 * time.Second

// ================== RATE LIMITING ==================

const (
	CACHE_KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:" // + type:ip
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_EVENTS_ALL = CACHE_PREFIX + ":events:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildEventBySlugKey(slug string) string {
	return CACHE_KEY_EVENT_BY_SLUG + slug
}

func BuildSeatMapKey(eventID, sessionID string) string {
	return CACHE_KEY_SEAT_MAP + eventID + ":session:" + sessionID
}

// BuildSeatMapPattern matches every cached session map of one event
func BuildSeatMapPattern(eventID string) string {
	return CACHE_KEY_SEAT_MAP + eventID + ":*"
}

func BuildReportSummaryKey(eventID string) string {
	return CACHE_KEY_REPORT_SUMMARY + eventID
}

func BuildRateLimitKey(limitType, ip string) string {
	return CACHE_KEY_RATE_LIMIT + limitType + ":" + ip
}
