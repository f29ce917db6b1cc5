package database

// Valkey database index organization. Each index gives logical separation
// for a cache category.
const (
	// GENERAL_CACHE_INDEX (DB 0) - general purpose caching
	GENERAL_CACHE_INDEX = iota

	// STATUS_CACHE_INDEX (DB 1) - attendance status summaries keyed by
	// staff and JST date, invalidated on every cycle mutation
	STATUS_CACHE_INDEX

	// USER_CACHE_INDEX (DB 2) - user shadow rows keyed by auth subject
	USER_CACHE_INDEX

	// EVENTS_CACHE_INDEX (DB 3) - pub/sub for status-change events pushed
	// to manager dashboards
	EVENTS_CACHE_INDEX
)
