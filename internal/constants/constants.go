package constants

// Context keys set by the auth middleware.
const (
	ContextKeyEmployeeID  = "employee_id"
	ContextKeyEmail       = "email"
	ContextKeyDesignation = "designation"
)

// Pagination bounds.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const MinPasswordLength = 8

// SeedTokenHeader carries the token that gates the destructive seed endpoint.
const SeedTokenHeader = "X-Seed-Token"

// NotificationQueue is the Redis list notifications are pushed onto.
const NotificationQueue = "stable:notifications"
