package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeNotFound       = "not_found"

	// Server errors
	ErrCodeInternalError = "internal_error"
	ErrCodeUpstreamError = "upstream_error"

	// Leaderboard errors
	ErrCodeLeaderboardFetchFailed = "leaderboard_fetch_failed"
	ErrCodeLeaderboardInvalid     = "leaderboard_invalid"

	// Dashboard errors
	ErrCodeDashboardFetchFailed = "dashboard_fetch_failed"
)
