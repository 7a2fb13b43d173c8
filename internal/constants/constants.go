package constants

// Session
const (
	SessionCookieName = "timesheet_session"
	ContextKeyUserID  = "user_id"
)

// Authentication
const (
	MinPasswordLength = 8
	AdminLogin        = "admin"
)

// Campaign display numbers
const (
	CampaignNumberMin = 1000
	CampaignNumberMax = 9999
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
