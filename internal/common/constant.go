package common

const (
	// AuthorizationHeader carries the bearer token on remote store requests.
	AuthorizationHeader = "Authorization"
)
