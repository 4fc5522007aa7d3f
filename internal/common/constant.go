package common

const (
	// AuthorizationHeaderName carries the bearer token on protected requests.
	AuthorizationHeaderName = "Authorization"

	// TokenType is the token_type reported by the token endpoint.
	TokenType = "bearer"

	// DiaryListLimit bounds the number of entries returned by a list call.
	DiaryListLimit = 100
)
