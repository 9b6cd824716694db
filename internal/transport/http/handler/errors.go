package handler

const (
	errInternalServer  = "Internal server error"
	errUnauthorized    = "Unauthorized"
	errForbidden       = "Forbidden"
	errUserNotFound    = "User not found"
	errInvalidPassword = "Invalid password"
	errDuplicateEmail  = "User with this email already exists"
	errPasswordTooLong = "Password must be at most 72 bytes"
	errProjectNotFound = "Project not found"
)
