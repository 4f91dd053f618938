package gateway

import "github.com/pkg/errors"

var (
	// ErrLoginRejected means the backend explicitly refused the credentials.
	ErrLoginRejected = errors.New("login rejected")
	// ErrUnauthorized is returned when an authorized call other than login
	// receives HTTP 401. The registered OnUnauthorized hook fires before it
	// is returned.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTransport covers network failures and unreachable backends, as
	// opposed to an explicit rejection by the server.
	ErrTransport = errors.New("transport error")
	// ErrRequestFailed covers non-401 error statuses from the backend.
	ErrRequestFailed = errors.New("request failed")
)
