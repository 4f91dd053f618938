// Package tokenstore defines the flat key/value surface the session manager
// persists its state into. The store must survive process restarts; the
// session manager is its only writer.
package tokenstore

import "github.com/pkg/errors"

// Keys written by the session manager.
const (
	KeyToken       = "authToken"
	KeyUser        = "currentUser"
	KeyTokenExpiry = "tokenExpiry"
	KeyLoginTime   = "loginTime"
)

// ErrKeyNotFound is returned by Get when the key has never been set or has
// been removed.
var ErrKeyNotFound = errors.New("key not found")

type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
