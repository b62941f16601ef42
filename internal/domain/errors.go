package domain

import "errors"

// Domain errors represent error conditions in postboard.
// They are returned by the public API and can be checked with errors.Is.
var (
	// ErrIndexOutOfRange is returned when a drag list index is outside [0, len).
	ErrIndexOutOfRange = errors.New("postboard: index out of range")

	// ErrMountPointNotFound is returned when the host has no element with the requested id.
	ErrMountPointNotFound = errors.New("postboard: mount point not found")

	// ErrAlreadyMounted is returned when Mount is called on a mounted app.
	ErrAlreadyMounted = errors.New("postboard: already mounted")

	// ErrNotMounted is returned when Unmount is called on an app that is not mounted.
	ErrNotMounted = errors.New("postboard: not mounted")

	// ErrPluginAlreadyInstalled is returned when a plugin name is installed twice.
	ErrPluginAlreadyInstalled = errors.New("postboard: plugin already installed")

	// ErrStoreNotDefined is returned when a store id has no registered factory.
	ErrStoreNotDefined = errors.New("postboard: store not defined")

	// ErrStoreAlreadyDefined is returned when a store id is defined twice.
	ErrStoreAlreadyDefined = errors.New("postboard: store already defined")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("postboard: invalid configuration")
)
