package service

import "errors"

// ErrNoEventsFile is returned by reloads when no seed file is configured.
var ErrNoEventsFile = errors.New("no events file configured")
