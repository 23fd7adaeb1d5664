package exception

import "errors"

// ErrRecordNotFound custom database error for failure to find record
var ErrRecordNotFound = errors.New("record not found")

// ErrEmptyResponse returned when a device answers a command with no text
var ErrEmptyResponse = errors.New("empty response")

// ErrAuthConnectionFailed reported when every credential was exhausted
// without a more specific error being recorded
var ErrAuthConnectionFailed = errors.New("authentication/connection failed")

// ErrInvalidConfig returned when user provided configuration is unusable
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrUnreachable reported for devices whose ssh port failed the preflight
// scan
var ErrUnreachable = errors.New("ssh port unreachable")
