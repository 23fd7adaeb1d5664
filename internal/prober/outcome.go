package prober

import "github.com/robgonnella/wisp/internal/config"

// Keys into Outcome.Outputs
const (
	OutputIdentity = "identity"
	OutputWireless = "wireless"
)

// Outcome represents the result of probing one device. Authenticated
// outcomes carry the matched credential and raw command outputs,
// unauthenticated outcomes carry the last recorded error.
type Outcome struct {
	Authenticated bool
	Credential    config.Credential
	Outputs       map[string]string
	LastError     error
}

type attemptStatus int

const (
	attemptSucceeded attemptStatus = iota
	attemptEmpty
	attemptAuthFailed
	attemptTransportFailed
)

// attempt is the tagged result of trying one credential
type attempt struct {
	status attemptStatus
	output string
	err    error
}
