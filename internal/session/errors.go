package session

import "fmt"

// AuthError the device explicitly rejected the credential
type AuthError struct {
	IP   string
	User string
	Err  error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected for %s@%s: %s", e.User, e.IP, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TransportError covers everything between us and the device that is not an
// explicit credential rejection: refused, unreachable, timeouts, broken
// sessions
type TransportError struct {
	IP      string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("timeout talking to %s: %s", e.IP, e.Err)
	}

	return fmt.Sprintf("transport error talking to %s: %s", e.IP, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
