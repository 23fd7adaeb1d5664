package session

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/robgonnella/wisp/internal/config"
	"github.com/robgonnella/wisp/internal/logger"
	"golang.org/x/crypto/ssh"
)

// SSHClient implements Client over a fresh SSH connection per call
type SSHClient struct {
	timeout time.Duration
	port    int
	log     logger.Logger
}

// NewSSHClient returns a new instance of SSHClient. The timeout bounds the
// whole call: dial, handshake, authentication and command execution.
func NewSSHClient(timeout time.Duration, port int) *SSHClient {
	return &SSHClient{
		timeout: timeout,
		port:    port,
		log:     logger.New(),
	}
}

// Execute dials ip, authenticates with cred and runs command. Stdout is
// returned when it has content, otherwise stderr so that device error text
// is still available to callers.
func (c *SSHClient) Execute(
	ctx context.Context,
	ip string,
	cred config.Credential,
	command string,
) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	addr := net.JoinHostPort(ip, strconv.Itoa(c.port))

	c.log.Debug().
		Str("ip", ip).
		Str("user", cred.Username).
		Str("command", command).
		Msg("executing remote command")

	dialer := net.Dialer{Timeout: c.timeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)

	if err != nil {
		return "", transportError(ctx, ip, err)
	}

	defer conn.Close()

	// the deadline bounds every read and write on the socket, the after func
	// unblocks them early if the caller cancels
	deadline, _ := ctx.Deadline()

	conn.SetDeadline(deadline)

	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})

	defer stop()

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig(cred, c.timeout))

	if err != nil {
		if isAuthFailure(err) {
			return "", &AuthError{IP: ip, User: cred.Username, Err: err}
		}

		return "", transportError(ctx, ip, err)
	}

	client := ssh.NewClient(sshConn, chans, reqs)

	defer client.Close()

	session, err := client.NewSession()

	if err != nil {
		return "", transportError(ctx, ip, err)
	}

	defer session.Close()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	session.Stdout = stdout
	session.Stderr = stderr

	err = session.Run(command)

	// a connection torn down by the deadline surfaces as a missing exit
	// status, which must not be mistaken for an answer
	if ctx.Err() != nil || !time.Now().Before(deadline) {
		cause := ctx.Err()

		if cause == nil {
			cause = context.DeadlineExceeded
		}

		return "", transportError(ctx, ip, cause)
	}

	if err != nil {
		// non-zero or missing exit status still means the device answered
		var exitErr *ssh.ExitError
		var exitMissingErr *ssh.ExitMissingError

		if !errors.As(err, &exitErr) && !errors.As(err, &exitMissingErr) {
			return "", transportError(ctx, ip, err)
		}
	}

	if strings.TrimSpace(stdout.String()) != "" {
		return stdout.String(), nil
	}

	return stderr.String(), nil
}

// clientConfig accepts any host key. Devices are addressed by ip from an
// inventory, typically never seen before, so there is nothing to pin.
func clientConfig(cred config.Credential, timeout time.Duration) *ssh.ClientConfig {
	answer := func(user, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range answers {
			answers[i] = cred.Secret
		}
		return answers, nil
	}

	return &ssh.ClientConfig{
		User: cred.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(cred.Secret),
			ssh.KeyboardInteractive(answer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}
}

func isAuthFailure(err error) bool {
	return strings.Contains(err.Error(), "unable to authenticate")
}

func transportError(ctx context.Context, ip string, err error) error {
	timeout := errors.Is(ctx.Err(), context.DeadlineExceeded)

	var netErr net.Error

	if errors.As(err, &netErr) && netErr.Timeout() {
		timeout = true
	}

	return &TransportError{IP: ip, Timeout: timeout, Err: err}
}
