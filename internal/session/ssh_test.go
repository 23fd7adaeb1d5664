package session_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robgonnella/wisp/internal/config"
	"github.com/robgonnella/wisp/internal/session"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ssh"
)

type commandHandler func(cmd string) (stdout string, stderr string)

// starts an ssh server on localhost that accepts a single password and
// answers exec requests using handler
func startServer(t *testing.T, password string, handler commandHandler) (int, *int32) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)

	if err != nil {
		t.Fatalf("failed to generate host key: %s", err)
	}

	signer, err := ssh.NewSignerFromKey(priv)

	if err != nil {
		t.Fatalf("failed to create signer: %s", err)
	}

	serverConf := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if string(pass) == password {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %s", c.User())
		},
	}

	serverConf.AddHostKey(signer)

	listener, err := net.Listen("tcp", "127.0.0.1:0")

	if err != nil {
		t.Fatalf("failed to listen: %s", err)
	}

	t.Cleanup(func() { listener.Close() })

	var connections int32

	go func() {
		for {
			nConn, err := listener.Accept()

			if err != nil {
				return
			}

			atomic.AddInt32(&connections, 1)

			go serveConn(nConn, serverConf, handler)
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, &connections
}

func serveConn(nConn net.Conn, conf *ssh.ServerConfig, handler commandHandler) {
	defer nConn.Close()

	_, chans, reqs, err := ssh.NewServerConn(nConn, conf)

	if err != nil {
		return
	}

	go ssh.DiscardRequests(reqs)

	for newChannel := range chans {
		if newChannel.ChannelType() != "session" {
			newChannel.Reject(ssh.UnknownChannelType, "unsupported channel type")
			continue
		}

		channel, requests, err := newChannel.Accept()

		if err != nil {
			return
		}

		go func() {
			defer channel.Close()

			for req := range requests {
				if req.Type != "exec" {
					req.Reply(false, nil)
					continue
				}

				payload := struct{ Command string }{}
				ssh.Unmarshal(req.Payload, &payload)
				req.Reply(true, nil)

				stdout, stderr := handler(payload.Command)

				io.WriteString(channel, stdout)
				io.WriteString(channel.Stderr(), stderr)

				status := struct{ Status uint32 }{0}
				channel.SendRequest("exit-status", false, ssh.Marshal(&status))

				return
			}
		}()
	}
}

// returns a localhost port with nothing listening on it
func closedPort(t *testing.T) int {
	listener, err := net.Listen("tcp", "127.0.0.1:0")

	if err != nil {
		t.Fatalf("failed to listen: %s", err)
	}

	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	return port
}

func TestSSHClient(t *testing.T) {
	cred := config.Credential{Username: "admin", Secret: "secret"}

	t.Run("returns stdout of command", func(st *testing.T) {
		port, _ := startServer(st, "secret", func(cmd string) (string, string) {
			if cmd == "/system identity print" {
				return "  name: Router7\n", ""
			}
			return "", "bad command name"
		})

		client := session.NewSSHClient(2*time.Second, port)

		out, err := client.Execute(context.Background(), "127.0.0.1", cred, "/system identity print")

		assert.NoError(st, err)
		assert.Equal(st, "  name: Router7\n", out)
	})

	t.Run("falls back to stderr when stdout is empty", func(st *testing.T) {
		port, _ := startServer(st, "secret", func(cmd string) (string, string) {
			return "\n", "bad command name wifiwave2 (line 1 column 12)"
		})

		client := session.NewSSHClient(2*time.Second, port)

		out, err := client.Execute(context.Background(), "127.0.0.1", cred, "/interface wifiwave2 print")

		assert.NoError(st, err)
		assert.Equal(st, "bad command name wifiwave2 (line 1 column 12)", out)
	})

	t.Run("opens a fresh connection per call", func(st *testing.T) {
		port, connections := startServer(st, "secret", func(cmd string) (string, string) {
			return "ok", ""
		})

		client := session.NewSSHClient(2*time.Second, port)

		for i := 0; i < 3; i++ {
			_, err := client.Execute(context.Background(), "127.0.0.1", cred, "cmd")
			assert.NoError(st, err)
		}

		assert.Equal(st, int32(3), atomic.LoadInt32(connections))
	})

	t.Run("returns auth error for rejected credential", func(st *testing.T) {
		port, _ := startServer(st, "other", func(cmd string) (string, string) {
			return "ok", ""
		})

		client := session.NewSSHClient(2*time.Second, port)

		_, err := client.Execute(context.Background(), "127.0.0.1", cred, "cmd")

		var authErr *session.AuthError

		assert.Error(st, err)
		assert.True(st, errors.As(err, &authErr))
		assert.Equal(st, "admin", authErr.User)
	})

	t.Run("returns transport error for refused connection", func(st *testing.T) {
		client := session.NewSSHClient(2*time.Second, closedPort(st))

		_, err := client.Execute(context.Background(), "127.0.0.1", cred, "cmd")

		var transportErr *session.TransportError

		assert.Error(st, err)
		assert.True(st, errors.As(err, &transportErr))
		assert.False(st, transportErr.Timeout)
	})

	t.Run("times out when server never speaks", func(st *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")

		assert.NoError(st, err)

		defer listener.Close()

		go func() {
			for {
				conn, err := listener.Accept()
				if err != nil {
					return
				}
				defer conn.Close()
			}
		}()

		timeout := 300 * time.Millisecond
		client := session.NewSSHClient(timeout, listener.Addr().(*net.TCPAddr).Port)

		start := time.Now()

		_, err = client.Execute(context.Background(), "127.0.0.1", cred, "cmd")

		elapsed := time.Since(start)

		var transportErr *session.TransportError

		assert.Error(st, err)
		assert.True(st, errors.As(err, &transportErr))
		assert.True(st, transportErr.Timeout)
		assert.Less(st, elapsed, timeout+time.Second)
	})

	t.Run("times out when command hangs", func(st *testing.T) {
		release := make(chan struct{})

		defer close(release)

		port, _ := startServer(st, "secret", func(cmd string) (string, string) {
			<-release
			return "late", ""
		})

		timeout := 300 * time.Millisecond
		client := session.NewSSHClient(timeout, port)

		start := time.Now()

		out, err := client.Execute(context.Background(), "127.0.0.1", cred, "cmd")

		elapsed := time.Since(start)

		var transportErr *session.TransportError

		assert.Equal(st, "", out)
		assert.True(st, errors.As(err, &transportErr))
		assert.True(st, transportErr.Timeout)
		assert.Less(st, elapsed, timeout+time.Second)
	})
}
