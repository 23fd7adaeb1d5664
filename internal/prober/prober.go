package prober

import (
	"context"
	"errors"
	"strings"

	"github.com/robgonnella/wisp/internal/config"
	"github.com/robgonnella/wisp/internal/exception"
	"github.com/robgonnella/wisp/internal/logger"
	"github.com/robgonnella/wisp/internal/parser"
	"github.com/robgonnella/wisp/internal/session"
)

// Prober finds the first working credential for a device and gathers the
// diagnostic command outputs with it
type Prober struct {
	credentials []config.Credential
	commands    config.Commands
	client      session.Client
	log         logger.Logger
}

// New returns a new instance of Prober
func New(conf config.Config, client session.Client) *Prober {
	return &Prober{
		credentials: conf.Credentials,
		commands:    conf.Commands,
		client:      client,
		log:         logger.New(),
	}
}

// Probe tries each credential in order and stops at the first one that
// returns a non-empty identity
func (p *Prober) Probe(ctx context.Context, ip string) *Outcome {
	var lastErr error

	for i, cred := range p.credentials {
		isLast := i == len(p.credentials)-1

		a := p.try(ctx, ip, cred)

		switch a.status {
		case attemptSucceeded:
			p.log.Debug().
				Str("ip", ip).
				Str("user", cred.Username).
				Msg("credential accepted")

			return &Outcome{
				Authenticated: true,
				Credential:    cred,
				Outputs: map[string]string{
					OutputIdentity: a.output,
					OutputWireless: p.wireless(ctx, ip, cred),
				},
			}
		case attemptAuthFailed:
			// rejections only become the reported error when nothing else
			// is left to try
			if isLast {
				lastErr = a.err
			}
		case attemptTransportFailed:
			lastErr = a.err
		case attemptEmpty:
		}

		p.log.Debug().
			Err(a.err).
			Str("ip", ip).
			Str("user", cred.Username).
			Msg("credential attempt failed")

		if ctx.Err() != nil {
			break
		}
	}

	if lastErr == nil {
		lastErr = exception.ErrAuthConnectionFailed
	}

	return &Outcome{LastError: lastErr}
}

func (p *Prober) try(ctx context.Context, ip string, cred config.Credential) attempt {
	out, err := p.client.Execute(ctx, ip, cred, p.commands.Identity)

	if err != nil {
		var authErr *session.AuthError

		if errors.As(err, &authErr) {
			return attempt{status: attemptAuthFailed, err: err}
		}

		return attempt{status: attemptTransportFailed, err: err}
	}

	if strings.TrimSpace(out) == "" {
		return attempt{status: attemptEmpty, err: exception.ErrEmptyResponse}
	}

	return attempt{status: attemptSucceeded, output: out}
}

// wireless runs the primary wireless listing and falls back to the
// alternate one on failure, empty output or a rejected command
func (p *Prober) wireless(ctx context.Context, ip string, cred config.Credential) string {
	for _, cmd := range []string{p.commands.Wireless, p.commands.WirelessAlt} {
		if cmd == "" {
			continue
		}

		out, err := p.client.Execute(ctx, ip, cred, cmd)

		if err != nil {
			p.log.Debug().
				Err(err).
				Str("ip", ip).
				Str("command", cmd).
				Msg("wireless command failed")
			continue
		}

		if strings.TrimSpace(out) == "" || parser.IsCommandError(out) {
			continue
		}

		return out
	}

	return ""
}
