package session

import (
	"context"

	"github.com/robgonnella/wisp/internal/config"
)

//go:generate mockgen -destination=../mock/session/mock_session.go -package=mock_session . Client

// Client executes a single command on a single device with a single
// credential and returns the command's text output
type Client interface {
	Execute(ctx context.Context, ip string, cred config.Credential, command string) (string, error)
}
