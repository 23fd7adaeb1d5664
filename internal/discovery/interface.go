package discovery

import "context"

//go:generate mockgen -destination=../mock/discovery/mock_discovery.go -package=mock_discovery . Scanner

// Scanner interface for checking which addresses accept connections on
// the ssh port before they are probed
type Scanner interface {
	Reachable(ctx context.Context, ips []string) (map[string]bool, error)
}
