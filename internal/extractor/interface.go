package extractor

import (
	"context"

	"github.com/robgonnella/wisp/internal/prober"
)

//go:generate mockgen -destination=../mock/extractor/mock_extractor.go -package=mock_extractor . Prober

// Prober interface for finding a working credential on a device
type Prober interface {
	Probe(ctx context.Context, ip string) *prober.Outcome
}
