package core

import (
	"context"

	"github.com/robgonnella/wisp/internal/device"
)

//go:generate mockgen -destination=../mock/core/mock_core.go -package=mock_core . Processor

// Processor interface for turning one address into one record
type Processor interface {
	Process(ctx context.Context, ip string) *device.Record
}
