package core

import (
	"github.com/robgonnella/wisp/internal/config"
	"github.com/robgonnella/wisp/internal/discovery"
	"github.com/robgonnella/wisp/internal/event"
	"github.com/robgonnella/wisp/internal/extractor"
	"github.com/robgonnella/wisp/internal/prober"
	"github.com/robgonnella/wisp/internal/session"
)

// createScanner returns the preflight scanner for the configured mode or
// nil when preflight is disabled
func createScanner(conf config.Config) discovery.Scanner {
	switch conf.Preflight {
	case config.PreflightNmap:
		return discovery.NewNmapScanner(conf.Port)
	case config.PreflightTCP:
		return discovery.NewNetScanner(conf.Port, conf.Timeout, conf.Workers*4)
	default:
		return nil
	}
}

// CreateNewAppCore creates and returns a new instance of *core.Core wired
// with an ssh client, credential prober and per-device extractor
func CreateNewAppCore(conf config.Config, events event.Manager) *Core {
	client := session.NewSSHClient(conf.Timeout, conf.Port)
	p := prober.New(conf, client)
	processor := extractor.New(conf, p, client)

	return New(conf, processor, createScanner(conf), events)
}
