package core

import (
	"context"
	"sync"

	"github.com/robgonnella/wisp/internal/config"
	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/discovery"
	"github.com/robgonnella/wisp/internal/event"
	"github.com/robgonnella/wisp/internal/exception"
	"github.com/robgonnella/wisp/internal/logger"
	"github.com/robgonnella/wisp/internal/util"
)

// Core represents our core data structure
type Core struct {
	conf      config.Config
	processor Processor
	scanner   discovery.Scanner
	events    event.Manager
	log       logger.Logger
}

// runSink collects the records of a single run
type runSink struct {
	records []*device.Record
	mux     sync.Mutex
}

// New returns new core module for given configuration. A nil scanner
// disables preflight.
func New(
	conf config.Config,
	processor Processor,
	scanner discovery.Scanner,
	events event.Manager,
) *Core {
	return &Core{
		conf:      conf,
		processor: processor,
		scanner:   scanner,
		events:    events,
		log:       logger.New(),
	}
}

// Conf returns the configuration the core was created with
func (c *Core) Conf() config.Config {
	return c.conf
}

// Run processes every unique address with at most conf.Workers running at
// once and returns exactly one record per unique address in completion
// order. Canceling ctx stops scheduling, unscheduled addresses still get a
// FAIL record.
func (c *Core) Run(ctx context.Context, ips []string) []*device.Record {
	unique := util.Dedupe(ips)

	sink := &runSink{records: make([]*device.Record, 0, len(unique))}

	c.events.Send(event.Event{
		Type:    event.RunStartedEventType,
		Payload: event.RunStarted{Total: len(unique)},
	})

	c.log.Info().
		Int("devices", len(unique)).
		Int("workers", c.conf.Workers).
		Msg("starting run")

	reachable := c.preflight(ctx, unique)

	workers := c.conf.Workers

	if workers < 1 {
		workers = 1
	}

	semaphore := make(chan struct{}, workers)
	wg := &sync.WaitGroup{}

scheduling:
	for i, ip := range unique {
		if reachable != nil && !reachable[ip] {
			c.complete(sink, device.NewFailure(ip, exception.ErrUnreachable, 0))
			continue
		}

		if ctx.Err() != nil {
			c.abandon(sink, ctx.Err(), unique[i:], reachable)
			break
		}

		select {
		case <-ctx.Done():
			c.abandon(sink, ctx.Err(), unique[i:], reachable)
			break scheduling
		case semaphore <- struct{}{}: // acquire
		}

		wg.Add(1)

		go func(addr string) {
			defer func() {
				<-semaphore // release
				wg.Done()
			}()

			c.complete(sink, c.processor.Process(ctx, addr))
		}(ip)
	}

	wg.Wait()

	sink.mux.Lock()
	records := sink.records
	sink.mux.Unlock()

	finished := event.RunFinished{Total: len(records)}

	for _, r := range records {
		if r.Status == device.StatusOK {
			finished.OK++
		} else {
			finished.Failed++
		}
	}

	c.events.Send(event.Event{
		Type:    event.RunFinishedEventType,
		Payload: finished,
	})

	c.log.Info().
		Int("ok", finished.OK).
		Int("failed", finished.Failed).
		Msg("run finished")

	return records
}

// preflight returns nil when every address should be probed
func (c *Core) preflight(ctx context.Context, ips []string) map[string]bool {
	if c.scanner == nil || len(ips) == 0 {
		return nil
	}

	reachable, err := c.scanner.Reachable(ctx, ips)

	if err != nil {
		c.log.Warn().Err(err).Msg("preflight scan failed, probing every device")
		c.events.ReportError(err)
		return nil
	}

	return reachable
}

// abandon records a failure for every address that was never scheduled
func (c *Core) abandon(sink *runSink, err error, ips []string, reachable map[string]bool) {
	for _, ip := range ips {
		if reachable != nil && !reachable[ip] {
			c.complete(sink, device.NewFailure(ip, exception.ErrUnreachable, 0))
			continue
		}

		c.complete(sink, device.NewFailure(ip, err, 0))
	}
}

func (c *Core) complete(sink *runSink, rec *device.Record) {
	sink.mux.Lock()
	sink.records = append(sink.records, rec)
	sink.mux.Unlock()

	c.events.Send(event.Event{
		Type:    event.RecordCompletedEventType,
		Payload: rec,
	})
}
