package extractor

import (
	"context"
	"strings"
	"time"

	"github.com/robgonnella/wisp/internal/config"
	"github.com/robgonnella/wisp/internal/device"
	"github.com/robgonnella/wisp/internal/logger"
	"github.com/robgonnella/wisp/internal/parser"
	"github.com/robgonnella/wisp/internal/prober"
	"github.com/robgonnella/wisp/internal/session"
)

// Extractor turns one device address into one device.Record
type Extractor struct {
	exportCmd string
	prober    Prober
	client    session.Client
	log       logger.Logger
}

// New returns a new instance of Extractor
func New(conf config.Config, p Prober, client session.Client) *Extractor {
	return &Extractor{
		exportCmd: conf.Commands.Export,
		prober:    p,
		client:    client,
		log:       logger.New(),
	}
}

// Process probes ip and builds its record. It never returns nil and never
// returns an error, failures are carried in the record.
func (e *Extractor) Process(ctx context.Context, ip string) *device.Record {
	start := time.Now()

	outcome := e.prober.Probe(ctx, ip)

	if !outcome.Authenticated {
		rec := device.NewFailure(ip, outcome.LastError, time.Since(start))
		e.logRecord(rec)
		return rec
	}

	wireless := outcome.Outputs[prober.OutputWireless]

	if strings.TrimSpace(wireless) == "" {
		wireless = e.export(ctx, ip, outcome.Credential)
	}

	ssids, radios := parser.ParseWirelessSets(wireless)

	rec := &device.Record{
		IP:           ip,
		Status:       device.StatusOK,
		Credential:   outcome.Credential,
		Identity:     parser.ParseIdentity(outcome.Outputs[prober.OutputIdentity]),
		SSIDs:        strings.Join(ssids, parser.SetSeparator),
		RadioNames:   strings.Join(radios, parser.SetSeparator),
		SSIDSet:      ssids,
		RadioNameSet: radios,
		Elapsed:      time.Since(start),
	}

	e.logRecord(rec)

	return rec
}

// export runs the configuration export and keeps only wireless lines.
// Failures leave the wireless fields empty.
func (e *Extractor) export(ctx context.Context, ip string, cred config.Credential) string {
	if e.exportCmd == "" {
		return ""
	}

	out, err := e.client.Execute(ctx, ip, cred, e.exportCmd)

	if err != nil {
		e.log.Debug().
			Err(err).
			Str("ip", ip).
			Str("command", e.exportCmd).
			Msg("export fallback failed")
		return ""
	}

	return parser.FilterExport(out)
}

func (e *Extractor) logRecord(rec *device.Record) {
	e.log.Info().
		Str("ip", rec.IP).
		Str("status", string(rec.Status)).
		Dur("elapsed", rec.Elapsed).
		Msg("device processed")
}
