package discovery

import (
	"context"
	"strconv"

	"github.com/Ullaakut/nmap/v3"
	"github.com/robgonnella/wisp/internal/logger"
)

// NmapScanner is an implementation of the Scanner interface
type NmapScanner struct {
	port int
	log  logger.Logger
}

// NewNmapScanner returns a new instance of NmapScanner
func NewNmapScanner(port int) *NmapScanner {
	return &NmapScanner{
		port: port,
		log:  logger.New(),
	}
}

// Reachable runs a single nmap scan of the ssh port across all ips. Hosts
// missing from the scan result are reported as unreachable.
func (s *NmapScanner) Reachable(ctx context.Context, ips []string) (map[string]bool, error) {
	reachable := map[string]bool{}

	if len(ips) == 0 {
		return reachable, nil
	}

	for _, ip := range ips {
		reachable[ip] = false
	}

	scanner, err := nmap.NewScanner(
		ctx,
		nmap.WithTargets(ips...),
		nmap.WithPorts(strconv.Itoa(s.port)),
		nmap.WithTimingTemplate(nmap.TimingAggressive),
		nmap.WithSkipHostDiscovery(),
	)

	if err != nil {
		return nil, err
	}

	s.log.Info().Int("targets", len(ips)).Msg("Scanning ssh port...")

	result, warnings, err := scanner.Run()

	if warnings != nil && len(*warnings) > 0 {
		fields := map[string]interface{}{}

		for i, warning := range *warnings {
			fields[strconv.Itoa(i)] = warning
		}

		s.log.Warn().
			Fields(fields).
			Msg("encountered network scan warnings")
	}

	if err != nil {
		s.log.Error().Err(err).Msg("encountered network scan error")
		return nil, err
	}

	for _, host := range result.Hosts {
		if len(host.Addresses) == 0 {
			continue
		}

		ip := host.Addresses[0].String()

		if _, ok := reachable[ip]; !ok {
			continue
		}

		for _, port := range host.Ports {
			if int(port.ID) == s.port && port.Status() == nmap.Open {
				reachable[ip] = true
			}
		}
	}

	return reachable, nil
}
