package discovery

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/robgonnella/wisp/internal/logger"
)

// NetScanner implements Scanner with a plain tcp dial per address
type NetScanner struct {
	port      int
	timeout   time.Duration
	semaphore chan struct{}
	log       logger.Logger
}

// NewNetScanner returns a new instance of NetScanner dialing at most
// concurrency addresses at once
func NewNetScanner(port int, timeout time.Duration, concurrency int) *NetScanner {
	if concurrency < 1 {
		concurrency = 1
	}

	return &NetScanner{
		port:      port,
		timeout:   timeout,
		semaphore: make(chan struct{}, concurrency),
		log:       logger.New(),
	}
}

// Reachable dials the ssh port of every ip
func (s *NetScanner) Reachable(ctx context.Context, ips []string) (map[string]bool, error) {
	reachable := map[string]bool{}
	mux := sync.Mutex{}
	wg := &sync.WaitGroup{}

	for _, ip := range ips {
		if ctx.Err() != nil {
			break
		}

		s.semaphore <- struct{}{} // acquire
		wg.Add(1)

		go func(i string) {
			defer func() {
				<-s.semaphore // release
				wg.Done()
			}()

			ok := s.dial(ctx, i)

			mux.Lock()
			reachable[i] = ok
			mux.Unlock()
		}(ip)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return reachable, nil
}

func (s *NetScanner) dial(ctx context.Context, ip string) bool {
	s.log.Debug().Str("ip", ip).Msg("Scanning target")

	dialer := net.Dialer{Timeout: s.timeout}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(ip, strconv.Itoa(s.port)))

	if err != nil {
		return false
	}

	conn.Close()

	return true
}
