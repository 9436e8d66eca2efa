package ping

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"
	"time"
)

// TCPProber treats a host as reachable when a TCP handshake to Port either
// completes or is actively refused. A refusal still proves the host answered.
type TCPProber struct {
	Port     int
	resolver resolver
	dialer   net.Dialer
}

// NewTCP creates a prober connecting to port
func NewTCP(port int) *TCPProber {
	return &TCPProber{Port: port, resolver: net.DefaultResolver}
}

// Probe measures the time to a TCP handshake or refusal
func (p *TCPProber) Probe(ctx context.Context, host string) (time.Duration, error) {
	addr, err := resolveHost(ctx, p.resolver, host, true, true)
	if err != nil {
		return 0, err
	}

	target := net.JoinHostPort(addr.String(), strconv.Itoa(p.Port))
	start := time.Now()
	conn, err := p.dialer.DialContext(ctx, "tcp", target)
	rtt := time.Since(start)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return rtt, nil
		}
		if errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
			return 0, fmt.Errorf("connect %s: %w: %w", target, ErrUnreachable, err)
		}
		return 0, fmt.Errorf("connect %s: %w", target, err)
	}
	conn.Close()
	return rtt, nil
}
